package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/taller-api/internal/domain"
	"github.com/tu-usuario/taller-api/internal/domain/entity"
	"github.com/tu-usuario/taller-api/internal/domain/repository"
)

var _ repository.JobRepository = (*JobRepo)(nil)

// JobRepo implementación de JobRepository sobre PostgreSQL (usable con pool o tx).
// Los repuestos consumidos viven en job_used_parts y se cargan con el trabajo.
type JobRepo struct {
	q Querier
}

// NewJobRepository construye el adaptador de trabajos. Pasar pool o tx (Querier).
func NewJobRepository(q Querier) *JobRepo {
	return &JobRepo{q: q}
}

const jobColumns = `id, receipt_number, job_code, customer_name, customer_phone, customer_address,
	device_type, device_model, symptom, accessory, price_quoted, job_type, status,
	received_date, start_date, finish_date, created_by, assigned_to, created_at, updated_at`

// Create persiste un trabajo. ReceiptNumber duplicado => domain.ErrDuplicateReceipt.
func (r *JobRepo) Create(j *entity.Job) error {
	query := `
		INSERT INTO jobs (` + jobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(context.Background(), query,
		j.ID, j.ReceiptNumber, j.JobCode, j.CustomerName, j.CustomerPhone, j.CustomerAddress,
		j.DeviceType, j.DeviceModel, j.Symptom, j.Accessory, j.PriceQuoted, j.JobType, j.Status,
		j.ReceivedDate, j.StartDate, j.FinishDate, j.CreatedBy, j.AssignedTo, j.CreatedAt, j.UpdatedAt,
	)
	if err != nil {
		if uniqueViolation(err) != "" {
			return domain.ErrDuplicateReceipt
		}
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// GetByID obtiene un trabajo con sus repuestos. Devuelve (nil, nil) si no existe.
func (r *JobRepo) GetByID(id string) (*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get job by id")
}

// GetByReceipt busca por número de recibo. Devuelve (nil, nil) si no existe.
func (r *JobRepo) GetByReceipt(receiptNumber string) (*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE receipt_number = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, receiptNumber), "get job by receipt")
}

// List devuelve todos los trabajos, más recientes primero.
func (r *JobRepo) List() ([]*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC`
	return r.scanMany(query)
}

// ListByCreator trabajos creados por un empleado.
func (r *JobRepo) ListByCreator(employeeID string) ([]*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE created_by = $1 ORDER BY created_at DESC`
	return r.scanMany(query, employeeID)
}

// ListForTech trabajos asignados al técnico o sin asignar.
func (r *JobRepo) ListForTech(employeeID string) ([]*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs
		WHERE assigned_to = $1 OR assigned_to IS NULL ORDER BY created_at DESC`
	return r.scanMany(query, employeeID)
}

// Update actualiza los campos mutables del trabajo. receipt_number y
// created_by no aparecen en el SET: son inmutables tras la creación.
func (r *JobRepo) Update(j *entity.Job) error {
	query := `
		UPDATE jobs SET customer_name = $2, customer_phone = $3, customer_address = $4,
			device_type = $5, device_model = $6, symptom = $7, accessory = $8,
			price_quoted = $9, job_type = $10, status = $11, start_date = $12,
			finish_date = $13, assigned_to = $14, updated_at = $15
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		j.ID, j.CustomerName, j.CustomerPhone, j.CustomerAddress,
		j.DeviceType, j.DeviceModel, j.Symptom, j.Accessory,
		j.PriceQuoted, j.JobType, j.Status, j.StartDate,
		j.FinishDate, j.AssignedTo, j.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}

// AppendUsedPart agrega el snapshot de un repuesto consumido.
func (r *JobRepo) AppendUsedPart(jobID string, part entity.UsedPart) error {
	query := `
		INSERT INTO job_used_parts (job_id, stock_item_id, name, model, quantity, unit_price, used_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		jobID, part.StockItemID, part.Name, part.Model, part.Quantity, part.UnitPrice, part.UsedAt,
	)
	if err != nil {
		return fmt.Errorf("insert used part: %w", err)
	}
	return nil
}

func (r *JobRepo) scanOne(row pgx.Row, op string) (*entity.Job, error) {
	var j entity.Job
	err := row.Scan(
		&j.ID, &j.ReceiptNumber, &j.JobCode, &j.CustomerName, &j.CustomerPhone, &j.CustomerAddress,
		&j.DeviceType, &j.DeviceModel, &j.Symptom, &j.Accessory, &j.PriceQuoted, &j.JobType, &j.Status,
		&j.ReceivedDate, &j.StartDate, &j.FinishDate, &j.CreatedBy, &j.AssignedTo, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	parts, err := r.usedParts(j.ID)
	if err != nil {
		return nil, err
	}
	j.UsedParts = parts
	return &j, nil
}

func (r *JobRepo) scanMany(query string, args ...any) ([]*entity.Job, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()
	var list []*entity.Job
	for rows.Next() {
		var j entity.Job
		if err := rows.Scan(
			&j.ID, &j.ReceiptNumber, &j.JobCode, &j.CustomerName, &j.CustomerPhone, &j.CustomerAddress,
			&j.DeviceType, &j.DeviceModel, &j.Symptom, &j.Accessory, &j.PriceQuoted, &j.JobType, &j.Status,
			&j.ReceivedDate, &j.StartDate, &j.FinishDate, &j.CreatedBy, &j.AssignedTo, &j.CreatedAt, &j.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		list = append(list, &j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Cargar repuestos por trabajo (los listados del taller son cortos).
	for _, j := range list {
		parts, err := r.usedParts(j.ID)
		if err != nil {
			return nil, err
		}
		j.UsedParts = parts
	}
	return list, nil
}

func (r *JobRepo) usedParts(jobID string) ([]entity.UsedPart, error) {
	query := `
		SELECT stock_item_id, name, model, quantity, unit_price, used_at
		FROM job_used_parts WHERE job_id = $1 ORDER BY used_at`
	rows, err := r.q.Query(context.Background(), query, jobID)
	if err != nil {
		return nil, fmt.Errorf("list used parts: %w", err)
	}
	defer rows.Close()
	var parts []entity.UsedPart
	for rows.Next() {
		var p entity.UsedPart
		if err := rows.Scan(&p.StockItemID, &p.Name, &p.Model, &p.Quantity, &p.UnitPrice, &p.UsedAt); err != nil {
			return nil, fmt.Errorf("scan used part: %w", err)
		}
		parts = append(parts, p)
	}
	return parts, rows.Err()
}
