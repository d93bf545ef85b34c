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

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con
// pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `id, stock_code, name, type, model, quantity, price, created_at, updated_at`

// Create persiste un repuesto. Código duplicado => domain.ErrDuplicateStockCode.
func (r *StockRepo) Create(s *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.StockCode, s.Name, s.Type, s.Model, s.Quantity, s.Price, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if uniqueViolation(err) != "" {
			return domain.ErrDuplicateStockCode
		}
		return fmt.Errorf("insert stock item: %w", err)
	}
	return nil
}

// GetByID obtiene un repuesto. Devuelve (nil, nil) si no existe.
func (r *StockRepo) GetByID(id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_items WHERE id = $1`
	var s entity.StockItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.StockCode, &s.Name, &s.Type, &s.Model, &s.Quantity, &s.Price, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return &s, nil
}

// List devuelve el catálogo ordenado por código.
func (r *StockRepo) List() ([]*entity.StockItem, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_items ORDER BY stock_code`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockItem
	for rows.Next() {
		var s entity.StockItem
		if err := rows.Scan(&s.ID, &s.StockCode, &s.Name, &s.Type, &s.Model, &s.Quantity, &s.Price, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Update actualiza el catálogo (no toca el ledger).
func (r *StockRepo) Update(s *entity.StockItem) error {
	query := `
		UPDATE stock_items SET name = $2, type = $3, model = $4, quantity = $5,
			price = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Name, s.Type, s.Model, s.Quantity, s.Price, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock item: %w", err)
	}
	return nil
}

// Delete elimina un repuesto (y su ledger, por FK en cascada).
func (r *StockRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock item: %w", err)
	}
	return nil
}

// DecrementQuantity descuenta qty con un UPDATE condicional: la fila solo se
// modifica si la cantidad alcanza, así dos retiros concurrentes no pueden
// dejar la cantidad negativa (se serializan sobre la fila).
func (r *StockRepo) DecrementQuantity(id string, qty int) (int, error) {
	query := `
		UPDATE stock_items SET quantity = quantity - $2, updated_at = now()
		WHERE id = $1 AND quantity >= $2
		RETURNING quantity`
	var remaining int
	err := r.q.QueryRow(context.Background(), query, id, qty).Scan(&remaining)
	if err == nil {
		return remaining, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("decrement stock: %w", err)
	}
	// Sin fila afectada: distinguir inexistente de stock insuficiente.
	var exists bool
	if err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM stock_items WHERE id = $1)`, id).Scan(&exists); err != nil {
		return 0, fmt.Errorf("check stock exists: %w", err)
	}
	if !exists {
		return 0, domain.ErrNotFound
	}
	return 0, domain.ErrInsufficientStock
}

// AppendWithdrawal agrega una entrada al ledger (append-only).
func (r *StockRepo) AppendWithdrawal(e *entity.WithdrawalEntry) error {
	query := `
		INSERT INTO stock_withdrawals (id, stock_item_id, quantity, employee_name, job_ref, withdrawn_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.StockItemID, e.Quantity, e.EmployeeName, e.JobRef, e.WithdrawnAt,
	)
	if err != nil {
		return fmt.Errorf("insert withdrawal: %w", err)
	}
	return nil
}

// ListWithdrawals devuelve el ledger de un repuesto en orden cronológico.
func (r *StockRepo) ListWithdrawals(stockItemID string) ([]*entity.WithdrawalEntry, error) {
	query := `
		SELECT id, stock_item_id, quantity, employee_name, job_ref, withdrawn_at
		FROM stock_withdrawals WHERE stock_item_id = $1 ORDER BY withdrawn_at`
	rows, err := r.q.Query(context.Background(), query, stockItemID)
	if err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}
	defer rows.Close()
	var list []*entity.WithdrawalEntry
	for rows.Next() {
		var e entity.WithdrawalEntry
		if err := rows.Scan(&e.ID, &e.StockItemID, &e.Quantity, &e.EmployeeName, &e.JobRef, &e.WithdrawnAt); err != nil {
			return nil, fmt.Errorf("scan withdrawal: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
