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

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementación del puerto EmployeeRepository sobre PostgreSQL.
// La columna password guarda hash bcrypt o texto plano legacy; la
// clasificación la hace entity.ParseCredential al escanear.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador de persistencia para empleados.
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

const employeeColumns = `id, first_name, last_name, email, password, phone, role, avatar, must_change_password, active, created_at, updated_at`

// Create persiste un nuevo empleado. Email duplicado (índice único sobre
// lower(email)) => domain.ErrDuplicateEmail.
func (r *EmployeeRepo) Create(e *entity.Employee) error {
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.FirstName, e.LastName, e.Email, e.Credential.Value, e.Phone,
		e.Role, e.Avatar, e.MustChangePassword, e.Active, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if uniqueViolation(err) != "" {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado por ID. Devuelve (nil, nil) si no existe.
func (r *EmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get employee by id")
}

// GetByEmail busca sin distinguir mayúsculas. Devuelve (nil, nil) si no existe.
func (r *EmployeeRepo) GetByEmail(email string) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE lower(email) = lower($1) LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, email), "get employee by email")
}

// List devuelve todos los empleados, más recientes primero.
func (r *EmployeeRepo) List() ([]*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY created_at DESC`
	return r.scanMany(query)
}

// ListTechs devuelve los técnicos activos.
func (r *EmployeeRepo) ListTechs() ([]*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees
		WHERE role = 'tech' AND active ORDER BY first_name`
	return r.scanMany(query)
}

// Update actualiza un empleado completo (incluida la credencial).
func (r *EmployeeRepo) Update(e *entity.Employee) error {
	query := `
		UPDATE employees SET first_name = $2, last_name = $3, email = $4, password = $5,
			phone = $6, role = $7, avatar = $8, must_change_password = $9, active = $10,
			updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.FirstName, e.LastName, e.Email, e.Credential.Value, e.Phone,
		e.Role, e.Avatar, e.MustChangePassword, e.Active, e.UpdatedAt,
	)
	if err != nil {
		if uniqueViolation(err) != "" {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

// UpdateCredential persiste solo credencial y flag mustChangePassword
// (migración legacy y cambio de contraseña).
func (r *EmployeeRepo) UpdateCredential(id string, cred entity.Credential, mustChange bool) error {
	query := `UPDATE employees SET password = $2, must_change_password = $3, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, cred.Value, mustChange)
	if err != nil {
		return fmt.Errorf("update credential: %w", err)
	}
	return nil
}

// Delete elimina un empleado por ID.
func (r *EmployeeRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepo) scanOne(row pgx.Row, op string) (*entity.Employee, error) {
	var e entity.Employee
	var password string
	err := row.Scan(
		&e.ID, &e.FirstName, &e.LastName, &e.Email, &password, &e.Phone,
		&e.Role, &e.Avatar, &e.MustChangePassword, &e.Active, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	e.Credential = entity.ParseCredential(password)
	return &e, nil
}

func (r *EmployeeRepo) scanMany(query string, args ...any) ([]*entity.Employee, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		var e entity.Employee
		var password string
		if err := rows.Scan(
			&e.ID, &e.FirstName, &e.LastName, &e.Email, &password, &e.Phone,
			&e.Role, &e.Avatar, &e.MustChangePassword, &e.Active, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		e.Credential = entity.ParseCredential(password)
		list = append(list, &e)
	}
	return list, rows.Err()
}
