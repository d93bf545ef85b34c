package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/taller-api/internal/domain/entity"
	"github.com/tu-usuario/taller-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador de persistencia para clientes.
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(c *entity.Customer) error {
	query := `
		INSERT INTO customers (id, name, phone, email, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.Phone, c.Email, c.Address, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// List devuelve todos los clientes, más recientes primero.
func (r *CustomerRepo) List() ([]*entity.Customer, error) {
	query := `
		SELECT id, name, phone, email, address, created_at, updated_at
		FROM customers ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
