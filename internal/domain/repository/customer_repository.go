package repository

import "github.com/tu-usuario/taller-api/internal/domain/entity"

// CustomerRepository puerto de persistencia de clientes.
type CustomerRepository interface {
	Create(c *entity.Customer) error
	List() ([]*entity.Customer, error)
}
