package repository

import "github.com/tu-usuario/taller-api/internal/domain/entity"

// StockRepository puerto de persistencia del catálogo de repuestos.
// Usable con pool o con transacción (ver postgres.Querier).
type StockRepository interface {
	Create(s *entity.StockItem) error
	GetByID(id string) (*entity.StockItem, error)
	List() ([]*entity.StockItem, error)
	Update(s *entity.StockItem) error
	Delete(id string) error
	// DecrementQuantity resta qty de forma condicional y atómica
	// (UPDATE ... WHERE quantity >= qty RETURNING quantity). Devuelve la
	// cantidad restante; domain.ErrInsufficientStock si no alcanza y
	// domain.ErrNotFound si el repuesto no existe.
	DecrementQuantity(id string, qty int) (remaining int, err error)
	// AppendWithdrawal agrega una entrada al ledger del repuesto.
	AppendWithdrawal(e *entity.WithdrawalEntry) error
	// ListWithdrawals devuelve el ledger de un repuesto en orden cronológico.
	ListWithdrawals(stockItemID string) ([]*entity.WithdrawalEntry, error)
}
