package stock

import (
	"context"

	"github.com/tu-usuario/taller-api/internal/domain/entity"
	"github.com/tu-usuario/taller-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con un StockRepository
// atado a ella. Commit si fn retorna nil, Rollback si no.
type TxRunner interface {
	Run(ctx context.Context, fn func(stockRepo repository.StockRepository) error) error
}

// Exporter genera el listado del catálogo en una hoja de cálculo.
type Exporter interface {
	GenerateStockXLSX(items []*entity.StockItem) ([]byte, error)
}
