package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/taller-api/internal/application/job"
	"github.com/tu-usuario/taller-api/internal/application/stock"
	"github.com/tu-usuario/taller-api/internal/domain/repository"
)

var _ stock.TxRunner = (*TxRunner)(nil)
var _ job.JobTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con un StockRepository atado a la tx
// y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(stockRepo repository.StockRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunJob inicia una transacción con repos de stock y de trabajos (retiro de
// repuesto ligado a un trabajo).
func (r *TxRunner) RunJob(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	jobRepo repository.JobRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockRepository(tx), NewJobRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
