package job

import (
	"context"
	"time"

	"github.com/tu-usuario/taller-api/internal/domain/entity"
	"github.com/tu-usuario/taller-api/internal/domain/repository"
)

// JobTxRunner ejecuta fn dentro de una transacción con repos de stock y de
// trabajos atados a ella (retiro de repuesto + snapshot en el trabajo).
type JobTxRunner interface {
	RunJob(ctx context.Context, fn func(stockRepo repository.StockRepository, jobRepo repository.JobRepository) error) error
}

// ReceiptPDFGenerator renderiza el recibo de recepción de un trabajo.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, j *entity.Job) ([]byte, error)
}

// Notifier envía la notificación de trabajo terminado. La entrega es un
// efecto secundario: un fallo se registra y se descarta, nunca hace fallar
// la operación principal.
type Notifier interface {
	NotifyJobCompleted(j *entity.Job) error
}

// StatusCache cache de la consulta pública de estado por número de recibo.
// Una implementación nula es válida (sin cache, siempre va a la DB).
type StatusCache interface {
	Get(ctx context.Context, receiptNumber string) ([]byte, bool)
	Set(ctx context.Context, receiptNumber string, payload []byte, ttl time.Duration)
	Invalidate(ctx context.Context, receiptNumber string)
}
