package job

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/taller-api/internal/application/dto"
	"github.com/tu-usuario/taller-api/internal/domain"
	"github.com/tu-usuario/taller-api/internal/domain/entity"
	"github.com/tu-usuario/taller-api/internal/domain/repository"
	"github.com/tu-usuario/taller-api/pkg/idgen"
	"github.com/tu-usuario/taller-api/pkg/logger"
)

// receiptCacheTTL vigencia de la vista pública de estado en cache.
const receiptCacheTTL = 60 * time.Second

// JobUseCase ciclo de vida de los trabajos de reparación.
type JobUseCase struct {
	repo     repository.JobRepository
	txRunner JobTxRunner
	codes    *idgen.Generator
	notifier Notifier
	cache    StatusCache
	log      *logger.Logger
}

// NewJobUseCase construye el caso de uso.
func NewJobUseCase(
	repo repository.JobRepository,
	txRunner JobTxRunner,
	codes *idgen.Generator,
	notifier Notifier,
	cache StatusCache,
	log *logger.Logger,
) *JobUseCase {
	return &JobUseCase{
		repo:     repo,
		txRunner: txRunner,
		codes:    codes,
		notifier: notifier,
		cache:    cache,
		log:      log,
	}
}

// Create intake de un equipo. ReceiptNumber duplicado =>
// domain.ErrDuplicateReceipt (índice único en la DB, lo traduce el repo).
func (uc *JobUseCase) Create(createdBy string, in dto.CreateJobRequest) (*dto.JobResponse, error) {
	if in.PriceQuoted.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	jobType := in.JobType
	if jobType == "" {
		jobType = entity.JobTypeNewRepair
	}
	if jobType != entity.JobTypeNewRepair && jobType != entity.JobTypeClaim {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	j := &entity.Job{
		ID:              uuid.New().String(),
		ReceiptNumber:   strings.TrimSpace(in.ReceiptNumber),
		JobCode:         uc.codes.JobCode(),
		CustomerName:    strings.TrimSpace(in.CustomerName),
		CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
		CustomerAddress: strings.TrimSpace(in.CustomerAddress),
		DeviceType:      strings.TrimSpace(in.DeviceType),
		DeviceModel:     strings.TrimSpace(in.DeviceModel),
		Symptom:         strings.TrimSpace(in.Symptom),
		Accessory:       strings.TrimSpace(in.Accessory),
		PriceQuoted:     in.PriceQuoted,
		JobType:         jobType,
		Status:          entity.JobStatusReceived,
		ReceivedDate:    now,
		CreatedBy:       &createdBy,
		AssignedTo:      in.AssignedTo,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(j); err != nil {
		return nil, err
	}
	return toJobResponse(j), nil
}

// List devuelve todos los trabajos para un admin; para los demás, solo los
// que crearon.
func (uc *JobUseCase) List(callerID, callerRole string) ([]*dto.JobResponse, error) {
	var jobs []*entity.Job
	var err error
	if callerRole == entity.RoleAdmin {
		jobs, err = uc.repo.List()
	} else {
		jobs, err = uc.repo.ListByCreator(callerID)
	}
	if err != nil {
		return nil, err
	}
	return toJobResponses(jobs), nil
}

// MyJobs para un técnico: asignados a él o sin asignar; para los demás: los
// que crearon.
func (uc *JobUseCase) MyJobs(callerID, callerRole string) ([]*dto.JobResponse, error) {
	var jobs []*entity.Job
	var err error
	if callerRole == entity.RoleTech {
		jobs, err = uc.repo.ListForTech(callerID)
	} else {
		jobs, err = uc.repo.ListByCreator(callerID)
	}
	if err != nil {
		return nil, err
	}
	return toJobResponses(jobs), nil
}

// Get devuelve un trabajo por id.
func (uc *JobUseCase) Get(id string) (*dto.JobResponse, error) {
	j, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, domain.ErrNotFound
	}
	return toJobResponse(j), nil
}

// GetByReceipt consulta pública de estado. Pasa por la cache (TTL corto)
// porque es la ruta que los clientes refrescan; un fallo de cache degrada a
// consulta directa, nunca a error.
func (uc *JobUseCase) GetByReceipt(ctx context.Context, receiptNumber string) (*dto.ReceiptStatusResponse, error) {
	if payload, ok := uc.cache.Get(ctx, receiptNumber); ok {
		var cached dto.ReceiptStatusResponse
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
	}

	j, err := uc.repo.GetByReceipt(receiptNumber)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, domain.ErrNotFound
	}
	out := &dto.ReceiptStatusResponse{
		ReceiptNumber: j.ReceiptNumber,
		CustomerName:  j.CustomerName,
		DeviceType:    j.DeviceType,
		DeviceModel:   j.DeviceModel,
		Symptom:       j.Symptom,
		Status:        j.Status,
		PriceQuoted:   j.PriceQuoted,
		ReceivedDate:  j.ReceivedDate,
		FinishDate:    j.FinishDate,
	}
	if payload, err := json.Marshal(out); err == nil {
		uc.cache.Set(ctx, receiptNumber, payload, receiptCacheTTL)
	}
	return out, nil
}

// Update edición con lista cerrada de campos. Los campos administrados por
// el sistema (createdBy, receiptNumber, usedParts) no son alcanzables desde
// el DTO. Un cambio de estado desde un estado terminal => ErrConflict.
func (uc *JobUseCase) Update(ctx context.Context, id string, in dto.UpdateJobRequest) (*dto.JobResponse, error) {
	j, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, domain.ErrNotFound
	}

	if in.Status != nil && *in.Status != j.Status {
		if !entity.ValidJobStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		if entity.TerminalStatus(j.Status) {
			return nil, domain.ErrConflict
		}
		j.Status = *in.Status
		if *in.Status == entity.JobStatusCompleted && j.FinishDate == nil {
			now := time.Now()
			j.FinishDate = &now
		}
	}
	if in.CustomerName != nil {
		j.CustomerName = *in.CustomerName
	}
	if in.CustomerPhone != nil {
		j.CustomerPhone = *in.CustomerPhone
	}
	if in.CustomerAddress != nil {
		j.CustomerAddress = *in.CustomerAddress
	}
	if in.DeviceType != nil {
		j.DeviceType = *in.DeviceType
	}
	if in.DeviceModel != nil {
		j.DeviceModel = *in.DeviceModel
	}
	if in.Symptom != nil {
		j.Symptom = *in.Symptom
	}
	if in.Accessory != nil {
		j.Accessory = *in.Accessory
	}
	if in.PriceQuoted != nil {
		if in.PriceQuoted.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		j.PriceQuoted = *in.PriceQuoted
	}
	if in.AssignedTo != nil {
		j.AssignedTo = in.AssignedTo
	}
	if in.StartDate != nil {
		j.StartDate = in.StartDate
	}
	j.UpdatedAt = time.Now()

	if err := uc.repo.Update(j); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, j.ReceiptNumber)
	return toJobResponse(j), nil
}

// Complete cierra el trabajo: status=completed, finishDate=now. Idempotente
// sobre un trabajo ya completado; un trabajo cancelado no se puede completar.
// La notificación de cierre se registra y se descarta si falla.
func (uc *JobUseCase) Complete(ctx context.Context, id string) (*dto.JobResponse, error) {
	j, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, domain.ErrNotFound
	}
	if j.Status == entity.JobStatusCancelled {
		return nil, domain.ErrConflict
	}
	if j.Status != entity.JobStatusCompleted {
		now := time.Now()
		j.Status = entity.JobStatusCompleted
		j.FinishDate = &now
		j.UpdatedAt = now
		if err := uc.repo.Update(j); err != nil {
			return nil, err
		}
		uc.cache.Invalidate(ctx, j.ReceiptNumber)

		if err := uc.notifier.NotifyJobCompleted(j); err != nil {
			uc.log.Warn().Err(err).
				Str("receipt_number", j.ReceiptNumber).
				Msg("notificación de cierre no enviada")
		}
	}
	return toJobResponse(j), nil
}

// WithdrawPart consume un repuesto para el trabajo: en una sola transacción
// descuenta el stock, agrega la entrada del ledger y el snapshot
// (nombre/modelo al momento del retiro) a usedParts del trabajo.
func (uc *JobUseCase) WithdrawPart(ctx context.Context, jobID string, in dto.JobWithdrawRequest) (*dto.JobResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	j, err := uc.repo.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	err = uc.txRunner.RunJob(ctx, func(stockRepo repository.StockRepository, jobRepo repository.JobRepository) error {
		item, err := stockRepo.GetByID(in.StockItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if _, err := stockRepo.DecrementQuantity(item.ID, in.Quantity); err != nil {
			return err
		}
		if err := stockRepo.AppendWithdrawal(&entity.WithdrawalEntry{
			ID:           uuid.New().String(),
			StockItemID:  item.ID,
			Quantity:     in.Quantity,
			EmployeeName: in.EmployeeName,
			JobRef:       j.ReceiptNumber,
			WithdrawnAt:  now,
		}); err != nil {
			return err
		}
		// Snapshot del catálogo al momento del retiro: ediciones futuras del
		// repuesto no alteran el histórico del trabajo.
		part := entity.UsedPart{
			StockItemID: item.ID,
			Name:        item.Name,
			Model:       item.Model,
			Quantity:    in.Quantity,
			UsedAt:      now,
			UnitPrice:   item.Price,
		}
		if err := jobRepo.AppendUsedPart(j.ID, part); err != nil {
			return err
		}
		j.UsedParts = append(j.UsedParts, part)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, j.ReceiptNumber)
	return toJobResponse(j), nil
}

func toJobResponse(j *entity.Job) *dto.JobResponse {
	return &dto.JobResponse{
		ID:              j.ID,
		ReceiptNumber:   j.ReceiptNumber,
		JobCode:         j.JobCode,
		CustomerName:    j.CustomerName,
		CustomerPhone:   j.CustomerPhone,
		CustomerAddress: j.CustomerAddress,
		DeviceType:      j.DeviceType,
		DeviceModel:     j.DeviceModel,
		Symptom:         j.Symptom,
		Accessory:       j.Accessory,
		PriceQuoted:     j.PriceQuoted,
		JobType:         j.JobType,
		Status:          j.Status,
		ReceivedDate:    j.ReceivedDate,
		StartDate:       j.StartDate,
		FinishDate:      j.FinishDate,
		CreatedBy:       j.CreatedBy,
		AssignedTo:      j.AssignedTo,
		UsedParts:       j.UsedParts,
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}
}

func toJobResponses(jobs []*entity.Job) []*dto.JobResponse {
	out := make([]*dto.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toJobResponse(j))
	}
	return out
}
