package stock

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/taller-api/internal/application/dto"
	"github.com/tu-usuario/taller-api/internal/domain"
	"github.com/tu-usuario/taller-api/internal/domain/entity"
	"github.com/tu-usuario/taller-api/internal/domain/repository"
)

// StockUseCase catálogo de repuestos y transacción de retiro.
type StockUseCase struct {
	repo     repository.StockRepository
	txRunner TxRunner
	exporter Exporter
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(repo repository.StockRepository, txRunner TxRunner, exporter Exporter) *StockUseCase {
	return &StockUseCase{repo: repo, txRunner: txRunner, exporter: exporter}
}

// Create alta de repuesto. Código duplicado => domain.ErrDuplicateStockCode
// (índice único, lo traduce el repo).
func (uc *StockUseCase) Create(in dto.CreateStockRequest) (*dto.StockResponse, error) {
	if in.Quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	now := time.Now()
	item := &entity.StockItem{
		ID:        uuid.New().String(),
		StockCode: strings.TrimSpace(in.StockCode),
		Name:      strings.TrimSpace(in.Name),
		Type:      strings.TrimSpace(in.Type),
		Model:     strings.TrimSpace(in.Model),
		Quantity:  in.Quantity,
		Price:     in.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return uc.toResponse(item, false)
}

// Get devuelve un repuesto con su ledger de retiros.
func (uc *StockUseCase) Get(id string) (*dto.StockResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(item, true)
}

// List devuelve el catálogo completo (sin ledger, para el listado).
func (uc *StockUseCase) List() ([]*dto.StockResponse, error) {
	items, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StockResponse, 0, len(items))
	for _, it := range items {
		r, err := uc.toResponse(it, false)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Update edición directa del catálogo (incluida la cantidad; el historial de
// retiros no se toca por esta vía).
func (uc *StockUseCase) Update(id string, in dto.UpdateStockRequest) (*dto.StockResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Type != nil {
		item.Type = *in.Type
	}
	if in.Model != nil {
		item.Model = *in.Model
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, domain.ErrInvalidQuantity
		}
		item.Quantity = *in.Quantity
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return uc.toResponse(item, false)
}

// Delete baja de un repuesto del catálogo.
func (uc *StockUseCase) Delete(id string) error {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// Withdraw descuenta qty del repuesto y registra la entrada del ledger, todo
// dentro de una transacción. El decremento es un UPDATE condicional: si la
// cantidad no alcanza no se modifica nada y retorna ErrInsufficientStock.
func (uc *StockUseCase) Withdraw(ctx context.Context, stockID string, in dto.WithdrawRequest) (*dto.WithdrawResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	var remaining int
	err := uc.txRunner.Run(ctx, func(stockRepo repository.StockRepository) error {
		var err error
		remaining, err = stockRepo.DecrementQuantity(stockID, in.Quantity)
		if err != nil {
			return err
		}
		return stockRepo.AppendWithdrawal(&entity.WithdrawalEntry{
			ID:           uuid.New().String(),
			StockItemID:  stockID,
			Quantity:     in.Quantity,
			EmployeeName: in.EmployeeName,
			JobRef:       in.JobRef,
			WithdrawnAt:  time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}
	return &dto.WithdrawResponse{StockItemID: stockID, Remaining: remaining}, nil
}

// ExportXLSX genera el catálogo completo como hoja de cálculo.
func (uc *StockUseCase) ExportXLSX() ([]byte, error) {
	items, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	return uc.exporter.GenerateStockXLSX(items)
}

func (uc *StockUseCase) toResponse(item *entity.StockItem, withLedger bool) (*dto.StockResponse, error) {
	r := &dto.StockResponse{
		ID:        item.ID,
		StockCode: item.StockCode,
		Name:      item.Name,
		Type:      item.Type,
		Model:     item.Model,
		Quantity:  item.Quantity,
		Price:     item.Price,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
	if withLedger {
		entries, err := uc.repo.ListWithdrawals(item.ID)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			r.Withdrawals = append(r.Withdrawals, dto.WithdrawalEntryVM{
				Quantity:     e.Quantity,
				EmployeeName: e.EmployeeName,
				JobRef:       e.JobRef,
				WithdrawnAt:  e.WithdrawnAt,
			})
		}
	}
	return r, nil
}
