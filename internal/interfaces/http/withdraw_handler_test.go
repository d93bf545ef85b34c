package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/taller-api/internal/application/dto"
	"github.com/tu-usuario/taller-api/internal/application/job"
	"github.com/tu-usuario/taller-api/internal/application/stock"
	"github.com/tu-usuario/taller-api/internal/domain"
	"github.com/tu-usuario/taller-api/internal/domain/entity"
	"github.com/tu-usuario/taller-api/internal/domain/repository"
	"github.com/tu-usuario/taller-api/internal/infrastructure/rediscache"
	apphttp "github.com/tu-usuario/taller-api/internal/interfaces/http"
	"github.com/tu-usuario/taller-api/pkg/idgen"
	"github.com/tu-usuario/taller-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos para ejercitar los handlers de retiro
// ──────────────────────────────────────────────────────────────────────────────

type wdStockRepo struct {
	items map[string]*entity.StockItem
}

func (r *wdStockRepo) Create(*entity.StockItem) error { return nil }

func (r *wdStockRepo) GetByID(id string) (*entity.StockItem, error) {
	if it, ok := r.items[id]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, nil
}

func (r *wdStockRepo) List() ([]*entity.StockItem, error) { return nil, nil }

func (r *wdStockRepo) Update(*entity.StockItem) error { return nil }

func (r *wdStockRepo) Delete(string) error { return nil }

func (r *wdStockRepo) DecrementQuantity(id string, qty int) (int, error) {
	it, ok := r.items[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if it.Quantity < qty {
		return 0, domain.ErrInsufficientStock
	}
	it.Quantity -= qty
	return it.Quantity, nil
}

func (r *wdStockRepo) AppendWithdrawal(*entity.WithdrawalEntry) error { return nil }

func (r *wdStockRepo) ListWithdrawals(string) ([]*entity.WithdrawalEntry, error) { return nil, nil }

type wdJobRepo struct {
	jobs map[string]*entity.Job
}

func (r *wdJobRepo) Create(*entity.Job) error { return nil }

func (r *wdJobRepo) GetByID(id string) (*entity.Job, error) {
	if j, ok := r.jobs[id]; ok {
		cp := *j
		return &cp, nil
	}
	return nil, nil
}

func (r *wdJobRepo) GetByReceipt(string) (*entity.Job, error) { return nil, nil }

func (r *wdJobRepo) List() ([]*entity.Job, error) { return nil, nil }

func (r *wdJobRepo) ListByCreator(string) ([]*entity.Job, error) { return nil, nil }

func (r *wdJobRepo) ListForTech(string) ([]*entity.Job, error) { return nil, nil }

func (r *wdJobRepo) Update(*entity.Job) error { return nil }

func (r *wdJobRepo) AppendUsedPart(string, entity.UsedPart) error { return nil }

// wdTxRunner ejecuta fn directamente, sin transacción real.
type wdTxRunner struct {
	stockRepo *wdStockRepo
	jobRepo   *wdJobRepo
}

func (tr wdTxRunner) Run(_ context.Context, fn func(repository.StockRepository) error) error {
	return fn(tr.stockRepo)
}

func (tr wdTxRunner) RunJob(_ context.Context, fn func(repository.StockRepository, repository.JobRepository) error) error {
	return fn(tr.stockRepo, tr.jobRepo)
}

type wdNotifier struct{}

func (wdNotifier) NotifyJobCompleted(*entity.Job) error { return nil }

type wdExporter struct{}

func (wdExporter) GenerateStockXLSX([]*entity.StockItem) ([]byte, error) { return nil, nil }

func postJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock insuficiente => 400 (error del cliente, no conflicto de estado)
// ──────────────────────────────────────────────────────────────────────────────

func TestStockWithdraw_StockInsuficienteDevuelve400(t *testing.T) {
	stockRepo := &wdStockRepo{items: map[string]*entity.StockItem{
		"s1": {ID: "s1", StockCode: "CPU-001", Name: "CPU", Quantity: 5},
	}}
	uc := stock.NewStockUseCase(stockRepo, wdTxRunner{stockRepo: stockRepo}, wdExporter{})
	h := apphttp.NewStockHandler(uc)

	app := fiber.New()
	app.Patch("/api/stocks/:id/withdraw", h.Withdraw)

	resp := postJSON(t, app, http.MethodPatch, "/api/stocks/s1/withdraw", dto.WithdrawRequest{
		Quantity:     10,
		EmployeeName: "Carlos Pérez",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decodeError(t, resp).Code)

	// El retiro rechazado no toca el inventario.
	assert.Equal(t, 5, stockRepo.items["s1"].Quantity)
}

func TestJobWithdraw_StockInsuficienteDevuelve400(t *testing.T) {
	creator := testEmployeeID
	stockRepo := &wdStockRepo{items: map[string]*entity.StockItem{
		"s1": {ID: "s1", StockCode: "CPU-001", Name: "CPU", Quantity: 5},
	}}
	jobRepo := &wdJobRepo{jobs: map[string]*entity.Job{
		"j1": {
			ID:            "j1",
			ReceiptNumber: "R-0001",
			Status:        entity.JobStatusReceived,
			CreatedBy:     &creator,
			ReceivedDate:  time.Now(),
		},
	}}
	codes, err := idgen.New(1)
	require.NoError(t, err)
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	uc := job.NewJobUseCase(jobRepo, wdTxRunner{stockRepo: stockRepo, jobRepo: jobRepo}, codes, wdNotifier{}, rediscache.Noop{}, log)
	h := apphttp.NewJobHandler(uc, nil)

	app := fiber.New()
	app.Post("/api/jobs/:id/withdraw", h.WithdrawPart)

	resp := postJSON(t, app, http.MethodPost, "/api/jobs/j1/withdraw", dto.JobWithdrawRequest{
		StockItemID:  "s1",
		Quantity:     10,
		EmployeeName: "Carlos Pérez",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decodeError(t, resp).Code)
	assert.Equal(t, 5, stockRepo.items["s1"].Quantity)
}
