package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockRequest alta de repuesto.
type CreateStockRequest struct {
	StockCode string          `json:"stock_code" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Type      string          `json:"type" validate:"required"`
	Model     string          `json:"model" validate:"required"`
	Quantity  int             `json:"quantity" validate:"min=0"`
	Price     decimal.Decimal `json:"price"`
}

// UpdateStockRequest edición parcial del catálogo.
type UpdateStockRequest struct {
	Name     *string          `json:"name"`
	Type     *string          `json:"type"`
	Model    *string          `json:"model"`
	Quantity *int             `json:"quantity"`
	Price    *decimal.Decimal `json:"price"`
}

// WithdrawRequest retiro de inventario (PATCH /stocks/:id/withdraw).
type WithdrawRequest struct {
	Quantity     int    `json:"quantity" validate:"required"`
	EmployeeName string `json:"employee_name" validate:"required"`
	JobRef       string `json:"job_ref"`
}

// WithdrawResponse cantidad restante tras el retiro.
type WithdrawResponse struct {
	StockItemID string `json:"stock_item_id"`
	Remaining   int    `json:"remaining"`
}

// StockResponse repuesto con su ledger de retiros.
type StockResponse struct {
	ID          string              `json:"id"`
	StockCode   string              `json:"stock_code"`
	Name        string              `json:"name"`
	Type        string              `json:"type"`
	Model       string              `json:"model"`
	Quantity    int                 `json:"quantity"`
	Price       decimal.Decimal     `json:"price"`
	Withdrawals []WithdrawalEntryVM `json:"withdrawals,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// WithdrawalEntryVM entrada del ledger en respuestas.
type WithdrawalEntryVM struct {
	Quantity     int       `json:"quantity"`
	EmployeeName string    `json:"employee_name"`
	JobRef       string    `json:"job_ref,omitempty"`
	WithdrawnAt  time.Time `json:"withdrawn_at"`
}
