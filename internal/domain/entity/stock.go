package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem repuesto en inventario. Quantity nunca es negativa: el decremento
// se hace con un UPDATE condicional en la DB, no con read-modify-write.
type StockItem struct {
	ID        string
	StockCode string // único, ej. CPU-001
	Name      string
	Type      string
	Model     string
	Quantity  int
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WithdrawalEntry entrada inmutable del ledger de retiros de un repuesto.
// Solo se agrega; nunca se edita ni borra.
type WithdrawalEntry struct {
	ID           string
	StockItemID  string
	Quantity     int
	EmployeeName string
	JobRef       string // número de recibo del trabajo, opcional
	WithdrawnAt  time.Time
}
