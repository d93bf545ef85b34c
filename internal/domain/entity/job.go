package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un trabajo de reparación.
const (
	JobStatusReceived      = "received"
	JobStatusInRepair      = "in_repair"
	JobStatusAwaitingParts = "awaiting_parts"
	JobStatusCompleted     = "completed"
	JobStatusCancelled     = "cancelled"
)

// Tipos de trabajo.
const (
	JobTypeNewRepair = "new_repair"
	JobTypeClaim     = "claim"
)

// ValidJobStatus indica si el estado es uno de los conocidos.
func ValidJobStatus(s string) bool {
	switch s {
	case JobStatusReceived, JobStatusInRepair, JobStatusAwaitingParts,
		JobStatusCompleted, JobStatusCancelled:
		return true
	}
	return false
}

// TerminalStatus indica si el estado es terminal (completed/cancelled).
// Un trabajo en estado terminal no vuelve atrás vía Update.
func TerminalStatus(s string) bool {
	return s == JobStatusCompleted || s == JobStatusCancelled
}

// UsedPart repuesto consumido por un trabajo. Name y Model son un snapshot
// tomado al momento del retiro: ediciones posteriores del catálogo no alteran
// el histórico del trabajo.
type UsedPart struct {
	StockItemID string          `json:"stock_item_id"`
	Name        string          `json:"name"`
	Model       string          `json:"model"`
	Quantity    int             `json:"quantity"`
	UsedAt      time.Time       `json:"used_at"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Job trabajo de reparación. ReceiptNumber es único e inmutable tras la
// creación; es el identificador que el cliente usa para consultar el estado.
type Job struct {
	ID              string
	ReceiptNumber   string
	JobCode         string
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	DeviceType      string
	DeviceModel     string
	Symptom         string
	Accessory       string
	PriceQuoted     decimal.Decimal
	JobType         string
	Status          string
	ReceivedDate    time.Time
	StartDate       *time.Time
	FinishDate      *time.Time
	CreatedBy       *string // nil si el empleado creador fue eliminado
	AssignedTo      *string
	UsedParts       []UsedPart
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
