package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/taller-api/internal/domain/entity"
)

// CreateJobRequest intake de un equipo (POST /jobs).
type CreateJobRequest struct {
	CustomerName    string          `json:"customer_name" validate:"required"`
	CustomerPhone   string          `json:"customer_phone"`
	CustomerAddress string          `json:"customer_address"`
	ReceiptNumber   string          `json:"receipt_number" validate:"required"`
	DeviceType      string          `json:"device_type" validate:"required"`
	DeviceModel     string          `json:"device_model" validate:"required"`
	Symptom         string          `json:"symptom" validate:"required"`
	Accessory       string          `json:"accessory"`
	PriceQuoted     decimal.Decimal `json:"price_quoted"`
	JobType         string          `json:"job_type"`
	AssignedTo      *string         `json:"assigned_to"`
}

// UpdateJobRequest edición con lista cerrada de campos: los campos
// administrados por el sistema (created_by, receipt_number, used_parts)
// no son editables.
type UpdateJobRequest struct {
	CustomerName    *string          `json:"customer_name"`
	CustomerPhone   *string          `json:"customer_phone"`
	CustomerAddress *string          `json:"customer_address"`
	DeviceType      *string          `json:"device_type"`
	DeviceModel     *string          `json:"device_model"`
	Symptom         *string          `json:"symptom"`
	Accessory       *string          `json:"accessory"`
	PriceQuoted     *decimal.Decimal `json:"price_quoted"`
	Status          *string          `json:"status"`
	AssignedTo      *string          `json:"assigned_to"`
	StartDate       *time.Time       `json:"start_date"`
}

// JobWithdrawRequest consumo de un repuesto por un trabajo (POST /jobs/:id/withdraw).
type JobWithdrawRequest struct {
	StockItemID  string `json:"stock_item_id" validate:"required"`
	Quantity     int    `json:"quantity" validate:"required"`
	EmployeeName string `json:"employee_name" validate:"required"`
}

// JobResponse trabajo completo.
type JobResponse struct {
	ID              string            `json:"id"`
	ReceiptNumber   string            `json:"receipt_number"`
	JobCode         string            `json:"job_code,omitempty"`
	CustomerName    string            `json:"customer_name"`
	CustomerPhone   string            `json:"customer_phone,omitempty"`
	CustomerAddress string            `json:"customer_address,omitempty"`
	DeviceType      string            `json:"device_type"`
	DeviceModel     string            `json:"device_model"`
	Symptom         string            `json:"symptom"`
	Accessory       string            `json:"accessory,omitempty"`
	PriceQuoted     decimal.Decimal   `json:"price_quoted"`
	JobType         string            `json:"job_type"`
	Status          string            `json:"status"`
	ReceivedDate    time.Time         `json:"received_date"`
	StartDate       *time.Time        `json:"start_date,omitempty"`
	FinishDate      *time.Time        `json:"finish_date,omitempty"`
	CreatedBy       *string           `json:"created_by,omitempty"`
	AssignedTo      *string           `json:"assigned_to,omitempty"`
	UsedParts       []entity.UsedPart `json:"used_parts,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// ReceiptStatusResponse vista pública de GET /jobs/receipt/:receiptNumber:
// lo que el cliente necesita para seguir su reparación, sin datos internos.
type ReceiptStatusResponse struct {
	ReceiptNumber string          `json:"receipt_number"`
	CustomerName  string          `json:"customer_name"`
	DeviceType    string          `json:"device_type"`
	DeviceModel   string          `json:"device_model"`
	Symptom       string          `json:"symptom"`
	Status        string          `json:"status"`
	PriceQuoted   decimal.Decimal `json:"price_quoted"`
	ReceivedDate  time.Time       `json:"received_date"`
	FinishDate    *time.Time      `json:"finish_date,omitempty"`
}
