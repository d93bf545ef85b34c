package dto

import "time"

// CreateCustomerRequest alta de cliente.
type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
}

// CustomerResponse cliente.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
