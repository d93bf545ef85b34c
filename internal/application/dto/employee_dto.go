package dto

import "time"

// CreateEmployeeRequest alta de empleado (solo admin).
type CreateEmployeeRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
	Role      string `json:"role" validate:"required,oneof=admin tech staff"`
	Password  string `json:"password" validate:"required,min=8"`
}

// UpdateEmployeeRequest edición parcial: solo los campos presentes se aplican.
type UpdateEmployeeRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Role      *string `json:"role"`
	Active    *bool   `json:"active"`
	Avatar    *string `json:"avatar"`
}

// EmployeeResponse empleado sin credencial.
type EmployeeResponse struct {
	ID                 string    `json:"id"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone,omitempty"`
	Role               string    `json:"role"`
	Avatar             string    `json:"avatar"`
	Active             bool      `json:"active"`
	MustChangePassword bool      `json:"must_change_password"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TechResponse vista reducida para el selector de técnicos.
type TechResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
