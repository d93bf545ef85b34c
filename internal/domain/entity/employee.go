package entity

import "time"

// Roles de empleado.
const (
	RoleAdmin = "admin"
	RoleTech  = "tech"
	RoleStaff = "staff"
)

// DefaultAvatar ruta del avatar por defecto (el almacenamiento de archivos
// es un colaborador externo; aquí solo se guarda la referencia).
const DefaultAvatar = "/uploads/profile/default.jpg"

// ValidRole indica si el rol es uno de los conocidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleTech || role == RoleStaff
}

// Employee empleado del taller. El email es único sin distinguir mayúsculas
// (índice sobre lower(email) en la DB).
type Employee struct {
	ID                 string
	FirstName          string
	LastName           string
	Email              string
	Credential         Credential
	Phone              string
	Role               string
	Avatar             string
	MustChangePassword bool
	Active             bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// FullName nombre completo para mostrar y para el ledger de retiros.
func (e *Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
