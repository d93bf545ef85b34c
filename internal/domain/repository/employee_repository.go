package repository

import "github.com/tu-usuario/taller-api/internal/domain/entity"

// EmployeeRepository puerto de persistencia de empleados.
type EmployeeRepository interface {
	Create(e *entity.Employee) error
	GetByID(id string) (*entity.Employee, error)
	// GetByEmail busca sin distinguir mayúsculas. Devuelve (nil, nil) si no existe.
	GetByEmail(email string) (*entity.Employee, error)
	List() ([]*entity.Employee, error)
	// ListTechs devuelve los técnicos activos.
	ListTechs() ([]*entity.Employee, error)
	Update(e *entity.Employee) error
	// UpdateCredential persiste solo la credencial y el flag mustChangePassword.
	UpdateCredential(id string, cred entity.Credential, mustChange bool) error
	Delete(id string) error
}
