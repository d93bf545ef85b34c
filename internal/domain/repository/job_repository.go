package repository

import "github.com/tu-usuario/taller-api/internal/domain/entity"

// JobRepository puerto de persistencia de trabajos de reparación.
type JobRepository interface {
	Create(j *entity.Job) error
	GetByID(id string) (*entity.Job, error)
	// GetByReceipt busca por número de recibo. Devuelve (nil, nil) si no existe.
	GetByReceipt(receiptNumber string) (*entity.Job, error)
	// List devuelve todos los trabajos, más recientes primero.
	List() ([]*entity.Job, error)
	// ListByCreator trabajos creados por un empleado.
	ListByCreator(employeeID string) ([]*entity.Job, error)
	// ListForTech trabajos asignados al técnico o sin asignar.
	ListForTech(employeeID string) ([]*entity.Job, error)
	Update(j *entity.Job) error
	// AppendUsedPart agrega el snapshot de un repuesto consumido.
	AppendUsedPart(jobID string, part entity.UsedPart) error
}
