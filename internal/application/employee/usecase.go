package employee

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/taller-api/internal/application/auth"
	"github.com/tu-usuario/taller-api/internal/application/dto"
	"github.com/tu-usuario/taller-api/internal/domain"
	"github.com/tu-usuario/taller-api/internal/domain/entity"
	"github.com/tu-usuario/taller-api/internal/domain/repository"
)

// EmployeeUseCase gestión de empleados con reglas de propiedad: un admin
// actúa sobre cualquier registro; los demás solo sobre el propio.
type EmployeeUseCase struct {
	repo repository.EmployeeRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo}
}

// List devuelve todos los empleados (la ruta exige rol admin).
func (uc *EmployeeUseCase) List() ([]*dto.EmployeeResponse, error) {
	emps, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.EmployeeResponse, 0, len(emps))
	for _, e := range emps {
		out = append(out, auth.ToEmployeeResponse(e))
	}
	return out, nil
}

// ListTechs devuelve los técnicos activos (para asignación de trabajos).
func (uc *EmployeeUseCase) ListTechs() ([]*dto.TechResponse, error) {
	techs, err := uc.repo.ListTechs()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TechResponse, 0, len(techs))
	for _, t := range techs {
		out = append(out, &dto.TechResponse{ID: t.ID, FirstName: t.FirstName, LastName: t.LastName})
	}
	return out, nil
}

// Get devuelve el perfil de un empleado.
func (uc *EmployeeUseCase) Get(id string) (*dto.EmployeeResponse, error) {
	emp, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.ErrNotFound
	}
	return auth.ToEmployeeResponse(emp), nil
}

// Create alta de empleado (solo admin, la ruta lo exige).
// Email duplicado (sin distinguir mayúsculas) => domain.ErrDuplicateEmail.
func (uc *EmployeeUseCase) Create(in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	cred, err := entity.NewHashedCredential(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	emp := &entity.Employee{
		ID:                 uuid.New().String(),
		FirstName:          in.FirstName,
		LastName:           in.LastName,
		Email:              in.Email,
		Credential:         cred,
		Phone:              in.Phone,
		Role:               in.Role,
		Avatar:             entity.DefaultAvatar,
		MustChangePassword: false,
		Active:             true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	// La unicidad la garantiza el índice único sobre lower(email); el repo
	// traduce la violación a ErrDuplicateEmail. No hay check previo que
	// pueda perder la carrera de doble inserción.
	if err := uc.repo.Create(emp); err != nil {
		return nil, err
	}
	return auth.ToEmployeeResponse(emp), nil
}

// Update edición parcial. callerID/callerRole vienen del token verificado.
// Reglas: admin edita a cualquiera; otro rol solo a sí mismo y sin tocar
// rol ni flag active; un admin no puede cambiar su propio rol.
func (uc *EmployeeUseCase) Update(callerID, callerRole, targetID string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	isAdmin := callerRole == entity.RoleAdmin
	if !isAdmin && callerID != targetID {
		return nil, domain.ErrForbidden
	}

	emp, err := uc.repo.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.ErrNotFound
	}

	if in.Role != nil {
		if !isAdmin {
			return nil, domain.ErrForbidden
		}
		if callerID == targetID {
			return nil, domain.ErrSelfModification
		}
		if !entity.ValidRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		emp.Role = *in.Role
	}
	if in.Active != nil {
		if !isAdmin {
			return nil, domain.ErrForbidden
		}
		emp.Active = *in.Active
	}
	if in.FirstName != nil {
		emp.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		emp.LastName = *in.LastName
	}
	if in.Phone != nil {
		emp.Phone = *in.Phone
	}
	if in.Avatar != nil {
		emp.Avatar = *in.Avatar
	}
	emp.UpdatedAt = time.Now()

	if err := uc.repo.Update(emp); err != nil {
		return nil, err
	}
	return auth.ToEmployeeResponse(emp), nil
}

// Delete baja definitiva (solo admin, la ruta lo exige). Un admin no puede
// eliminar su propia cuenta.
func (uc *EmployeeUseCase) Delete(callerID, targetID string) error {
	if callerID == targetID {
		return domain.ErrSelfModification
	}
	emp, err := uc.repo.GetByID(targetID)
	if err != nil {
		return err
	}
	if emp == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(targetID)
}
