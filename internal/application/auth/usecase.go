package auth

import (
	"github.com/tu-usuario/taller-api/internal/application/dto"
	"github.com/tu-usuario/taller-api/internal/domain"
	"github.com/tu-usuario/taller-api/internal/domain/entity"
	"github.com/tu-usuario/taller-api/internal/domain/repository"
	"github.com/tu-usuario/taller-api/pkg/jwt"
	"github.com/tu-usuario/taller-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret  string
	ExpDays int
	Issuer  string
}

// AuthUseCase casos de uso de autenticación: login, cambio de contraseña y
// reset de admin. La comparación de contraseñas pasa siempre por la variante
// entity.Credential (Hashed | LegacyPlaintext).
type AuthUseCase struct {
	employeeRepo     repository.EmployeeRepository
	jwtCfg           JWTConfig
	adminResetSecret string
	log              *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(employeeRepo repository.EmployeeRepository, jwtCfg JWTConfig, adminResetSecret string, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{
		employeeRepo:     employeeRepo,
		jwtCfg:           jwtCfg,
		adminResetSecret: adminResetSecret,
		log:              log,
	}
}

// Login verifica email/password, migra credenciales legacy a bcrypt en el
// primer match exitoso, genera JWT (7 días) y retorna token + perfil.
//
// El error es el mismo para email desconocido, cuenta inactiva y contraseña
// incorrecta: domain.ErrInvalidCredentials (evita enumeración de cuentas).
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	emp, err := uc.employeeRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if emp == nil || !emp.Active {
		return nil, domain.ErrInvalidCredentials
	}
	if !emp.Credential.Matches(in.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	// Migración legacy: re-hashear y marcar mustChangePassword en el primer
	// login exitoso con contraseña en texto plano.
	if emp.Credential.NeedsUpgrade() {
		cred, err := entity.NewHashedCredential(in.Password)
		if err != nil {
			return nil, err
		}
		if err := uc.employeeRepo.UpdateCredential(emp.ID, cred, true); err != nil {
			return nil, err
		}
		emp.Credential = cred
		emp.MustChangePassword = true
		uc.log.Info().Str("employee_id", emp.ID).Msg("credencial legacy migrada a bcrypt")
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, emp.ID, emp.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpDays)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:    token,
		Employee: *ToEmployeeResponse(emp),
	}, nil
}

// ChangePassword re-valida la contraseña vigente con la misma comparación
// dual y, si coincide, guarda el nuevo hash y limpia mustChangePassword.
func (uc *AuthUseCase) ChangePassword(employeeID string, in dto.ChangePasswordRequest) error {
	emp, err := uc.employeeRepo.GetByID(employeeID)
	if err != nil {
		return err
	}
	if emp == nil || !emp.Active {
		return domain.ErrNotFound
	}
	if !emp.Credential.Matches(in.OldPassword) {
		return domain.ErrInvalidCredentials
	}
	cred, err := entity.NewHashedCredential(in.NewPassword)
	if err != nil {
		return err
	}
	return uc.employeeRepo.UpdateCredential(emp.ID, cred, false)
}

// ResetAdmin restablece la contraseña de un admin, solo con el secreto de
// configuración correcto. Reactiva la cuenta y limpia mustChangePassword.
func (uc *AuthUseCase) ResetAdmin(in dto.ResetAdminRequest) error {
	if uc.adminResetSecret == "" || in.Secret != uc.adminResetSecret {
		return domain.ErrForbidden
	}
	emp, err := uc.employeeRepo.GetByEmail(in.Email)
	if err != nil {
		return err
	}
	if emp == nil || emp.Role != entity.RoleAdmin {
		return domain.ErrNotFound
	}
	cred, err := entity.NewHashedCredential(in.NewPassword)
	if err != nil {
		return err
	}
	emp.Credential = cred
	emp.Active = true
	emp.MustChangePassword = false
	return uc.employeeRepo.Update(emp)
}

// ToEmployeeResponse proyecta un Employee sin la credencial.
func ToEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	if e == nil {
		return nil
	}
	return &dto.EmployeeResponse{
		ID:                 e.ID,
		FirstName:          e.FirstName,
		LastName:           e.LastName,
		Email:              e.Email,
		Phone:              e.Phone,
		Role:               e.Role,
		Avatar:             e.Avatar,
		Active:             e.Active,
		MustChangePassword: e.MustChangePassword,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}
