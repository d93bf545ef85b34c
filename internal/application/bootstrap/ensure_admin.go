package bootstrap

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/taller-api/internal/domain/entity"
	"github.com/tu-usuario/taller-api/internal/domain/repository"
	"github.com/tu-usuario/taller-api/pkg/logger"
)

// AdminSeed credenciales del admin inicial.
type AdminSeed struct {
	Email    string
	Password string
}

// EnsureAdmin reconciliación idempotente de arranque: garantiza que exista
// un empleado admin con el email configurado. Se ejecuta una vez antes de
// aceptar tráfico; si el registro ya existe no lo modifica.
func EnsureAdmin(ctx context.Context, repo repository.EmployeeRepository, seed AdminSeed, log *logger.Logger) error {
	existing, err := repo.GetByEmail(seed.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	cred, err := entity.NewHashedCredential(seed.Password)
	if err != nil {
		return err
	}
	now := time.Now()
	admin := &entity.Employee{
		ID:                 uuid.New().String(),
		FirstName:          "Admin",
		LastName:           "User",
		Email:              seed.Email,
		Credential:         cred,
		Role:               entity.RoleAdmin,
		Avatar:             entity.DefaultAvatar,
		MustChangePassword: false,
		Active:             true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := repo.Create(admin); err != nil {
		return err
	}
	log.Info().Str("email", seed.Email).Msg("admin inicial creado")
	return nil
}
