package customer

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/taller-api/internal/application/dto"
	"github.com/tu-usuario/taller-api/internal/domain/entity"
	"github.com/tu-usuario/taller-api/internal/domain/repository"
)

// CustomerUseCase registro de clientes del taller.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create alta de cliente. El email se normaliza a minúsculas.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	now := time.Now()
	c := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Address:   strings.TrimSpace(in.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(c); err != nil {
		return nil, err
	}
	return toResponse(c), nil
}

// List devuelve todos los clientes, más recientes primero.
func (uc *CustomerUseCase) List() ([]*dto.CustomerResponse, error) {
	customers, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toResponse(c))
	}
	return out, nil
}

func toResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
