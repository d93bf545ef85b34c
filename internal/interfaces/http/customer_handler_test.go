package http_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/taller-api/internal/application/customer"
	"github.com/tu-usuario/taller-api/internal/application/dto"
	"github.com/tu-usuario/taller-api/internal/domain/entity"
	apphttp "github.com/tu-usuario/taller-api/internal/interfaces/http"
)

type fakeCustomerRepo struct {
	created []*entity.Customer
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	cp := *c
	r.created = append(r.created, &cp)
	return nil
}

func (r *fakeCustomerRepo) List() ([]*entity.Customer, error) { return nil, nil }

func buildCustomerApp(repo *fakeCustomerRepo) *fiber.App {
	h := apphttp.NewCustomerHandler(customer.NewCustomerUseCase(repo))
	app := fiber.New()
	app.Post("/api/customers", h.Create)
	return app
}

// Solo name es obligatorio: phone, email y address son opcionales.
func TestCustomerCreate_SoloNameEsObligatorio(t *testing.T) {
	repo := &fakeCustomerRepo{}
	app := buildCustomerApp(repo)

	resp := postJSON(t, app, http.MethodPost, "/api/customers", dto.CreateCustomerRequest{
		Name: "María López",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Len(t, repo.created, 1)
}

func TestCustomerCreate_SinNameFalla(t *testing.T) {
	app := buildCustomerApp(&fakeCustomerRepo{})

	resp := postJSON(t, app, http.MethodPost, "/api/customers", dto.CreateCustomerRequest{
		Phone: "555-0100",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	out := decodeError(t, resp)
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Equal(t, "name es requerido", out.Message)
}
