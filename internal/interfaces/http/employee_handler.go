package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/taller-api/internal/application/dto"
	"github.com/tu-usuario/taller-api/internal/application/employee"
	"github.com/tu-usuario/taller-api/internal/domain"
)

// EmployeeHandler maneja el directorio de empleados.
type EmployeeHandler struct {
	uc *employee.EmployeeUseCase
}

// NewEmployeeHandler construye el handler de empleados.
func NewEmployeeHandler(uc *employee.EmployeeUseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// List godoc
// @Summary      Listar empleados (admin)
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.EmployeeResponse
// @Router       /api/employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListTechs godoc
// @Summary      Listar técnicos activos
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.TechResponse
// @Router       /api/employees/tech [get]
func (h *EmployeeHandler) ListTechs(c *fiber.Ctx) error {
	out, err := h.uc.ListTechs()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Me devuelve el perfil del empleado autenticado.
func (h *EmployeeHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetEmployeeID(c))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empleado no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Profile devuelve el perfil de un empleado por id.
func (h *EmployeeHandler) Profile(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empleado no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Alta de empleado (admin)
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateEmployeeRequest  true  "datos del empleado"
// @Success      201   {object}  dto.EmployeeResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "first_name, last_name, email, role y password (mínimo 8) son requeridos"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		switch err {
		case domain.ErrDuplicateEmail:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rol inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update edición parcial: admin sobre cualquiera, los demás solo sobre sí
// mismos. Cambio de rol propio => 400 SELF_MODIFICATION.
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetEmployeeID(c), GetRole(c), c.Params("id"), in)
	if err != nil {
		switch err {
		case domain.ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no puede editar este registro"})
		case domain.ErrSelfModification:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "SELF_MODIFICATION", Message: "no puede cambiar su propio rol"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empleado no encontrado"})
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rol inválido"})
		case domain.ErrDuplicateEmail:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete baja definitiva (admin). Autoborrado => 400 SELF_MODIFICATION.
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetEmployeeID(c), c.Params("id")); err != nil {
		switch err {
		case domain.ErrSelfModification:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "SELF_MODIFICATION", Message: "no puede eliminar su propia cuenta"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empleado no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Message: "empleado eliminado"})
}
