package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/taller-api/internal/application/dto"
	"github.com/tu-usuario/taller-api/internal/application/stock"
	"github.com/tu-usuario/taller-api/internal/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// StockHandler maneja el catálogo de repuestos y los retiros.
type StockHandler struct {
	uc *stock.StockUseCase
}

func NewStockHandler(uc *stock.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Create godoc
// @Summary      Alta de repuesto
// @Tags         stock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateStockRequest  true  "datos del repuesto"
// @Success      201   {object}  dto.StockResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stocks [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "stock_code y name son requeridos"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		switch err {
		case domain.ErrDuplicateStockCode:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STOCK_CODE_EXISTS", Message: "el código de repuesto ya existe"})
		case domain.ErrInvalidQuantity:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "la cantidad no puede ser negativa"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar catálogo de repuestos
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.StockResponse
// @Router       /api/stocks [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Get devuelve un repuesto con su historial de retiros.
func (h *StockHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "repuesto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update edición del catálogo.
func (h *StockHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "repuesto no encontrado"})
		case domain.ErrInvalidQuantity:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "la cantidad no puede ser negativa"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete baja de repuesto.
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "repuesto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Message: "repuesto eliminado"})
}

// Withdraw godoc
// @Summary      Retirar repuesto del inventario
// @Description  Descuenta la cantidad y registra la entrada en el ledger de
// @Description  retiros dentro de una misma transacción.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string               true  "id del repuesto"
// @Param        body  body  dto.WithdrawRequest  true  "retiro"
// @Success      200   {object}  dto.WithdrawResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stocks/{id}/withdraw [patch]
func (h *StockHandler) Withdraw(c *fiber.Ctx) error {
	var in dto.WithdrawRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity y employee_name son requeridos"})
	}
	out, err := h.uc.Withdraw(c.UserContext(), c.Params("id"), in)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "repuesto no encontrado"})
		case domain.ErrInsufficientStock:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente para el retiro"})
		case domain.ErrInvalidQuantity:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "la cantidad debe ser mayor a cero"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar catálogo a Excel
// @Tags         stock
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200  {file}  binary
// @Router       /api/stocks/export [get]
func (h *StockHandler) Export(c *fiber.Ctx) error {
	data, err := h.uc.ExportXLSX()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	filename := fmt.Sprintf("inventario-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
