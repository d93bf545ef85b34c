package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/taller-api/internal/application/dto"
	"github.com/tu-usuario/taller-api/internal/application/job"
	"github.com/tu-usuario/taller-api/internal/domain"
)

// JobHandler maneja el ciclo de vida de los trabajos de reparación.
type JobHandler struct {
	uc  *job.JobUseCase
	pdf *job.PDFUseCase
}

func NewJobHandler(uc *job.JobUseCase, pdf *job.PDFUseCase) *JobHandler {
	return &JobHandler{uc: uc, pdf: pdf}
}

// Create godoc
// @Summary      Intake de un equipo
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateJobRequest  true  "datos del trabajo"
// @Success      201   {object}  dto.JobResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateJobRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "receipt_number, customer_name, device_type y symptom son requeridos"})
	}
	out, err := h.uc.Create(GetEmployeeID(c), in)
	if err != nil {
		switch err {
		case domain.ErrDuplicateReceipt:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "RECEIPT_EXISTS", Message: "el número de recibo ya existe"})
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos del trabajo inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar trabajos
// @Description  Un admin ve todos los trabajos; los demás roles solo los que
// @Description  registraron.
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.JobResponse
// @Router       /api/jobs [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetEmployeeID(c), GetRole(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// MyJobs cola de trabajo del empleado autenticado. Para un técnico: los
// asignados a él o sin asignar.
func (h *JobHandler) MyJobs(c *fiber.Ctx) error {
	out, err := h.uc.MyJobs(GetEmployeeID(c), GetRole(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Get devuelve un trabajo por id.
func (h *JobHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "trabajo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ReceiptStatus godoc
// @Summary      Consultar estado por número de recibo (público)
// @Description  Vista reducida pensada para que el cliente consulte el estado
// @Description  de su reparación sin autenticarse.
// @Tags         jobs
// @Produce      json
// @Param        receiptNumber  path  string  true  "número de recibo"
// @Success      200  {object}  dto.ReceiptStatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/jobs/receipt/{receiptNumber} [get]
func (h *JobHandler) ReceiptStatus(c *fiber.Ctx) error {
	out, err := h.uc.GetByReceipt(c.UserContext(), c.Params("receiptNumber"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recibo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update edición parcial con lista cerrada de campos.
func (h *JobHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateJobRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "trabajo no encontrado"})
		case domain.ErrConflict:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TERMINAL_STATUS", Message: "el trabajo ya está en un estado terminal"})
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos del trabajo inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Complete godoc
// @Summary      Cerrar un trabajo
// @Description  Marca el trabajo como completado y fija la fecha de término.
// @Description  Idempotente sobre un trabajo ya completado.
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "id del trabajo"
// @Success      200  {object}  dto.JobResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/jobs/{id}/complete [put]
func (h *JobHandler) Complete(c *fiber.Ctx) error {
	out, err := h.uc.Complete(c.UserContext(), c.Params("id"))
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "trabajo no encontrado"})
		case domain.ErrConflict:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "JOB_CANCELLED", Message: "un trabajo cancelado no se puede completar"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// WithdrawPart godoc
// @Summary      Consumir un repuesto para el trabajo
// @Description  Descuenta el stock, registra el retiro en el ledger y agrega
// @Description  el snapshot del repuesto a usedParts, todo en una transacción.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                  true  "id del trabajo"
// @Param        body  body  dto.JobWithdrawRequest  true  "retiro"
// @Success      200   {object}  dto.JobResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/jobs/{id}/withdraw [post]
func (h *JobHandler) WithdrawPart(c *fiber.Ctx) error {
	var in dto.JobWithdrawRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "stock_item_id, quantity y employee_name son requeridos"})
	}
	out, err := h.uc.WithdrawPart(c.UserContext(), c.Params("id"), in)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "trabajo o repuesto no encontrado"})
		case domain.ErrInsufficientStock:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente para el retiro"})
		case domain.ErrInvalidQuantity:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "la cantidad debe ser mayor a cero"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ReceiptPDF godoc
// @Summary      Descargar el recibo de recepción en PDF (público)
// @Tags         jobs
// @Produce      application/pdf
// @Param        id  path  string  true  "id del trabajo"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/jobs/{id}/receipt [get]
func (h *JobHandler) ReceiptPDF(c *fiber.Ctx) error {
	data, filename, err := h.pdf.DownloadReceiptPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "trabajo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	return c.Send(data)
}
