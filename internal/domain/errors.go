package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrSelfModification   = errors.New("no puede modificar su propia cuenta de esa forma")
	ErrDuplicateEmail     = errors.New("el email ya está registrado")
	ErrDuplicateReceipt   = errors.New("el número de recibo ya está en uso")
	ErrDuplicateStockCode = errors.New("el código de repuesto ya existe")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidQuantity    = errors.New("cantidad inválida")
)
