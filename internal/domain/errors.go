package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists    = errors.New("el email ya está registrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrStockNotIssued        = errors.New("el stock no está emitido a la tienda")
	ErrUnitPriceRequired     = errors.New("se requiere precio unitario positivo para este tipo de cliente")
	ErrPaymentExceedsBalance = errors.New("el abono excede el saldo del préstamo")
)
