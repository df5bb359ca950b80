package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	// ErrTransactionFailed envuelve cualquier fallo de almacenamiento dentro de una
	// unidad de trabajo; la transacción completa se deshace.
	ErrTransactionFailed = errors.New("transacción fallida")
)

// IsBusinessError indica si err es un error de dominio que el caller debe ver tal cual
// (no se envuelve en ErrTransactionFailed).
func IsBusinessError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrDuplicate) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrTransactionFailed)
}

// WrapTx normaliza el error devuelto por una unidad de trabajo: los errores de dominio
// pasan intactos, el resto se envuelve en ErrTransactionFailed.
func WrapTx(err error) error {
	if err == nil || IsBusinessError(err) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrTransactionFailed, err)
}
