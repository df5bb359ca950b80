package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapTx(t *testing.T) {
	assert.NoError(t, WrapTx(nil))

	notFound := fmt.Errorf("%w: kit k1", ErrNotFound)
	assert.Same(t, notFound, WrapTx(notFound), "los errores de dominio no se envuelven")

	storage := errors.New("conexión cerrada")
	wrapped := WrapTx(storage)
	assert.ErrorIs(t, wrapped, ErrTransactionFailed)
	assert.ErrorIs(t, wrapped, storage, "se conserva la causa original")

	assert.Same(t, wrapped, WrapTx(wrapped), "no se envuelve dos veces")
}
