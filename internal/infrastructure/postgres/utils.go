package postgres

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// validID indica si id es un UUID. Los ids inválidos se tratan como "no encontrado"
// sin consultar, para no abortar la transacción con un error 22P02.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
