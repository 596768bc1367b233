package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Código de error de PostgreSQL para violación de constraint único.
const uniqueViolationCode = "23505"

// isUniqueViolation indica si el error proviene de un índice único
// (lote duplicado, email ya registrado).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
