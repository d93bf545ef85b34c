package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation devuelve el nombre del constraint si el error es una
// violación de constraint único (SQLSTATE 23505), o "" si no lo es.
func uniqueViolation(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr.ConstraintName
	}
	if strings.Contains(err.Error(), "23505") {
		return "unknown"
	}
	return ""
}
