package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation checks if the error corresponds to a PostgreSQL unique
// constraint failure (SQLSTATE 23505). This lets the store translate DB
// failures into the domain error taxonomy instead of leaking driver errors.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
