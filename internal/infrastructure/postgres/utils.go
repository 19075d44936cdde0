package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isLockNotAvailable verifica si un error es un timeout de bloqueo de fila (55P03),
// producto del lock_timeout de la transacción.
func isLockNotAvailable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "55P03" // lock_not_available
	}
	return false
}

// isSerializationFailure verifica si un error es un fallo de serialización (40001),
// reintentable igual que la contención de bloqueo.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" // serialization_failure
	}
	return false
}
