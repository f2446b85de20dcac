package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/examgate/examgate-backend/internal/model"
)

const uniqueViolationCode = "23505"

// mapScanErr translates pgx row errors into domain error kinds so that
// services and handlers never depend on the driver.
func mapScanErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrNotFound
	}
	return err
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (duplicate active attempt, duplicate answer record).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
