package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned by services when an id does not resolve.
	// The repository itself reports absence as (nil, nil).
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate reports a unique-constraint violation (duplicate id or
	// duplicate join pairing).
	ErrDuplicate = errors.New("record already exists")

	// ErrReferenced reports that a delete was rejected because other rows
	// still hold a foreign key to the record.
	ErrReferenced = errors.New("record is still referenced")

	// ErrMissingReference reports that a write named a foreign key that
	// does not resolve to an existing record.
	ErrMissingReference = errors.New("referenced record does not exist")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateWrite maps constraint violations on INSERT/UPDATE to sentinel
// errors so handlers can pick the right status code. Other store errors
// pass through wrapped, never converted to empty results.
func translateWrite(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrDuplicate
		case pgForeignKeyViolation:
			return ErrMissingReference
		}
	}
	return err
}

func translateDelete(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return ErrReferenced
	}
	return err
}
