package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateWrite(t *testing.T) {
	unique := &pgconn.PgError{Code: pgUniqueViolation}
	fk := &pgconn.PgError{Code: pgForeignKeyViolation}
	other := errors.New("connection reset")

	assert.ErrorIs(t, translateWrite(unique), ErrDuplicate)
	assert.ErrorIs(t, translateWrite(fk), ErrMissingReference)
	assert.Equal(t, other, translateWrite(other))

	// Wrapped pg errors still translate.
	wrapped := fmt.Errorf("create in books: %w", unique)
	assert.ErrorIs(t, translateWrite(wrapped), ErrDuplicate)
}

func TestTranslateDelete(t *testing.T) {
	fk := &pgconn.PgError{Code: pgForeignKeyViolation}
	other := errors.New("connection reset")

	assert.ErrorIs(t, translateDelete(fk), ErrReferenced)
	assert.Equal(t, other, translateDelete(other))
}
