package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateObject(t *testing.T) {
	assert.True(t, isDuplicateObject(&pgconn.PgError{Code: "42710"}))
	assert.True(t, isDuplicateObject(&pgconn.PgError{Code: "42P07"}))
	assert.True(t, isDuplicateObject(fmt.Errorf("exec: %w", &pgconn.PgError{Code: "42710"})))

	// Anything else, a privilege error included, must surface.
	assert.False(t, isDuplicateObject(&pgconn.PgError{Code: "42501"}))
	assert.False(t, isDuplicateObject(errors.New("connection refused")))
	assert.False(t, isDuplicateObject(nil))
}
