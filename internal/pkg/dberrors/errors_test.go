package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	err := fmt.Errorf("insert student: %w", &pgconn.PgError{Code: "23505", ConstraintName: "students_campus_admission_number_key"})

	assert.True(t, IsDuplicateConstraintError(err, "students_campus_admission_number_key"))
	assert.True(t, IsDuplicateConstraintError(err, ""))
	assert.False(t, IsDuplicateConstraintError(err, "courses_code_key"))
	assert.False(t, IsDuplicateConstraintError(errors.New("boom"), ""))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, IsNoRows(fmt.Errorf("get: %w", pgx.ErrNoRows)))
	assert.False(t, IsNoRows(errors.New("other")))
}
