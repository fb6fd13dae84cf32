package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("update settings: %w", NewValidationError("starting_sequence", "too low"))

	assert.True(t, errors.Is(err, ErrValidationFailed))

	var vErr *ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Equal(t, "starting_sequence", vErr.Field)
	assert.Equal(t, "update settings: too low", err.Error())
}

func TestStorageErrorKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError("could not persist admission package", cause)

	assert.True(t, Is(err, ErrStorage))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "could not persist admission package", err.Error())
}

func TestIsMatchesAnyOfList(t *testing.T) {
	err := fmt.Errorf("lookup: %w", ErrCourseNotFound)

	assert.True(t, Is(err, ErrStudentNotFound, ErrCourseNotFound))
	assert.False(t, Is(err, ErrStudentNotFound, ErrCampusNotFound))
}
