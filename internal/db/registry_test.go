package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/braxton0054/eavisystem/internal/pkg/apperrors"
)

func TestRegistryLookup(t *testing.T) {
	twon := &PostgresDB{}
	west := &PostgresDB{}
	r := NewRegistry(map[string]*PostgresDB{"Twon": twon, "west": west})

	got, err := r.Get(" TWON ")
	require.NoError(t, err)
	assert.Same(t, twon, got)

	_, err = r.Get("east")
	assert.True(t, errors.Is(err, apperrors.ErrCampusNotFound))

	assert.Equal(t, []string{"twon", "west"}, r.Campuses())
	r.Close()
}
