package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type recordingSeeder struct {
	calls []string
	fail  string
}

func (r *recordingSeeder) EnsureAdmin(_ context.Context, campus, _, _ string) error {
	r.calls = append(r.calls, campus)
	if campus == r.fail {
		return errors.New("connection refused")
	}
	return nil
}

func TestCreateDefaultAdmins(t *testing.T) {
	s := &recordingSeeder{fail: "twon"}
	err := CreateDefaultAdmins(context.Background(), s, []string{"twon", "west"}, "admin", "changeme", zerolog.Nop())

	assert.Equal(t, []string{"twon", "west"}, s.calls)
	assert.ErrorContains(t, err, "campus twon")
}

func TestCreateDefaultAdmins_NoCredentials(t *testing.T) {
	s := &recordingSeeder{}
	assert.NoError(t, CreateDefaultAdmins(context.Background(), s, []string{"twon"}, "admin", "", zerolog.Nop()))
	assert.Empty(t, s.calls)
}
