package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/braxton0054/eavisystem/internal/app/models"
)

func testJWTService() *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "eavi-test",
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	s := testJWTService()
	token, expiresIn, err := s.GenerateAccessToken(&models.Admin{ID: 3, Username: "registrar", Campus: "twon"})
	require.NoError(t, err)
	assert.Equal(t, 3600, expiresIn)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(3), claims.AdminID)
	assert.Equal(t, "registrar", claims.Username)
	assert.Equal(t, "twon", claims.Campus)
}

func TestJWTService_Expired(t *testing.T) {
	s := testJWTService()
	issued := time.Date(2026, time.October, 15, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }
	token, _, err := s.GenerateAccessToken(&models.Admin{ID: 1, Username: "a", Campus: "west"})
	require.NoError(t, err)

	s.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = s.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	token, _, err := testJWTService().GenerateAccessToken(&models.Admin{ID: 1, Username: "a", Campus: "west"})
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "eavi-test"})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = other.ValidateToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	tok, err := ExtractBearerToken("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	tok, err = ExtractBearerToken("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
