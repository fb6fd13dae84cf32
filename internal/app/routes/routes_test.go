package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/braxton0054/eavisystem/internal/app/models/dto"
	"github.com/braxton0054/eavisystem/internal/middleware"
	"github.com/braxton0054/eavisystem/internal/pkg/auth"
)

func newRouter(health HealthCheck) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "secret", AccessTokenExp: time.Hour, TokenIssuer: "eavi"})
	SetupRouter(r, Controllers{}, middleware.NewAuthMiddleware(jwtService), health)
	return r
}

func TestUnknownRoute(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v2/twon/settings", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeResourceNotFound, resp.Error.Code)
	assert.Equal(t, "Route not found", resp.Error.Message)
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		health HealthCheck
		want   int
	}{
		{"healthy", func(*gin.Context) error { return nil }, http.StatusOK},
		{"database down", func(*gin.Context) error { return errors.New("campus west: connection refused") }, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newRouter(tt.health).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}

	w := httptest.NewRecorder()
	newRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
