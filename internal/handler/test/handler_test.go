package test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"comparsaGora/internal/config"
	handlers "comparsaGora/internal/handler"
	"comparsaGora/internal/service"
)

func newTestHandlers(store *MockStoreService, images *MockImageService, auth *MockAuthService) *handlers.Handlers {
	services := &service.Service{
		Store: store,
		Image: images,
		Auth:  auth,
	}
	return handlers.NewHandlers(services, &config.Config{})
}

func TestNewHandlers(t *testing.T) {
	handler := newTestHandlers(new(MockStoreService), new(MockImageService), new(MockAuthService))

	assert.NotNil(t, handler.Store)
	assert.NotNil(t, handler.Images)
	assert.NotNil(t, handler.Auth)
	assert.NotNil(t, handler.Cfg)
	assert.NotNil(t, handler.Validate)
}

func TestHealthHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	handlers.HealthHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

// go test ./internal/handler/test... -v
