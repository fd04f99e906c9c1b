package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"comparsaGora/internal/config"
	"comparsaGora/internal/service"
)

type Handlers struct {
	Store    service.StoreService
	Images   service.ImageService
	Auth     service.AuthService
	Cfg      *config.Config
	Validate *validator.Validate
}

func NewHandlers(services *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		Store:    services.Store,
		Images:   services.Image,
		Auth:     services.Auth,
		Cfg:      config,
		Validate: validator.New(),
	}
}

func HomeHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{
		"service": "comparsaGora",
		"status":  "ok",
	}, http.StatusOK)
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{"status": "healthy"}, http.StatusOK)
}
