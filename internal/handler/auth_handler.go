package handlers

import (
	"encoding/json"
	"net/http"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	Username    string `json:"username"`
	Role        string `json:"role"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	accessToken, err := h.Auth.Login(req.Username, req.Password)
	if err != nil {
		WriteError(w, "Неверный логин или пароль", http.StatusForbidden)
		return
	}

	WriteSuccess(w, AuthResponse{
		AccessToken: accessToken,
		Username:    req.Username,
		Role:        "Admin",
	}, http.StatusOK)
}
