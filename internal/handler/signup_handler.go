package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"comparsaGora/internal/models"
)

const signupsCollection = "signups"

// CreateSignup - публичная подача заявки. Валидация отсекает запись до
// обращения к хранилищу; после успешного создания подписчики коллекции
// получают уведомление через сам сервис хранилища.
func (h *Handlers) CreateSignup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.NationalID = strings.TrimSpace(req.NationalID)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные заявки: "+err.Error(), http.StatusBadRequest)
		return
	}

	// серийный номер вне пуэсто escopeta/remington не храним
	if req.Role != "escopeta" {
		req.WeaponType = ""
		req.SerialNumber = ""
	}

	req.SubmittedAt = time.Now().UTC().Format(time.RFC3339)

	rec, err := models.ToRecord(req)
	if err != nil {
		WriteError(w, "Неверные данные заявки", http.StatusBadRequest)
		return
	}

	created, err := h.Store.Add(r.Context(), signupsCollection, rec)
	if err != nil {
		WriteStoreError(w, err)
		return
	}

	WriteSuccess(w, created, http.StatusCreated)
}

func (h *Handlers) ListSignups(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.GetAll(r.Context(), signupsCollection)
	if err != nil {
		WriteStoreError(w, err)
		return
	}

	WriteSuccess(w, items, http.StatusOK)
}

func (h *Handlers) DeleteSignup(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		WriteError(w, "Не указан id заявки", http.StatusBadRequest)
		return
	}

	if err := h.Store.Delete(r.Context(), signupsCollection, id); err != nil {
		WriteStoreError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"status": "deleted"}, http.StatusOK)
}
