package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"comparsaGora/internal/repository"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// WriteSuccess - функция для успешных ответов
func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteStoreError - переполнение локального хранилища отдаём отдельным
// статусом с подсказкой, остальные ошибки хранилища не детализируем
func WriteStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrOutOfSpace):
		WriteError(w,
			"Локальное хранилище переполнено. Удалите старые записи или очистите локальные данные через /api/storage/clear",
			http.StatusInsufficientStorage)
	case errors.Is(err, repository.ErrNotFound):
		WriteError(w, "Запись не найдена", http.StatusNotFound)
	default:
		WriteError(w, "Ошибка при работе с хранилищем", http.StatusInternalServerError)
	}
}
