package handlers

import (
	"net/http"
)

type StorageUsageResponse struct {
	UsedBytes  int64 `json:"usedBytes"`
	QuotaBytes int64 `json:"quotaBytes"`
}

func (h *Handlers) StorageUsage(w http.ResponseWriter, r *http.Request) {
	used, quota, err := h.Store.Usage()
	if err != nil {
		WriteError(w, "Не удалось получить состояние хранилища", http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, StorageUsageResponse{UsedBytes: used, QuotaBytes: quota}, http.StatusOK)
}

// ClearLocalStorage - аварийный сброс локальных данных при переполнении.
// Удалённое хранилище не затрагивается; клиент должен перезагрузить состояние.
func (h *Handlers) ClearLocalStorage(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.ClearLocal(); err != nil {
		WriteError(w, "Не удалось очистить локальное хранилище", http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]any{
		"status": "cleared",
		"reload": true,
	}, http.StatusOK)
}
