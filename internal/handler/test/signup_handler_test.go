package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"comparsaGora/internal/models"
	"comparsaGora/internal/repository"
)

func signupBody(t *testing.T, overrides map[string]any) *bytes.Buffer {
	t.Helper()

	body := map[string]any{
		"name":       "Mikel Urrutia",
		"nationalId": "12345678Z",
		"email":      "mikel@example.com",
		"phone":      "600123123",
		"role":       "cubero",
	}
	for k, v := range overrides {
		body[k] = v
	}

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return bytes.NewBuffer(raw)
}

func TestCreateSignup(t *testing.T) {
	t.Run("Успешная заявка сохраняется со временем подачи", func(t *testing.T) {
		store := new(MockStoreService)
		handler := newTestHandlers(store, new(MockImageService), new(MockAuthService))

		store.On("Add", mock.Anything, "signups", mock.MatchedBy(func(rec models.Record) bool {
			submitted, ok := rec["submittedAt"].(string)
			return rec["name"] == "Mikel Urrutia" && ok && submitted != ""
		})).Return(models.Record{"id": "abc", "name": "Mikel Urrutia"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/signups", signupBody(t, nil))
		rec := httptest.NewRecorder()

		handler.CreateSignup(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		store.AssertExpectations(t)
	})

	t.Run("Escopeta без типа оружия отклоняется до записи", func(t *testing.T) {
		store := new(MockStoreService)
		handler := newTestHandlers(store, new(MockImageService), new(MockAuthService))

		req := httptest.NewRequest(http.MethodPost, "/api/signups",
			signupBody(t, map[string]any{"role": "escopeta"}))
		rec := httptest.NewRecorder()

		handler.CreateSignup(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		store.AssertNotCalled(t, "Add")
	})

	t.Run("Remington требует серийный номер", func(t *testing.T) {
		store := new(MockStoreService)
		handler := newTestHandlers(store, new(MockImageService), new(MockAuthService))

		req := httptest.NewRequest(http.MethodPost, "/api/signups",
			signupBody(t, map[string]any{"role": "escopeta", "weaponType": "remington"}))
		rec := httptest.NewRecorder()

		handler.CreateSignup(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		store.AssertNotCalled(t, "Add")
	})

	t.Run("Réplica проходит без серийного номера", func(t *testing.T) {
		store := new(MockStoreService)
		handler := newTestHandlers(store, new(MockImageService), new(MockAuthService))

		store.On("Add", mock.Anything, "signups", mock.Anything).
			Return(models.Record{"id": "abc"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/signups",
			signupBody(t, map[string]any{"role": "escopeta", "weaponType": "replica"}))
		rec := httptest.NewRecorder()

		handler.CreateSignup(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("Переполнение хранилища отдаёт 507 с подсказкой", func(t *testing.T) {
		store := new(MockStoreService)
		handler := newTestHandlers(store, new(MockImageService), new(MockAuthService))

		store.On("Add", mock.Anything, "signups", mock.Anything).
			Return(nil, fmt.Errorf("коллекция signups: %w", repository.ErrOutOfSpace))

		req := httptest.NewRequest(http.MethodPost, "/api/signups", signupBody(t, nil))
		rec := httptest.NewRecorder()

		handler.CreateSignup(rec, req)

		assert.Equal(t, http.StatusInsufficientStorage, rec.Code)
		assert.Contains(t, rec.Body.String(), "переполнено")
	})
}

func TestListSignups(t *testing.T) {
	store := new(MockStoreService)
	handler := newTestHandlers(store, new(MockImageService), new(MockAuthService))

	store.On("GetAll", mock.Anything, "signups").Return([]models.Record{
		{"id": "1", "name": "Mikel"},
		{"id": "2", "name": "Ane"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/signups", nil)
	rec := httptest.NewRecorder()

	handler.ListSignups(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var items []models.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 2)
}

func TestDeleteSignup(t *testing.T) {
	store := new(MockStoreService)
	handler := newTestHandlers(store, new(MockImageService), new(MockAuthService))

	store.On("Delete", mock.Anything, "signups", "abc").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/signups/abc", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "abc"})
	rec := httptest.NewRecorder()

	handler.DeleteSignup(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	store.AssertExpectations(t)
}
