package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"comparsaGora/internal/models"
	"comparsaGora/internal/service"
)

// Пресеты оптимизации по коллекциям: история хранит много фото на запись и
// жмётся сильнее всего, галерея - самое крупное разрешение
var contentPresets = map[string]service.ImagePreset{
	"news":       {MaxWidth: 800, MaxHeight: 800, Quality: 0.7},
	"history":    {MaxWidth: 300, MaxHeight: 300, Quality: 0.4},
	"leaders":    {MaxWidth: 400, MaxHeight: 400, Quality: 0.5},
	"volunteers": {MaxWidth: 400, MaxHeight: 400, Quality: 0.5},
	"photos":     {MaxWidth: 1200, MaxHeight: 1200, Quality: 0.7},
}

func isContentCollection(collection string) bool {
	_, ok := contentPresets[collection]
	return ok
}

// decodeContent - типизированная граница: каждая коллекция разбирается в свою
// структуру, проверяется и только потом превращается в нетипизированный документ.
// Все поля-изображения проходят конвейер (Optimize, затем Upload) до записи.
func (h *Handlers) decodeContent(ctx context.Context, collection string, r *http.Request) (models.Record, error) {
	preset := contentPresets[collection]

	switch collection {
	case "news":
		var item models.NewsItem
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			return nil, err
		}
		if err := h.Validate.Struct(item); err != nil {
			return nil, err
		}
		item.Image = h.Images.Process(ctx, item.Image, preset)
		return models.ToRecord(item)

	case "history":
		var item models.HistoryEntry
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			return nil, err
		}
		if err := h.Validate.Struct(item); err != nil {
			return nil, err
		}
		for i, img := range item.Images {
			item.Images[i] = h.Images.Process(ctx, img, preset)
		}
		return models.ToRecord(item)

	case "leaders":
		var item models.Leader
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			return nil, err
		}
		if err := h.Validate.Struct(item); err != nil {
			return nil, err
		}
		item.Photo = h.Images.Process(ctx, item.Photo, preset)
		return models.ToRecord(item)

	case "volunteers":
		var item models.Volunteer
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			return nil, err
		}
		if err := h.Validate.Struct(item); err != nil {
			return nil, err
		}
		item.Photo = h.Images.Process(ctx, item.Photo, preset)
		return models.ToRecord(item)

	case "photos":
		var item models.Photo
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			return nil, err
		}
		if err := h.Validate.Struct(item); err != nil {
			return nil, err
		}
		item.Image = h.Images.Process(ctx, item.Image, preset)
		return models.ToRecord(item)
	}

	return nil, fmt.Errorf("неизвестная коллекция: %s", collection)
}

// findRecord - запись по id; ошибки чтения здесь не фатальны,
// вызывающий код обходится без записи
func (h *Handlers) findRecord(ctx context.Context, collection, id string) models.Record {
	items, err := h.Store.GetAll(ctx, collection)
	if err != nil {
		return nil
	}

	for _, item := range items {
		if item.ID() == id {
			return item
		}
	}

	return nil
}

// recordImages - значения полей-изображений записи
func recordImages(collection string, rec models.Record) []string {
	switch collection {
	case "news", "photos":
		if img, ok := rec["image"].(string); ok {
			return []string{img}
		}
	case "leaders", "volunteers":
		if img, ok := rec["photo"].(string); ok {
			return []string{img}
		}
	case "history":
		raw, _ := rec["images"].([]any)
		imgs := make([]string, 0, len(raw))
		for _, v := range raw {
			if img, ok := v.(string); ok {
				imgs = append(imgs, img)
			}
		}
		return imgs
	}
	return nil
}

func (h *Handlers) GetContent(w http.ResponseWriter, r *http.Request) {
	collection := mux.Vars(r)["collection"]
	if !isContentCollection(collection) {
		WriteError(w, "Неизвестная коллекция", http.StatusNotFound)
		return
	}

	items, err := h.Store.GetAll(r.Context(), collection)
	if err != nil {
		WriteStoreError(w, err)
		return
	}

	WriteSuccess(w, items, http.StatusOK)
}

func (h *Handlers) CreateContent(w http.ResponseWriter, r *http.Request) {
	collection := mux.Vars(r)["collection"]
	if !isContentCollection(collection) {
		WriteError(w, "Неизвестная коллекция", http.StatusNotFound)
		return
	}

	rec, err := h.decodeContent(r.Context(), collection, r)
	if err != nil {
		WriteError(w, "Неверные данные: "+err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.Store.Add(r.Context(), collection, rec)
	if err != nil {
		WriteStoreError(w, err)
		return
	}

	WriteSuccess(w, created, http.StatusCreated)
}

func (h *Handlers) UpdateContent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collection := vars["collection"]
	if !isContentCollection(collection) {
		WriteError(w, "Неизвестная коллекция", http.StatusNotFound)
		return
	}

	id := vars["id"]
	if id == "" {
		WriteError(w, "Не указан id записи", http.StatusBadRequest)
		return
	}

	rec, err := h.decodeContent(r.Context(), collection, r)
	if err != nil {
		WriteError(w, "Неверные данные: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Store.Update(r.Context(), collection, id, rec); err != nil {
		WriteStoreError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"status": "updated"}, http.StatusOK)
}

func (h *Handlers) DeleteContent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collection := vars["collection"]
	if !isContentCollection(collection) {
		WriteError(w, "Неизвестная коллекция", http.StatusNotFound)
		return
	}

	id := vars["id"]
	if id == "" {
		WriteError(w, "Не указан id записи", http.StatusBadRequest)
		return
	}

	rec := h.findRecord(r.Context(), collection, id)

	if err := h.Store.Delete(r.Context(), collection, id); err != nil {
		WriteStoreError(w, err)
		return
	}

	// хостовые копии изображений удалённой записи больше не нужны
	if rec != nil {
		for _, img := range recordImages(collection, rec) {
			h.Images.Cleanup(r.Context(), img)
		}
	}

	WriteSuccess(w, map[string]string{"status": "deleted"}, http.StatusOK)
}
