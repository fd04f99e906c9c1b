package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"comparsaGora/internal/models"
)

// Префикс файлов локального хранилища, по аналогии с ключами localStorage
const localKeyPrefix = "gora_"

// LocalRepository - резервное хранилище на той же машине: каждая коллекция
// целиком лежит одним JSON-файлом, квота общая на все файлы с префиксом.
// Чтение и запись всегда идут полным блобом, частичных правок файла нет.
type LocalRepository struct {
	dir   string
	quota int64
	mu    sync.Mutex
}

func NewLocalRepository(dir string, quota int64) (*LocalRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("не удалось создать каталог локального хранилища: %w", err)
	}
	return &LocalRepository{dir: dir, quota: quota}, nil
}

func (r *LocalRepository) Quota() int64 {
	return r.quota
}

func (r *LocalRepository) filePath(collection string) string {
	return filepath.Join(r.dir, localKeyPrefix+collection+".json")
}

// read - отсутствующий файл означает пустую коллекцию
func (r *LocalRepository) read(collection string) ([]models.Record, error) {
	raw, err := os.ReadFile(r.filePath(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Record{}, nil
		}
		return nil, fmt.Errorf("ошибка чтения коллекции %s: %w", collection, err)
	}

	var items []models.Record
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("ошибка разбора коллекции %s: %w", collection, err)
	}

	return items, nil
}

// write - проверяет квоту до записи и пишет через временный файл,
// чтобы при переполнении на диске не осталось частичной записи
func (r *LocalRepository) write(collection string, items []models.Record) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("ошибка сериализации коллекции %s: %w", collection, err)
	}

	used, err := r.usedBytesExcept(collection)
	if err != nil {
		return err
	}

	if used+int64(len(raw)) > r.quota {
		return fmt.Errorf("коллекция %s: %w", collection, ErrOutOfSpace)
	}

	tmp := r.filePath(collection) + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("ошибка записи коллекции %s: %w", collection, err)
	}

	if err := os.Rename(tmp, r.filePath(collection)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("ошибка записи коллекции %s: %w", collection, err)
	}

	return nil
}

func (r *LocalRepository) usedBytesExcept(collection string) (int64, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return 0, fmt.Errorf("ошибка чтения каталога хранилища: %w", err)
	}

	skip := localKeyPrefix + collection + ".json"

	var used int64
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, localKeyPrefix) || !strings.HasSuffix(name, ".json") || name == skip {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		used += info.Size()
	}

	return used, nil
}

func (r *LocalRepository) GetAll(ctx context.Context, collection string) ([]models.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.read(collection)
}

func (r *LocalRepository) Add(ctx context.Context, collection string, data models.Record) (models.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.read(collection)
	if err != nil {
		return nil, err
	}

	doc := data.Clone()
	doc["id"] = uuid.New().String()

	// новые записи кладём в начало
	items = append([]models.Record{doc}, items...)

	if err := r.write(collection, items); err != nil {
		return nil, err
	}

	return doc, nil
}

func (r *LocalRepository) Update(ctx context.Context, collection, id string, data models.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.read(collection)
	if err != nil {
		return err
	}

	found := false
	for i, item := range items {
		if item.ID() != id {
			continue
		}
		merged := item.Clone()
		for k, v := range data {
			if k == "id" {
				continue
			}
			merged[k] = v
		}
		items[i] = merged
		found = true
		break
	}

	if !found {
		return fmt.Errorf("документ %s в коллекции %s: %w", id, collection, ErrNotFound)
	}

	return r.write(collection, items)
}

func (r *LocalRepository) Delete(ctx context.Context, collection, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.read(collection)
	if err != nil {
		return err
	}

	remaining := items[:0]
	for _, item := range items {
		if item.ID() != id {
			remaining = append(remaining, item)
		}
	}

	return r.write(collection, remaining)
}

// ClearAll - аварийный сброс: сносит все локальные коллекции, удалённое
// хранилище не трогает. Восстановления нет.
func (r *LocalRepository) ClearAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return fmt.Errorf("ошибка чтения каталога хранилища: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, localKeyPrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(r.dir, name)); err != nil {
			return fmt.Errorf("ошибка удаления %s: %w", name, err)
		}
	}

	return nil
}

func (r *LocalRepository) UsedBytes() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.usedBytesExcept("")
}
