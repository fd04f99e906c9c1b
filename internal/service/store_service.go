package service

import (
	"context"
	"log"
	"regexp"
	"sort"
	"strconv"
	"sync"
	"time"

	"comparsaGora/internal/models"
	"comparsaGora/internal/repository"
)

// StoreService - единый фасад над хранилищами: вызывающий код не знает,
// работает он с удалённой БД или с локальным резервом
type StoreService interface {
	GetAll(ctx context.Context, collection string) ([]models.Record, error)
	Add(ctx context.Context, collection string, data models.Record) (models.Record, error)
	Update(ctx context.Context, collection, id string, data models.Record) error
	Delete(ctx context.Context, collection, id string) error
	ClearLocal() error
	Usage() (used int64, quota int64, err error)
	Subscribe(collection string, fn func(collection string))
}

type storeService struct {
	remote repository.DocumentRepository // nil - работаем только локально
	local  *repository.LocalRepository

	mu          sync.Mutex
	subscribers map[string][]func(string)
}

func NewStoreService(remote repository.DocumentRepository, local *repository.LocalRepository) StoreService {
	return &storeService{
		remote:      remote,
		local:       local,
		subscribers: make(map[string][]func(string)),
	}
}

func (s *storeService) GetAll(ctx context.Context, collection string) ([]models.Record, error) {
	var items []models.Record
	var err error

	if s.remote != nil {
		items, err = s.remote.GetAll(ctx, collection)
		if err != nil {
			log.Printf("Удалённое хранилище недоступно, читаем локально: %v", err)
			items, err = s.local.GetAll(ctx, collection)
		}
	} else {
		items, err = s.local.GetAll(ctx, collection)
	}

	if err != nil {
		return nil, err
	}

	sortRecords(items)
	return items, nil
}

func (s *storeService) Add(ctx context.Context, collection string, data models.Record) (models.Record, error) {
	doc := data.Clone()
	delete(doc, "id")
	doc["createdAt"] = time.Now().UTC().Format(time.RFC3339)

	if s.remote != nil {
		rec, err := s.remote.Add(ctx, collection, doc)
		if err == nil {
			s.notify(collection)
			return rec, nil
		}
		log.Printf("Удалённое хранилище недоступно, пишем локально: %v", err)
	}

	rec, err := s.local.Add(ctx, collection, doc)
	if err != nil {
		return nil, err
	}

	s.notify(collection)
	return rec, nil
}

func (s *storeService) Update(ctx context.Context, collection, id string, data models.Record) error {
	doc := data.Clone()
	delete(doc, "id")
	doc["updatedAt"] = time.Now().UTC().Format(time.RFC3339)

	if s.remote != nil {
		err := s.remote.Update(ctx, collection, id, doc)
		if err == nil {
			s.notify(collection)
			return nil
		}
		log.Printf("Удалённое хранилище недоступно, обновляем локально: %v", err)
	}

	if err := s.local.Update(ctx, collection, id, doc); err != nil {
		return err
	}

	s.notify(collection)
	return nil
}

func (s *storeService) Delete(ctx context.Context, collection, id string) error {
	if s.remote != nil {
		err := s.remote.Delete(ctx, collection, id)
		if err == nil {
			s.notify(collection)
			return nil
		}
		log.Printf("Удалённое хранилище недоступно, удаляем локально: %v", err)
	}

	if err := s.local.Delete(ctx, collection, id); err != nil {
		return err
	}

	s.notify(collection)
	return nil
}

// ClearLocal - аварийный выход при переполнении квоты, трогает только локальные данные
func (s *storeService) ClearLocal() error {
	return s.local.ClearAll()
}

func (s *storeService) Usage() (int64, int64, error) {
	used, err := s.local.UsedBytes()
	if err != nil {
		return 0, 0, err
	}
	return used, s.local.Quota(), nil
}

// Subscribe - подписка на изменения коллекции; уведомление синхронное, без
// полезной нагрузки и без гарантий доставки
func (s *storeService) Subscribe(collection string, fn func(collection string)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscribers[collection] = append(s.subscribers[collection], fn)
}

func (s *storeService) notify(collection string) {
	s.mu.Lock()
	fns := make([]func(string), len(s.subscribers[collection]))
	copy(fns, s.subscribers[collection])
	s.mu.Unlock()

	for _, fn := range fns {
		fn(collection)
	}
}

// Поля, в которых ищется год, в порядке приоритета
var yearTextFields = []string{"year", "tenure", "date", "submittedAt"}

var digitRun = regexp.MustCompile(`[0-9]+`)

// resolveSortYear - "год сортировки" записи: числовое поле year, иначе первая
// последовательность ровно из четырёх цифр в текстовых полях (строковый year
// проходит ту же проверку), иначе ноль. Эвристика может промахнуться на
// четырёхзначных номерах - это принятое допущение.
func resolveSortYear(rec models.Record) int {
	if v, ok := rec["year"]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}

	for _, field := range yearTextFields {
		text, ok := rec[field].(string)
		if !ok || text == "" {
			continue
		}
		for _, run := range digitRun.FindAllString(text, -1) {
			if len(run) == 4 {
				year, _ := strconv.Atoi(run)
				return year
			}
		}
	}

	return 0
}

func parseCreatedAt(rec models.Record) time.Time {
	raw := rec.CreatedAt()
	if raw == "" {
		return time.Time{}
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return t
}

// sortRecords - сначала по убыванию года, при равенстве - по убыванию даты
// создания; записи без даты создания оказываются последними
func sortRecords(items []models.Record) {
	sort.SliceStable(items, func(i, j int) bool {
		yearI, yearJ := resolveSortYear(items[i]), resolveSortYear(items[j])
		if yearI != yearJ {
			return yearI > yearJ
		}
		return parseCreatedAt(items[i]).After(parseCreatedAt(items[j]))
	})
}
