package repository

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"comparsaGora/internal/models"
)

// ErrOutOfSpace - локальное хранилище исчерпало квоту; единственная фатальная
// ошибка, которую UI должен отличать от остальных
var ErrOutOfSpace = errors.New("квота локального хранилища исчерпана")

var ErrNotFound = errors.New("запись не найдена")

// DocumentRepository - CRUD по именованным коллекциям без знания схемы записей
type DocumentRepository interface {
	GetAll(ctx context.Context, collection string) ([]models.Record, error)
	Add(ctx context.Context, collection string, data models.Record) (models.Record, error)
	Update(ctx context.Context, collection, id string, data models.Record) error
	Delete(ctx context.Context, collection, id string) error
}

type Repository struct {
	Remote DocumentRepository // nil, когда удалённое хранилище не настроено
	Local  *LocalRepository
}

func NewRepository(db *sqlx.DB, local *LocalRepository) *Repository {
	repo := &Repository{Local: local}
	if db != nil {
		repo.Remote = NewRemoteRepository(db)
	}
	return repo
}
