package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comparsaGora/internal/models"
)

func newMockRepo(t *testing.T) (*RemoteRepositoryImpl, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRemoteRepository(sqlxDB)

	return repo, mock, func() { db.Close() }
}

func TestRemoteRepository_GetAll(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	ctx := context.Background()

	t.Run("Успешное получение коллекции", func(t *testing.T) {
		docID := uuid.New().String()
		created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

		data, err := json.Marshal(map[string]any{"title": "Regata", "year": 2024})
		require.NoError(t, err)

		rows := sqlmock.NewRows([]string{"doc_id", "data", "created_at", "updated_at"}).
			AddRow(docID, data, created, nil)

		mock.ExpectQuery(`SELECT doc_id, data, created_at, updated_at FROM documents WHERE collection = $1 ORDER BY created_at DESC`).
			WithArgs("news").
			WillReturnRows(rows)

		items, err := repo.GetAll(ctx, "news")

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, docID, items[0].ID())
		assert.Equal(t, "Regata", items[0]["title"])
		assert.Equal(t, "2024-03-01T10:00:00Z", items[0].CreatedAt())

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("createdAt из документа имеет приоритет над колонкой", func(t *testing.T) {
		data, err := json.Marshal(map[string]any{"title": "x", "createdAt": "2020-01-01T00:00:00Z"})
		require.NoError(t, err)

		rows := sqlmock.NewRows([]string{"doc_id", "data", "created_at", "updated_at"}).
			AddRow(uuid.New().String(), data, time.Now(), nil)

		mock.ExpectQuery(`SELECT doc_id, data, created_at, updated_at FROM documents WHERE collection = $1 ORDER BY created_at DESC`).
			WithArgs("news").
			WillReturnRows(rows)

		items, err := repo.GetAll(ctx, "news")

		require.NoError(t, err)
		assert.Equal(t, "2020-01-01T00:00:00Z", items[0].CreatedAt())
	})

	t.Run("Ошибка БД пробрасывается", func(t *testing.T) {
		mock.ExpectQuery(`SELECT doc_id, data, created_at, updated_at FROM documents WHERE collection = $1 ORDER BY created_at DESC`).
			WithArgs("news").
			WillReturnError(errors.New("connection refused"))

		_, err := repo.GetAll(ctx, "news")

		assert.Error(t, err)
	})
}

func TestRemoteRepository_Add(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	ctx := context.Background()

	t.Run("Успешное создание документа", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO documents (doc_id, collection, data, created_at) VALUES ($1, $2, $3, $4)`).
			WithArgs(sqlmock.AnyArg(), "leaders", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		rec, err := repo.Add(ctx, "leaders", models.Record{"name": "Jon"})

		require.NoError(t, err)
		assert.NotEmpty(t, rec.ID())
		assert.Equal(t, "Jon", rec["name"])

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("id вызывающего не попадает в документ", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO documents (doc_id, collection, data, created_at) VALUES ($1, $2, $3, $4)`).
			WithArgs(sqlmock.AnyArg(), "leaders", []byte(`{"name":"Jon"}`), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		rec, err := repo.Add(ctx, "leaders", models.Record{"id": "client-id", "name": "Jon"})

		require.NoError(t, err)
		assert.NotEqual(t, "client-id", rec.ID())
	})
}

func TestRemoteRepository_Update(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	ctx := context.Background()
	docID := uuid.New().String()

	t.Run("Успешное обновление", func(t *testing.T) {
		mock.ExpectExec(`UPDATE documents SET data = data || $1::jsonb, updated_at = $2 WHERE collection = $3 AND doc_id = $4`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "news", docID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(ctx, "news", docID, models.Record{"title": "Nuevo"})

		assert.NoError(t, err)
	})

	t.Run("Документ не найден", func(t *testing.T) {
		mock.ExpectExec(`UPDATE documents SET data = data || $1::jsonb, updated_at = $2 WHERE collection = $3 AND doc_id = $4`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "news", docID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, "news", docID, models.Record{"title": "Nuevo"})

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRemoteRepository_Delete(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	ctx := context.Background()
	docID := uuid.New().String()

	t.Run("Успешное удаление", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM documents WHERE collection = $1 AND doc_id = $2`).
			WithArgs("photos", docID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(ctx, "photos", docID)

		assert.NoError(t, err)
	})

	t.Run("Документ не найден", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM documents WHERE collection = $1 AND doc_id = $2`).
			WithArgs("photos", docID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, "photos", docID)

		assert.ErrorIs(t, err, ErrNotFound)
	})
}
