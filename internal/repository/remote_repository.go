package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"comparsaGora/internal/models"
)

// RemoteRepositoryImpl - удалённое хранилище документов поверх PostgreSQL:
// одна таблица documents, запись целиком лежит в JSONB
type RemoteRepositoryImpl struct {
	db *sqlx.DB
}

func NewRemoteRepository(db *sqlx.DB) *RemoteRepositoryImpl {
	return &RemoteRepositoryImpl{db: db}
}

type documentRow struct {
	DocID     string       `db:"doc_id"`
	Data      []byte       `db:"data"`
	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt sql.NullTime `db:"updated_at"`
}

func (r *RemoteRepositoryImpl) GetAll(ctx context.Context, collection string) ([]models.Record, error) {
	query := `SELECT doc_id, data, created_at, updated_at FROM documents WHERE collection = $1 ORDER BY created_at DESC`

	var rows []documentRow
	err := r.db.SelectContext(ctx, &rows, query, collection)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении коллекции %s: %w", collection, err)
	}

	items := make([]models.Record, 0, len(rows))
	for _, row := range rows {
		var rec models.Record
		if err := json.Unmarshal(row.Data, &rec); err != nil {
			return nil, fmt.Errorf("ошибка разбора документа %s: %w", row.DocID, err)
		}

		rec["id"] = row.DocID
		if rec.CreatedAt() == "" {
			rec["createdAt"] = row.CreatedAt.UTC().Format(time.RFC3339)
		}
		if row.UpdatedAt.Valid {
			if _, ok := rec["updatedAt"]; !ok {
				rec["updatedAt"] = row.UpdatedAt.Time.UTC().Format(time.RFC3339)
			}
		}

		items = append(items, rec)
	}

	return items, nil
}

func (r *RemoteRepositoryImpl) Add(ctx context.Context, collection string, data models.Record) (models.Record, error) {
	query := `INSERT INTO documents (doc_id, collection, data, created_at) VALUES ($1, $2, $3, $4)`

	doc := data.Clone()
	delete(doc, "id")

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации документа: %w", err)
	}

	docID := uuid.New().String()

	_, err = r.db.ExecContext(ctx, query, docID, collection, raw, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании документа в коллекции %s: %w", collection, err)
	}

	doc["id"] = docID
	return doc, nil
}

func (r *RemoteRepositoryImpl) Update(ctx context.Context, collection, id string, data models.Record) error {
	query := `UPDATE documents SET data = data || $1::jsonb, updated_at = $2 WHERE collection = $3 AND doc_id = $4`

	doc := data.Clone()
	delete(doc, "id")

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("ошибка сериализации документа: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, raw, time.Now().UTC(), collection, id)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении документа %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновлённых строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("документ %s в коллекции %s: %w", id, collection, ErrNotFound)
	}

	return nil
}

func (r *RemoteRepositoryImpl) Delete(ctx context.Context, collection, id string) error {
	query := `DELETE FROM documents WHERE collection = $1 AND doc_id = $2`

	result, err := r.db.ExecContext(ctx, query, collection, id)
	if err != nil {
		return fmt.Errorf("ошибка при удалении документа %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удалённых строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("документ %s в коллекции %s: %w", id, collection, ErrNotFound)
	}

	return nil
}
