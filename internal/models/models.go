package models

import (
	"encoding/json"
	"fmt"
)

// Record - запись без схемы: произвольные поля плюс служебные id/createdAt/updatedAt
type Record map[string]any

func (r Record) ID() string {
	if v, ok := r["id"].(string); ok {
		return v
	}
	return ""
}

func (r Record) CreatedAt() string {
	if v, ok := r["createdAt"].(string); ok {
		return v
	}
	return ""
}

func (r Record) Clone() Record {
	clone := make(Record, len(r))
	for k, v := range r {
		clone[k] = v
	}
	return clone
}

// ToRecord - типизированная сущность на границе, нетипизированный документ внутри
func ToRecord(v any) (Record, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации записи: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("ошибка преобразования записи: %w", err)
	}

	return rec, nil
}

func FromRecord(rec Record, v any) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("ошибка сериализации документа: %w", err)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("ошибка разбора документа: %w", err)
	}

	return nil
}
