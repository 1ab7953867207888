package database

import (
	"fmt"
)

// Repository handles mapping-history database operations.
type Repository struct {
	db *DB
}

// NewRepository creates a new repository.
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// SaveMapping persists one mapping record.
func (r *Repository) SaveMapping(rec *MappingRecord) error {
	_, err := r.db.Exec(`
		INSERT INTO mapping_history (id, client_key, recommended_area, confidence, text_quality, result_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.ClientKey, rec.RecommendedArea, rec.Confidence, rec.TextQuality, rec.ResultJSON, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save mapping: %w", err)
	}
	return nil
}

// ListByClient returns a client's most recent mappings, newest first.
func (r *Repository) ListByClient(clientKey string, limit int) ([]*MappingRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.db.Query(`
		SELECT id, client_key, recommended_area, confidence, text_quality, result_json, created_at
		FROM mapping_history
		WHERE client_key = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, clientKey, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query mappings: %w", err)
	}
	defer rows.Close()

	var records []*MappingRecord
	for rows.Next() {
		var rec MappingRecord
		if err := rows.Scan(
			&rec.ID, &rec.ClientKey, &rec.RecommendedArea,
			&rec.Confidence, &rec.TextQuality, &rec.ResultJSON, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan mapping: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
