package database

import (
	"time"

	"github.com/google/uuid"
)

// MappingRecord is one persisted mapping outcome. ResultJSON holds the
// full MappingResult for later display; the scalar columns exist for
// querying.
type MappingRecord struct {
	ID              string    `json:"id"`
	ClientKey       string    `json:"client_key"`
	RecommendedArea string    `json:"recommended_area"`
	Confidence      float64   `json:"confidence"`
	TextQuality     float64   `json:"text_quality"`
	ResultJSON      string    `json:"result_json"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewMappingRecord creates a record with a fresh id and timestamp.
func NewMappingRecord(clientKey, recommendedArea string, confidence, textQuality float64, resultJSON string) *MappingRecord {
	return &MappingRecord{
		ID:              uuid.New().String(),
		ClientKey:       clientKey,
		RecommendedArea: recommendedArea,
		Confidence:      confidence,
		TextQuality:     textQuality,
		ResultJSON:      resultJSON,
		CreatedAt:       time.Now().UTC(),
	}
}
