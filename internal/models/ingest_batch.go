package models

import (
	"time"

	"github.com/google/uuid"
)

type IngestBatch struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Source         string
	TotalMessages  int
	ProcessedCount int
	ParsedCount    int
	RejectedCount  int
	DuplicateCount int
	Status         string
	StartedAt      time.Time
	CompletedAt    *time.Time
	CreatedAt      time.Time
}
