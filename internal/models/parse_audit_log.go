package models

import (
	"time"

	"github.com/google/uuid"
)

// ParseAuditLog records messages the parser skipped and why, so a
// silently dropped message can still be traced afterwards.
type ParseAuditLog struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	IngestBatchID uuid.UUID `gorm:"index"`
	MessageID     int64     `gorm:"index"`
	SenderAddress string
	Reason        string
	BodySnippet   string
	CreatedAt     time.Time
}
