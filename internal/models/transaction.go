package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Transaction is one persisted parsed record. ReferenceID carries a
// partial unique index so re-ingesting a referenced transaction in a
// later batch is a no-op at storage time.
type Transaction struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	IngestBatchID     uuid.UUID       `gorm:"index"`
	MessageID         int64           `gorm:"index"`
	Amount            decimal.Decimal `gorm:"type:numeric(14,2);index"`
	Direction         string          `gorm:"index"`
	Merchant          *string
	AccountSuffix     *string
	ReferenceID       *string   `gorm:"uniqueIndex:uniq_transactions_reference_id,where:reference_id IS NOT NULL"`
	TransactionAt     time.Time `gorm:"index"`
	Body              string
	SenderAddress     string
	BalanceAfter      *decimal.Decimal `gorm:"type:numeric(14,2)"`
	Location          *string
	PaymentAddress    *string
	PaymentMethod     *string
	ExtractionDetails datatypes.JSON
	CreatedAt         time.Time
}
