package parsing

import "github.com/shopspring/decimal"

// Direction tells whether money left or entered the account.
type Direction string

const (
	DirectionDebit   Direction = "DEBIT"
	DirectionCredit  Direction = "CREDIT"
	DirectionUnknown Direction = "UNKNOWN"
)

// PaymentMethodUPI tags records parsed from instant-payment messages.
const PaymentMethodUPI = "UPI"

// RawMessage is one inbox message as handed over by the retrieval
// collaborator. It is never mutated by this package.
type RawMessage struct {
	ID              int64  `json:"id"`
	SenderAddress   string `json:"sender_address"`
	Body            string `json:"body"`
	TimestampMillis int64  `json:"timestamp_millis"`
	IsRead          bool   `json:"is_read"`
}

// ParsedTransaction is the structured record produced for one accepted
// message. Optional fields are nil when no pattern matched; extraction
// never fabricates a value. Instances are built once by Parse and not
// mutated afterwards.
type ParsedTransaction struct {
	MessageID       int64            `json:"message_id"`
	Amount          decimal.Decimal  `json:"amount"`
	Direction       Direction        `json:"direction"`
	Merchant        *string          `json:"merchant,omitempty"`
	AccountSuffix   *string          `json:"account_suffix,omitempty"`
	ReferenceID     *string          `json:"reference_id,omitempty"`
	TimestampMillis int64            `json:"timestamp_millis"`
	Body            string           `json:"body"`
	SenderAddress   string           `json:"sender_address"`
	BalanceAfter    *decimal.Decimal `json:"balance_after,omitempty"`
	Location        *string          `json:"location,omitempty"`
	PaymentAddress  *string          `json:"payment_address,omitempty"`
	PaymentMethod   *string          `json:"payment_method,omitempty"`
}
