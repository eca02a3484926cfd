// Package parsing turns raw bank and payment-app notification messages
// into structured transaction records. All functions are pure and
// stateless; the compiled pattern tables are initialized once and
// read-only, so messages may be parsed concurrently.
package parsing

import "strings"

// Parse assembles one structured record from a raw message. It returns
// nil when the classifier rejects the message or when the amount or
// direction cannot be resolved; a record missing every optional field
// is still emitted as a minimal record. No extractor failure aborts
// the others.
func Parse(msg RawMessage) *ParsedTransaction {
	v := classify(msg)
	if v == variantRejected {
		return nil
	}

	body := msg.Body
	dir, dirIdx := matchDirection(body)
	amount := extractAmountNear(body, dirIdx)
	if amount == nil {
		return nil
	}

	tx := &ParsedTransaction{
		MessageID:       msg.ID,
		Amount:          *amount,
		Direction:       dir,
		TimestampMillis: msg.TimestampMillis,
		Body:            body,
		SenderAddress:   msg.SenderAddress,
		AccountSuffix:   ExtractAccountSuffix(body),
		ReferenceID:     ExtractReferenceID(body),
		BalanceAfter:    ExtractBalance(body),
		Location:        ExtractLocation(body),
	}

	addr := ExtractPaymentAddress(body)
	if v == variantInstantPayment {
		tx.PaymentAddress = addr
		method := PaymentMethodUPI
		tx.PaymentMethod = &method
	}

	tx.Merchant = ExtractMerchant(body)
	if tx.Merchant == nil && addr != nil {
		if local, _, ok := strings.Cut(*addr, "@"); ok {
			tx.Merchant = MerchantFromAddress(local)
		}
	}

	return tx
}
