package parsing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseInstantPaymentMessage(t *testing.T) {
	msg := RawMessage{
		ID:              101,
		SenderAddress:   "VM-GPAY",
		Body:            "You paid Rs.450 to Swiggy via Google Pay. UPI Ref No 123456789012",
		TimestampMillis: 1767225600000,
	}

	tx := Parse(msg)
	if tx == nil {
		t.Fatal("Parse() = nil, want record")
	}

	if !tx.Amount.Equal(decimal.NewFromInt(450)) {
		t.Errorf("Amount = %s, want 450", tx.Amount)
	}
	if tx.Direction != DirectionDebit {
		t.Errorf("Direction = %s, want DEBIT", tx.Direction)
	}
	if tx.Merchant == nil || *tx.Merchant != "Swiggy" {
		t.Errorf("Merchant = %v, want Swiggy", tx.Merchant)
	}
	if tx.ReferenceID == nil || *tx.ReferenceID != "123456789012" {
		t.Errorf("ReferenceID = %v, want 123456789012", tx.ReferenceID)
	}
	if tx.PaymentMethod == nil || *tx.PaymentMethod != PaymentMethodUPI {
		t.Errorf("PaymentMethod = %v, want UPI", tx.PaymentMethod)
	}
	if tx.MessageID != msg.ID {
		t.Errorf("MessageID = %d, want %d", tx.MessageID, msg.ID)
	}
	if tx.TimestampMillis != msg.TimestampMillis {
		t.Errorf("TimestampMillis = %d, want %d", tx.TimestampMillis, msg.TimestampMillis)
	}
	if tx.Body != msg.Body {
		t.Errorf("Body not retained")
	}
}

func TestParseGenericBankMessage(t *testing.T) {
	msg := RawMessage{
		ID:              102,
		SenderAddress:   "VM-HDFCBK",
		Body:            "Rs.5000 debited from A/c XX1234 on 01-Jan-26 at AMAZON. Ref 123456789012. Avl Bal Rs.25000",
		TimestampMillis: 1767225600000,
	}

	tx := Parse(msg)
	if tx == nil {
		t.Fatal("Parse() = nil, want record")
	}

	if !tx.Amount.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("Amount = %s, want 5000", tx.Amount)
	}
	if tx.Direction != DirectionDebit {
		t.Errorf("Direction = %s, want DEBIT", tx.Direction)
	}
	if tx.Merchant == nil || *tx.Merchant != "Amazon" {
		t.Errorf("Merchant = %v, want Amazon", tx.Merchant)
	}
	if tx.AccountSuffix == nil || *tx.AccountSuffix != "1234" {
		t.Errorf("AccountSuffix = %v, want 1234", tx.AccountSuffix)
	}
	if tx.ReferenceID == nil || *tx.ReferenceID != "123456789012" {
		t.Errorf("ReferenceID = %v, want 123456789012", tx.ReferenceID)
	}
	if tx.BalanceAfter == nil || !tx.BalanceAfter.Equal(decimal.NewFromInt(25000)) {
		t.Errorf("BalanceAfter = %v, want 25000", tx.BalanceAfter)
	}
	if tx.PaymentMethod != nil {
		t.Errorf("PaymentMethod = %v, want none for generic-bank flow", *tx.PaymentMethod)
	}
	if tx.PaymentAddress != nil {
		t.Errorf("PaymentAddress = %v, want none for generic-bank flow", *tx.PaymentAddress)
	}
}

func TestParseMerchantFallsBackToPaymentAddress(t *testing.T) {
	msg := RawMessage{
		ID:              103,
		SenderAddress:   "VM-PAYTM",
		Body:            "Rs.100 paid to ramesh.traders@okhdfcbank via UPI. UPI Ref 445566778899",
		TimestampMillis: 1767225600000,
	}

	tx := Parse(msg)
	if tx == nil {
		t.Fatal("Parse() = nil, want record")
	}
	if tx.PaymentAddress == nil || *tx.PaymentAddress != "ramesh.traders@okhdfcbank" {
		t.Errorf("PaymentAddress = %v, want ramesh.traders@okhdfcbank", tx.PaymentAddress)
	}
	if tx.Merchant == nil || *tx.Merchant != "Ramesh Traders" {
		t.Errorf("Merchant = %v, want Ramesh Traders", tx.Merchant)
	}
}

func TestParseAmbiguousAddressYieldsNoMerchant(t *testing.T) {
	msg := RawMessage{
		ID:              104,
		SenderAddress:   "VM-PAYTM",
		Body:            "Rs.50 paid to ab@paytm via UPI. UPI Ref 112233445566",
		TimestampMillis: 1767225600000,
	}

	tx := Parse(msg)
	if tx == nil {
		t.Fatal("Parse() = nil, want record")
	}
	if tx.Merchant != nil {
		t.Errorf("Merchant = %q, want none for two-letter local part", *tx.Merchant)
	}
	if tx.PaymentAddress == nil || *tx.PaymentAddress != "ab@paytm" {
		t.Errorf("PaymentAddress = %v, want ab@paytm", tx.PaymentAddress)
	}
}

func TestParseMinimalRecord(t *testing.T) {
	// amount and direction resolve, everything else stays empty
	msg := RawMessage{
		ID:              105,
		SenderAddress:   "VM-SBIINB",
		Body:            "Rs.450 debited towards your order",
		TimestampMillis: 1767225600000,
	}

	tx := Parse(msg)
	if tx == nil {
		t.Fatal("Parse() = nil, want minimal record")
	}
	if !tx.Amount.Equal(decimal.NewFromInt(450)) || tx.Direction != DirectionDebit {
		t.Errorf("core fields = %s/%s, want 450/DEBIT", tx.Amount, tx.Direction)
	}
	if tx.Merchant != nil || tx.AccountSuffix != nil || tx.ReferenceID != nil ||
		tx.BalanceAfter != nil || tx.Location != nil || tx.PaymentAddress != nil ||
		tx.PaymentMethod != nil {
		t.Errorf("optional fields should all be empty, got %+v", tx)
	}
}

func TestParseRejections(t *testing.T) {
	tests := []struct {
		name   string
		sender string
		body   string
	}{
		{"otp", "VM-HDFCBK", "123456 is your OTP for payment of Rs.2000 paid online"},
		{"balance enquiry", "VM-HDFCBK", "Your A/c XX1234 balance is Rs.5000 as on 01-Jan"},
		{"promotion", "AD-SBIINB", "Get Rs.2000 credited instantly! Apply now for the festive loan offer"},
		{"no amount", "VM-HDFCBK", "Your payment was debited successfully"},
		{"no direction", "VM-HDFCBK", "Rs.450 order confirmed"},
		{"unrecognized sender", "random sender text", "Rs.450 debited from A/c XX1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := RawMessage{ID: 1, SenderAddress: tt.sender, Body: tt.body, TimestampMillis: 1767225600000}
			if got := Parse(msg); got != nil {
				t.Errorf("Parse() = %+v, want nil", got)
			}
		})
	}
}

func TestParseUnknownDirectionGenericFlow(t *testing.T) {
	msg := RawMessage{
		ID:              106,
		SenderAddress:   "AD-SBIINB",
		Body:            "Transaction of Rs.1200 on Card x4321 at MUMBAI",
		TimestampMillis: 1767225600000,
	}

	tx := Parse(msg)
	if tx == nil {
		t.Fatal("Parse() = nil, want record with unknown direction")
	}
	if tx.Direction != DirectionUnknown {
		t.Errorf("Direction = %s, want UNKNOWN", tx.Direction)
	}
	if tx.AccountSuffix == nil || *tx.AccountSuffix != "4321" {
		t.Errorf("AccountSuffix = %v, want 4321", tx.AccountSuffix)
	}
}
