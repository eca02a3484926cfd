package parsing

import "testing"

func TestIsTransactionMessage(t *testing.T) {
	tests := []struct {
		name   string
		sender string
		body   string
		want   bool
	}{
		{
			name:   "generic bank debit",
			sender: "VM-HDFCBK",
			body:   "Rs.5000 debited from A/c XX1234 on 01-Jan-26 at AMAZON. Ref 123456789012. Avl Bal Rs.25000",
			want:   true,
		},
		{
			name:   "payment app debit",
			sender: "VM-GPAY",
			body:   "You paid Rs.450 to Swiggy via Google Pay. UPI Ref No 123456789012",
			want:   true,
		},
		{
			name:   "credit notice",
			sender: "AD-SBIINB",
			body:   "Rs.12,000 credited to A/c XX9876 on 02-Feb-26. Ref 888777666555",
			want:   true,
		},
		{
			name:   "otp rejected regardless of sender",
			sender: "VM-HDFCBK",
			body:   "123456 is your OTP for payment of Rs.2000. Do not share it.",
			want:   false,
		},
		{
			name:   "otp rejected even with direction keyword",
			sender: "VM-GPAY",
			body:   "Use OTP 445566 to complete payment of Rs.900 paid to merchant",
			want:   false,
		},
		{
			name:   "balance enquiry rejected",
			sender: "VM-HDFCBK",
			body:   "Your A/c XX1234 balance is Rs.5000 as on 01-Jan",
			want:   false,
		},
		{
			name:   "available balance after a debit is not an enquiry",
			sender: "VM-HDFCBK",
			body:   "Rs.500 debited from A/c XX1111. Avl Balance is Rs.1500",
			want:   true,
		},
		{
			name:   "promotion rejected despite amount and keyword",
			sender: "VM-HDFCBK",
			body:   "Get Rs.2000 credited instantly! Apply now for the festive loan offer",
			want:   false,
		},
		{
			name:   "interest rate promo rejected",
			sender: "AD-SBIINB",
			body:   "Fixed deposit of Rs.1,00,000 credited with interest rate 7.5%",
			want:   false,
		},
		{
			name:   "no amount rejected",
			sender: "VM-HDFCBK",
			body:   "Your payment to Swiggy was debited successfully",
			want:   false,
		},
		{
			name:   "no direction keyword rejected",
			sender: "VM-HDFCBK",
			body:   "Rs.450 Swiggy order confirmed",
			want:   false,
		},
		{
			name:   "neutral transactional keyword accepted in bank flow",
			sender: "AD-SBIINB",
			body:   "Transaction of Rs.1200 on Card x4321 at MUMBAI on 03-Mar-26",
			want:   true,
		},
		{
			name:   "phone number sender rejected",
			sender: "+919876543210",
			body:   "Rs.450 debited from A/c XX1234",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := RawMessage{ID: 1, SenderAddress: tt.sender, Body: tt.body, TimestampMillis: 1700000000000}
			if got := IsTransactionMessage(msg); got != tt.want {
				t.Errorf("IsTransactionMessage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsInstantPaymentMessage(t *testing.T) {
	tests := []struct {
		name   string
		sender string
		body   string
		want   bool
	}{
		{
			name:   "google pay sender",
			sender: "VM-GPAY",
			body:   "You paid Rs.450 to Swiggy via Google Pay. UPI Ref No 123456789012",
			want:   true,
		},
		{
			name:   "phonepe sender",
			sender: "AX-PHONEPE",
			body:   "Rs.250 sent to ramesh@ybl. PhonePe Txn ID T2301150001",
			want:   true,
		},
		{
			name:   "paytm sender",
			sender: "VM-PAYTM",
			body:   "Rs.99 paid to merchant@paytm. Paytm Ref ID 445566778899",
			want:   true,
		},
		{
			name:   "bank short-code with upi keyword",
			sender: "VM-HDFCBK",
			body:   "Rs.450 debited via UPI from A/c XX1234 to swiggy@okicici. UPI Ref 123456789012",
			want:   true,
		},
		{
			name:   "bank short-code without upi keyword is generic",
			sender: "VM-HDFCBK",
			body:   "Rs.5000 debited from A/c XX1234 at AMAZON. Ref 123456789012",
			want:   false,
		},
		{
			name:   "unknown direction rejected in instant flow",
			sender: "VM-PAYTM",
			body:   "Transaction of Rs.1200 via UPI on Card x4321",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := RawMessage{ID: 1, SenderAddress: tt.sender, Body: tt.body, TimestampMillis: 1700000000000}
			if got := IsInstantPaymentMessage(msg); got != tt.want {
				t.Errorf("IsInstantPaymentMessage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnknownDirectionInstantFlowStillParsesAsBank(t *testing.T) {
	// A neutral-keyword message with a UPI marker is rejected outright,
	// not downgraded to the generic flow.
	msg := RawMessage{
		ID:            7,
		SenderAddress: "VM-PAYTM",
		Body:          "Transaction of Rs.1200 via UPI on Card x4321",
	}
	if IsTransactionMessage(msg) {
		t.Errorf("expected rejection for unknown-direction instant-payment message")
	}
	if got := Parse(msg); got != nil {
		t.Errorf("Parse() = %+v, want nil", got)
	}
}
