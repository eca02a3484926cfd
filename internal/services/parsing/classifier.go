package parsing

import "strings"

type variant int

const (
	variantRejected variant = iota
	variantGenericBank
	variantInstantPayment
)

// IsTransactionMessage reports whether the message is a transaction
// notification worth parsing. One-time codes, promotions and
// balance-only enquiries are rejected regardless of sender.
func IsTransactionMessage(msg RawMessage) bool {
	return classify(msg) != variantRejected
}

// IsInstantPaymentMessage reports whether the message routes to the
// instant-payment extraction variant.
func IsInstantPaymentMessage(msg RawMessage) bool {
	return classify(msg) == variantInstantPayment
}

// classify applies the acceptance rules in precedence order:
//  1. one-time-code bodies are rejected outright
//  2. a direction (or neutral transactional) keyword must be present
//  3. a currency-prefixed amount must be present
//  4. promotional / balance-enquiry phrasing rejects
//  5. payment-app senders (or bank short-codes with a UPI keyword)
//     route to the instant-payment variant, which additionally needs a
//     resolved direction
//  6. remaining bank short-code senders route to the generic variant
func classify(msg RawMessage) variant {
	body := msg.Body
	if isOneTimeCode(body) {
		return variantRejected
	}
	dir, dirIdx := matchDirection(body)
	if dirIdx < 0 {
		return variantRejected
	}
	if !amountPattern.MatchString(body) {
		return variantRejected
	}
	if hasExclusionPhrase(body) || isBalanceEnquiry(body) {
		return variantRejected
	}

	instant := isPaymentAppSender(msg.SenderAddress) ||
		(isBankShortCode(msg.SenderAddress) && upiKeywordPattern.MatchString(body))
	if instant {
		if dir == DirectionUnknown {
			return variantRejected
		}
		return variantInstantPayment
	}
	if isBankShortCode(msg.SenderAddress) {
		return variantGenericBank
	}
	return variantRejected
}

func isOneTimeCode(body string) bool {
	return otpWordPattern.MatchString(body) && otpCodePattern.MatchString(body)
}

func hasExclusionPhrase(body string) bool {
	lower := strings.ToLower(body)
	for _, phrase := range exclusionPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func isBalanceEnquiry(body string) bool {
	loc := balanceEnquiryPattern.FindStringIndex(body)
	if loc == nil {
		return false
	}
	for _, avail := range availableBalancePattern.FindAllStringIndex(body, -1) {
		if loc[0] >= avail[0] && loc[1] <= avail[1] {
			return false
		}
	}
	return true
}

func isPaymentAppSender(sender string) bool {
	upper := strings.ToUpper(sender)
	for _, app := range paymentAppSenders {
		if strings.Contains(upper, app) {
			return true
		}
	}
	return false
}

func isBankShortCode(sender string) bool {
	return senderShortCodePattern.MatchString(strings.TrimSpace(sender))
}
