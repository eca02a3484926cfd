package parsing

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// matchDirection finds the direction class and the byte offset of the
// keyword occurrence that decided it. The earliest keyword in the body
// wins; rule order breaks offset ties. A body with only a neutral
// transactional keyword resolves to DirectionUnknown with the neutral
// keyword's offset; a body with no keyword at all returns offset -1.
func matchDirection(body string) (Direction, int) {
	bestIdx := -1
	bestDir := DirectionUnknown
	for _, rule := range directionRules {
		loc := rule.re.FindStringIndex(body)
		if loc == nil {
			continue
		}
		if bestIdx == -1 || loc[0] < bestIdx {
			bestIdx = loc[0]
			bestDir = rule.dir
		}
	}
	if bestIdx >= 0 {
		return bestDir, bestIdx
	}
	if loc := neutralKeywordPattern.FindStringIndex(body); loc != nil {
		return DirectionUnknown, loc[0]
	}
	return DirectionUnknown, -1
}

// ExtractAmount returns the first currency-prefixed amount in the body.
func ExtractAmount(body string) *decimal.Decimal {
	return extractAmountNear(body, -1)
}

// extractAmountNear picks the amount mention nearest to the given byte
// offset (normally the matched direction keyword), so secondary numbers
// such as cashback mentions do not win. With a negative offset the
// first mention is used.
func extractAmountNear(body string, near int) *decimal.Decimal {
	matches := amountPattern.FindAllStringSubmatchIndex(body, -1)
	if len(matches) == 0 {
		return nil
	}
	best := matches[0]
	if near >= 0 {
		bestDist := -1
		for _, m := range matches {
			dist := m[0] - near
			if dist < 0 {
				dist = -dist
			}
			if bestDist == -1 || dist < bestDist {
				bestDist = dist
				best = m
			}
		}
	}
	return parseAmount(body[best[2]:best[3]])
}

func parseAmount(raw string) *decimal.Decimal {
	cleaned := strings.ReplaceAll(raw, ",", "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil || d.IsNegative() {
		return nil
	}
	return &d
}

// ExtractPaymentAddress returns the payment address of the body in
// lowercase, or nil. Candidates are tried in priority order: explicit
// label ("VPA:", "UPI ID"), relational context ("to", "paid to",
// "received from"), then the first bare occurrence.
func ExtractPaymentAddress(body string) *string {
	for _, re := range []*regexp.Regexp{vpaLabelPattern, vpaRelationPattern, vpaBarePattern} {
		if m := re.FindStringSubmatch(body); m != nil {
			addr := strings.ToLower(m[1])
			return &addr
		}
	}
	return nil
}

// ExtractReferenceID resolves the transaction reference by label
// priority: app-specific ids, then UPI reference numbers, then UTR,
// then a generic Txn ID / Ref label.
func ExtractReferenceID(body string) *string {
	for _, rule := range referenceRules {
		if m := rule.re.FindStringSubmatch(body); m != nil {
			ref := m[1]
			return &ref
		}
	}
	return nil
}

// ExtractAccountSuffix returns the trailing account or card digits.
func ExtractAccountSuffix(body string) *string {
	m := accountSuffixPattern.FindStringSubmatch(body)
	if m == nil {
		return nil
	}
	suffix := m[1]
	return &suffix
}

// ExtractBalance returns the balance-after amount, if reported.
func ExtractBalance(body string) *decimal.Decimal {
	m := balancePattern.FindStringSubmatch(body)
	if m == nil {
		return nil
	}
	return parseAmount(m[1])
}

// ExtractLocation returns the title-cased free text after an "at"
// marker, trimmed of trailing punctuation and date tokens.
func ExtractLocation(body string) *string {
	m := locationPattern.FindStringSubmatch(body)
	if m == nil {
		return nil
	}
	loc := titleCaseWords(trimDateTokens(m[1]))
	if loc == "" {
		return nil
	}
	return &loc
}

// ExtractMerchant resolves the counterparty display name from an
// explicit phrase ("paid to X", "received from X", "at X"), normalized
// and stripped of legal-entity suffixes. Returns nil when no phrase
// matched; callers fall back to MerchantFromAddress.
func ExtractMerchant(body string) *string {
	// Mask payment addresses so a phrase rule cannot capture the local
	// part of "to name@handle" as a display name.
	cleaned := vpaBarePattern.ReplaceAllString(body, "@")
	for _, rule := range merchantRules {
		m := rule.re.FindStringSubmatch(cleaned)
		if m == nil {
			continue
		}
		name := normalizeMerchantName(m[1])
		if name == "" {
			continue
		}
		return &name
	}
	return nil
}

// trimDateTokens drops trailing tokens that look like dates, plus a
// dangling "on" left in front of them.
func trimDateTokens(s string) string {
	words := strings.Fields(s)
	for len(words) > 0 && dateTokenPattern.MatchString(words[len(words)-1]) {
		words = words[:len(words)-1]
		if len(words) > 0 && strings.EqualFold(words[len(words)-1], "on") {
			words = words[:len(words)-1]
		}
	}
	return strings.Join(words, " ")
}

func titleCaseWords(s string) string {
	words := strings.Fields(strings.TrimSpace(s))
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strings.Join(words, " ")
}

func titleWord(w string) string {
	if w == "" {
		return w
	}
	lower := strings.ToLower(w)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
