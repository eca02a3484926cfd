package parsing

import "strings"

// minDerivedNameRunes is the minimum cleaned length (letters and
// digits) below which an address-derived name is considered too
// ambiguous to present. The value is a policy choice, not a derived
// invariant.
const minDerivedNameRunes = 3

// normalizeMerchantName collapses whitespace, title-cases each word and
// strips trailing legal-entity suffixes.
func normalizeMerchantName(raw string) string {
	name := whitespacePattern.ReplaceAllString(strings.TrimSpace(raw), " ")
	name = trimDateTokens(name)
	name = stripLegalSuffixes(name)
	return titleCaseWords(name)
}

func stripLegalSuffixes(name string) string {
	for changed := true; changed; {
		changed = false
		lower := strings.ToLower(strings.TrimSpace(name))
		for _, suffix := range legalSuffixes {
			if strings.HasSuffix(lower, " "+suffix) {
				name = strings.TrimSpace(name[:len(lower)-len(suffix)])
				name = strings.TrimRight(name, " .,")
				changed = true
				break
			}
		}
	}
	return strings.TrimSpace(name)
}

// MerchantFromAddress derives a display name from the local part of a
// payment address. Segments are split on ".", "_" and "-"; trailing
// pure-numeric segments are dropped unless that would leave fewer than
// minDerivedNameRunes letters, in which case the numbers are kept.
// A cleaned local part shorter than minDerivedNameRunes yields no name
// at all: "ab@paytm" derives nothing, "abc@paytm" derives "Abc",
// "ab12@paytm" derives "Ab12".
func MerchantFromAddress(localPart string) *string {
	segments := splitAddressSegments(localPart)
	if len(segments) == 0 {
		return nil
	}

	trimmed := segments
	for len(trimmed) > 0 && isNumericSegment(trimmed[len(trimmed)-1]) {
		trimmed = trimmed[:len(trimmed)-1]
	}
	if letterCount(trimmed) < minDerivedNameRunes {
		trimmed = segments
	}

	total := 0
	for _, seg := range trimmed {
		total += len(seg)
	}
	if total < minDerivedNameRunes {
		return nil
	}

	words := make([]string, 0, len(trimmed))
	for _, seg := range trimmed {
		words = append(words, titleWord(seg))
	}
	name := strings.Join(words, " ")
	return &name
}

func splitAddressSegments(localPart string) []string {
	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})
	segments := parts[:0]
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

func isNumericSegment(seg string) bool {
	if seg == "" {
		return false
	}
	for _, r := range seg {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func letterCount(segments []string) int {
	count := 0
	for _, seg := range segments {
		for _, r := range seg {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				count++
			}
		}
	}
	return count
}
