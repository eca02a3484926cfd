// Package dedup collapses batches of parsed transaction records that
// denote the same underlying transaction. It needs the whole batch at
// once; independent batches may be deduplicated concurrently.
package dedup

import (
	"sort"
	"time"

	"sms-transaction-backend/internal/services/parsing"
)

// DuplicateWindow is the maximum timestamp gap within which two
// reference-less records with matching amount, direction, account
// suffix and balance are treated as the same transaction. The value is
// a policy choice; the persistence layer should align its own window
// with it.
const DuplicateWindow = 60 * time.Second

// Dedupe returns the surviving subset of the batch. Records sharing a
// reference id collapse to the newest one; reference-less records
// collapse transitively inside DuplicateWindow, keeping the earliest.
// Input order does not matter; output is sorted by timestamp
// descending, ties broken by message id descending. Records are never
// edited, only selected. The operation is idempotent.
func Dedupe(records []parsing.ParsedTransaction) []parsing.ParsedTransaction {
	var referenced, bare []parsing.ParsedTransaction
	for _, r := range records {
		if r.ReferenceID != nil && *r.ReferenceID != "" {
			referenced = append(referenced, r)
		} else {
			bare = append(bare, r)
		}
	}

	out := collapseReferenced(referenced)
	out = append(out, collapseWindow(bare)...)

	sort.Slice(out, func(i, j int) bool {
		if out[i].TimestampMillis != out[j].TimestampMillis {
			return out[i].TimestampMillis > out[j].TimestampMillis
		}
		return out[i].MessageID > out[j].MessageID
	})
	return out
}

// collapseReferenced keeps one record per exact reference id, the one
// with the newest timestamp. Timestamp ties keep the higher message id,
// mirroring the output ordering's tie-break.
func collapseReferenced(records []parsing.ParsedTransaction) []parsing.ParsedTransaction {
	byRef := make(map[string]parsing.ParsedTransaction, len(records))
	for _, r := range records {
		ref := *r.ReferenceID
		cur, ok := byRef[ref]
		if !ok ||
			r.TimestampMillis > cur.TimestampMillis ||
			(r.TimestampMillis == cur.TimestampMillis && r.MessageID > cur.MessageID) {
			byRef[ref] = r
		}
	}

	out := make([]parsing.ParsedTransaction, 0, len(byRef))
	for _, r := range byRef {
		out = append(out, r)
	}
	return out
}

// fieldKey identifies reference-less records that are candidates for
// window-based collapsing: amount, direction, account suffix (or both
// absent) and balance-after (or both absent) must match exactly.
type fieldKey struct {
	amount    string
	direction parsing.Direction
	suffix    string
	balance   string
}

func keyOf(r parsing.ParsedTransaction) fieldKey {
	k := fieldKey{
		amount:    r.Amount.StringFixed(2),
		direction: r.Direction,
	}
	if r.AccountSuffix != nil {
		k.suffix = *r.AccountSuffix
	}
	if r.BalanceAfter != nil {
		k.balance = r.BalanceAfter.StringFixed(2)
	}
	return k
}

// collapseWindow clusters matching records whose timestamps chain
// within DuplicateWindow and keeps the earliest of each cluster.
// Chained near-simultaneous records collapse transitively: each record
// extends its cluster's reach by a full window.
func collapseWindow(records []parsing.ParsedTransaction) []parsing.ParsedTransaction {
	sorted := make([]parsing.ParsedTransaction, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].TimestampMillis != sorted[j].TimestampMillis {
			return sorted[i].TimestampMillis < sorted[j].TimestampMillis
		}
		return sorted[i].MessageID < sorted[j].MessageID
	})

	windowMillis := DuplicateWindow.Milliseconds()
	lastSeen := make(map[fieldKey]int64)
	var out []parsing.ParsedTransaction
	for _, r := range sorted {
		k := keyOf(r)
		if ts, ok := lastSeen[k]; ok && r.TimestampMillis-ts <= windowMillis {
			lastSeen[k] = r.TimestampMillis
			continue
		}
		lastSeen[k] = r.TimestampMillis
		out = append(out, r)
	}
	return out
}
