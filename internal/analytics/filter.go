package analytics

import (
	"sort"

	"fintrack/internal/core"
)

// Filter selects transactions for listing. Zero values match everything.
type Filter struct {
	Type     core.TransactionType
	Category string
	Limit    int
}

// FilterTransactions returns matching transactions newest first. Ties on
// date are broken by CreatedAt, newest first. The input is not modified.
func FilterTransactions(transactions []core.Transaction, f Filter) []core.Transaction {
	out := make([]core.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}
