package analytics

import (
	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// ComputeCategoryBreakdown totals all-time expenses per expense category.
// Categories whose total is not strictly positive are omitted, and the
// result follows category declaration order. A category name declared twice
// yields two entries with the same total.
func ComputeCategoryBreakdown(transactions []core.Transaction, categories []core.Category) []core.CategorySlice {
	totals := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		if t.Type != core.Expense {
			continue
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
	}

	var out []core.CategorySlice
	for _, c := range core.CategoriesOfType(categories, core.Expense) {
		value, ok := totals[c.Name]
		if !ok || !value.IsPositive() {
			continue
		}
		out = append(out, core.CategorySlice{
			Name:  c.Name,
			Value: value,
			Color: c.Color,
			Icon:  c.Icon,
		})
	}
	return out
}
