package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// DefaultTrendWindow is the number of months in the rolling trend.
const DefaultTrendWindow = 6

type monthKey struct {
	year  int
	month time.Month
}

// ComputeMonthlyTrend returns exactly windowSize consecutive calendar months,
// oldest first, ending with the month containing now. Months without
// activity are zero-valued entries. windowSize <= 0 uses DefaultTrendWindow.
func ComputeMonthlyTrend(transactions []core.Transaction, now time.Time, windowSize int) []core.MonthTrend {
	if windowSize <= 0 {
		windowSize = DefaultTrendWindow
	}

	out := make([]core.MonthTrend, windowSize)
	index := make(map[monthKey]int, windowSize)
	for i := 0; i < windowSize; i++ {
		// Day 1 keeps month arithmetic from overflowing into the next month.
		first := time.Date(now.Year(), now.Month()-time.Month(windowSize-1-i), 1, 0, 0, 0, 0, time.UTC)
		out[i] = core.MonthTrend{
			Label:    first.Month().String()[:3],
			Year:     first.Year(),
			Month:    int(first.Month()),
			Income:   decimal.Zero,
			Expenses: decimal.Zero,
			Net:      decimal.Zero,
		}
		index[monthKey{first.Year(), first.Month()}] = i
	}

	for _, t := range transactions {
		i, ok := index[monthKey{t.Date.Year(), t.Date.Month()}]
		if !ok {
			continue
		}
		switch t.Type {
		case core.Income:
			out[i].Income = out[i].Income.Add(t.Amount)
		case core.Expense:
			out[i].Expenses = out[i].Expenses.Add(t.Amount)
		}
	}

	for i := range out {
		out[i].Net = out[i].Income.Sub(out[i].Expenses)
	}
	return out
}
