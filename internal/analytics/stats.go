package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// ComputeStats sums income and expenses over all time and over the calendar
// month containing now. Empty input yields all-zero stats.
func ComputeStats(transactions []core.Transaction, now time.Time) core.FinanceStats {
	var (
		totalIncome, totalExpenses     = decimal.Zero, decimal.Zero
		monthlyIncome, monthlyExpenses = decimal.Zero, decimal.Zero
	)
	for _, t := range transactions {
		thisMonth := t.Date.SameMonth(now)
		switch t.Type {
		case core.Income:
			totalIncome = totalIncome.Add(t.Amount)
			if thisMonth {
				monthlyIncome = monthlyIncome.Add(t.Amount)
			}
		case core.Expense:
			totalExpenses = totalExpenses.Add(t.Amount)
			if thisMonth {
				monthlyExpenses = monthlyExpenses.Add(t.Amount)
			}
		}
	}
	return core.FinanceStats{
		TotalIncome:     totalIncome,
		TotalExpenses:   totalExpenses,
		Balance:         totalIncome.Sub(totalExpenses),
		MonthlyIncome:   monthlyIncome,
		MonthlyExpenses: monthlyExpenses,
		MonthlyBalance:  monthlyIncome.Sub(monthlyExpenses),
	}
}
