package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

var hundred = decimal.NewFromInt(100)

// ComputeBudgetStatus sums the expenses in budget.Category dated on or after
// the start of the budget's current period. The stored Spent field is
// ignored. A non-positive limit yields a percentage of 0.
func ComputeBudgetStatus(budget core.Budget, transactions []core.Transaction, now time.Time) core.BudgetStatus {
	start := PeriodStart(budget.Period, now)

	spent := decimal.Zero
	for _, t := range transactions {
		if t.Type != core.Expense || t.Category != budget.Category {
			continue
		}
		if t.Date.Before(start.Time) {
			continue
		}
		spent = spent.Add(t.Amount)
	}

	var percentage float64
	if budget.Limit.IsPositive() {
		percentage = spent.Div(budget.Limit).Mul(hundred).InexactFloat64()
	}

	remaining := budget.Limit.Sub(spent)
	return core.BudgetStatus{
		Budget:      budget,
		PeriodStart: start,
		Spent:       spent,
		Percentage:  percentage,
		Remaining:   remaining,
		OverBudget:  remaining.IsNegative(),
	}
}

// ComputeBudgetStatuses evaluates every budget, preserving budget order.
func ComputeBudgetStatuses(budgets []core.Budget, transactions []core.Transaction, now time.Time) []core.BudgetStatus {
	out := make([]core.BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, ComputeBudgetStatus(b, transactions, now))
	}
	return out
}
