package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fintrack/internal/core"
)

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil, time.Now())
	for name, v := range map[string]string{
		"totalIncome":     stats.TotalIncome.String(),
		"totalExpenses":   stats.TotalExpenses.String(),
		"balance":         stats.Balance.String(),
		"monthlyIncome":   stats.MonthlyIncome.String(),
		"monthlyExpenses": stats.MonthlyExpenses.String(),
		"monthlyBalance":  stats.MonthlyBalance.String(),
	} {
		assert.Equal(t, "0", v, name)
	}
}

func TestComputeStatsPartitions(t *testing.T) {
	now := time.Date(2025, 3, 15, 9, 30, 0, 0, time.UTC)
	txs := []core.Transaction{
		tx("salary", core.Income, 3000, "Salary", core.NewDate(2025, 3, 1)),
		tx("rent", core.Expense, 1200, "Utilities", core.NewDate(2025, 3, 2)),
		tx("old-salary", core.Income, 2800, "Salary", core.NewDate(2025, 2, 1)),
		tx("old-food", core.Expense, 300, "Food & Dining", core.NewDate(2025, 2, 20)),
		tx("last-year", core.Expense, 50, "Shopping", core.NewDate(2024, 3, 10)),
	}

	stats := ComputeStats(txs, now)

	assert.Equal(t, "5800", stats.TotalIncome.String())
	assert.Equal(t, "1550", stats.TotalExpenses.String())
	assert.Equal(t, "4250", stats.Balance.String())
	assert.Equal(t, "3000", stats.MonthlyIncome.String())
	assert.Equal(t, "1200", stats.MonthlyExpenses.String(), "same month of a previous year is excluded")
	assert.Equal(t, "1800", stats.MonthlyBalance.String())
}

func TestComputeStatsBalanceIdentity(t *testing.T) {
	now := time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC)
	txs := []core.Transaction{
		{Type: core.Income, Amount: dec("0.1"), Date: core.NewDate(2025, 1, 3)},
		{Type: core.Income, Amount: dec("0.2"), Date: core.NewDate(2024, 12, 3)},
		{Type: core.Expense, Amount: dec("0.3"), Date: core.NewDate(2025, 1, 31)},
		{Type: core.Expense, Amount: dec("19.99"), Date: core.NewDate(2023, 6, 1)},
	}
	stats := ComputeStats(txs, now)
	assert.True(t, stats.TotalIncome.Sub(stats.TotalExpenses).Equal(stats.Balance))
	assert.True(t, stats.MonthlyIncome.Sub(stats.MonthlyExpenses).Equal(stats.MonthlyBalance))
	assert.Equal(t, "-0.2", stats.MonthlyBalance.String())
}
