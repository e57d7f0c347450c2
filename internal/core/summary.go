package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinanceStats is derived on every query and never persisted.
type FinanceStats struct {
	TotalIncome     decimal.Decimal `json:"totalIncome"`
	TotalExpenses   decimal.Decimal `json:"totalExpenses"`
	Balance         decimal.Decimal `json:"balance"`
	MonthlyIncome   decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpenses decimal.Decimal `json:"monthlyExpenses"`
	MonthlyBalance  decimal.Decimal `json:"monthlyBalance"`
}

// CategorySlice is one entry of the expense breakdown.
type CategorySlice struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
	Color string          `json:"color"`
	Icon  string          `json:"icon"`
}

// MonthTrend is one calendar month of the rolling trend.
type MonthTrend struct {
	Label    string          `json:"month"`
	Year     int             `json:"year"`
	Month    int             `json:"monthNumber"` // 1-12
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// BudgetStatus is the consumption of a budget over its current period.
type BudgetStatus struct {
	Budget      Budget          `json:"budget"`
	PeriodStart Date            `json:"periodStart"`
	Spent       decimal.Decimal `json:"spent"`
	Percentage  float64         `json:"percentage"`
	Remaining   decimal.Decimal `json:"remaining"`
	// OverBudget is true once spending exceeds the limit.
	OverBudget bool `json:"overBudget"`
}

// ChangeAction names a mutation applied to a collection.
type ChangeAction string

const (
	ActionCreated ChangeAction = "created"
	ActionDeleted ChangeAction = "deleted"
	ActionUpdated ChangeAction = "upserted"
)

// Change describes a completed, persisted mutation.
type Change struct {
	Collection string       `json:"collection"`
	Action     ChangeAction `json:"action"`
	ID         string       `json:"id"`
	At         time.Time    `json:"at"`
}
