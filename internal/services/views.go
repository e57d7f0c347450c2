package services

import (
	"fintrack/internal/analytics"
	"fintrack/internal/core"
)

// Read side. Snapshots are copies; derived views are computed on every call
// against the service clock.

func (s *FinanceService) Transactions() []core.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Transaction(nil), s.transactions...)
}

func (s *FinanceService) Categories() []core.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Category(nil), s.categories...)
}

func (s *FinanceService) Budgets() []core.Budget {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Budget(nil), s.budgets...)
}

// FilterTransactions lists transactions newest first.
func (s *FinanceService) FilterTransactions(f analytics.Filter) []core.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return analytics.FilterTransactions(s.transactions, f)
}

func (s *FinanceService) Stats() core.FinanceStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return analytics.ComputeStats(s.transactions, s.now())
}

func (s *FinanceService) CategoryBreakdown() []core.CategorySlice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return analytics.ComputeCategoryBreakdown(s.transactions, s.categories)
}

// MonthlyTrend uses the configured window when months <= 0.
func (s *FinanceService) MonthlyTrend(months int) []core.MonthTrend {
	if months <= 0 {
		months = s.trendWindow
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return analytics.ComputeMonthlyTrend(s.transactions, s.now(), months)
}

func (s *FinanceService) BudgetStatus(b core.Budget) core.BudgetStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return analytics.ComputeBudgetStatus(b, s.transactions, s.now())
}

func (s *FinanceService) BudgetStatuses() []core.BudgetStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return analytics.ComputeBudgetStatuses(s.budgets, s.transactions, s.now())
}
