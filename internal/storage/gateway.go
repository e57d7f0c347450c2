// Package storage persists the finance collections. Each collection is an
// ordered sequence of records stored as one value under its own key.
package storage

import (
	"context"

	"fintrack/internal/core"
)

// Collection keys, one per entity collection.
const (
	KeyTransactions = "finance-tracker-transactions"
	KeyCategories   = "finance-tracker-categories"
	KeyBudgets      = "finance-tracker-budgets"
)

// Gateway is the durable store consumed by the finance service.
//
// Saves of transactions and categories append. SaveBudget replaces the entry
// with the same category (see core.UpsertBudget). Deletes of unknown ids are
// no-ops. Categories falls back to the seed set while nothing is stored.
type Gateway interface {
	// Initialize writes the seed categories once, when none are stored.
	Initialize(ctx context.Context) error

	Transactions(ctx context.Context) ([]core.Transaction, error)
	SaveTransaction(ctx context.Context, t core.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error

	Categories(ctx context.Context) ([]core.Category, error)
	SaveCategory(ctx context.Context, c core.Category) error

	Budgets(ctx context.Context) ([]core.Budget, error)
	SaveBudget(ctx context.Context, b core.Budget) error
	DeleteBudget(ctx context.Context, id string) error

	Close() error
}

// removeByID drops every item whose id matches.
func removeByID[T any](items []T, id string, idOf func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if idOf(it) != id {
			out = append(out, it)
		}
	}
	return out
}

func transactionID(t core.Transaction) string { return t.ID }
func budgetID(b core.Budget) string           { return b.ID }
