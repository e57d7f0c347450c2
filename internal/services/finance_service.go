// Package services provides business logic and orchestration services.
//
// FinanceService owns the session's in-memory collections. Every mutation is
// written to the storage gateway first and applied in memory only after the
// write succeeds, so a storage failure never leaves phantom state behind.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// Failure kinds. Errors returned by FinanceService wrap exactly one of them.
var (
	ErrLoad    = errors.New("load failed")
	ErrPersist = errors.New("persist failed")
)

// Publisher receives a notification after each persisted mutation.
type Publisher interface {
	PublishChange(ctx context.Context, change core.Change) error
	Close() error
}

// Option configures a FinanceService.
type Option func(*FinanceService)

// WithClock replaces time.Now, used for CreatedAt and as "now" in aggregations.
func WithClock(now func() time.Time) Option {
	return func(s *FinanceService) { s.now = now }
}

// WithIDGenerator replaces uuid.NewString.
func WithIDGenerator(newID func() string) Option {
	return func(s *FinanceService) { s.newID = newID }
}

// WithPublisher enables change notifications.
func WithPublisher(p Publisher) Option {
	return func(s *FinanceService) { s.publisher = p }
}

// WithTrendWindow sets the default number of months in MonthlyTrend.
func WithTrendWindow(months int) Option {
	return func(s *FinanceService) { s.trendWindow = months }
}

// FinanceService is the explicit session state shared with the presentation
// layer. Create it with NewFinanceService, call Initialize, and Close it when
// the session ends.
type FinanceService struct {
	store       storage.Gateway
	publisher   Publisher
	now         func() time.Time
	newID       func() string
	trendWindow int

	mu           sync.RWMutex
	transactions []core.Transaction
	categories   []core.Category
	budgets      []core.Budget
}

func NewFinanceService(store storage.Gateway, opts ...Option) *FinanceService {
	s := &FinanceService{
		store:       store,
		now:         time.Now,
		newID:       uuid.NewString,
		trendWindow: analytics.DefaultTrendWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize seeds default categories if none are stored and loads all three
// collections. Calling it again reloads without reseeding.
func (s *FinanceService) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Initialize(ctx); err != nil {
		return fmt.Errorf("%w: seed categories: %w", ErrPersist, err)
	}

	transactions, err := s.store.Transactions(ctx)
	if err != nil {
		return fmt.Errorf("%w: transactions: %w", ErrLoad, err)
	}
	categories, err := s.store.Categories(ctx)
	if err != nil {
		return fmt.Errorf("%w: categories: %w", ErrLoad, err)
	}
	budgets, err := s.store.Budgets(ctx)
	if err != nil {
		return fmt.Errorf("%w: budgets: %w", ErrLoad, err)
	}

	s.transactions = transactions
	s.categories = categories
	s.budgets = budgets

	slog.InfoContext(ctx, "Finance session loaded",
		"transactions", len(transactions),
		"categories", len(categories),
		"budgets", len(budgets))
	return nil
}

// AddTransaction assigns an id and creation time, persists the record and
// appends it to the session. The draft is not validated here.
func (s *FinanceService) AddTransaction(ctx context.Context, d core.TransactionDraft) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := core.Transaction{
		ID:          s.newID(),
		Type:        d.Type,
		Amount:      d.Amount,
		Category:    d.Category,
		Description: d.Description,
		Date:        d.Date,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.SaveTransaction(ctx, t); err != nil {
		return core.Transaction{}, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	s.transactions = append(s.transactions, t)

	s.publish(ctx, storage.KeyTransactions, core.ActionCreated, t.ID)
	return t, nil
}

// DeleteTransaction removes the transaction with id. Unknown ids are a no-op.
func (s *FinanceService) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	kept := make([]core.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(s.transactions) {
		slog.DebugContext(ctx, "Delete of unknown transaction ignored", "id", id)
		return nil
	}
	s.transactions = kept

	s.publish(ctx, storage.KeyTransactions, core.ActionDeleted, id)
	return nil
}

// AddCategory assigns an id and appends the category. Duplicate names within
// a type are accepted.
func (s *FinanceService) AddCategory(ctx context.Context, d core.CategoryDraft) (core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := core.Category{
		ID:    s.newID(),
		Name:  d.Name,
		Type:  d.Type,
		Icon:  d.Icon,
		Color: d.Color,
	}
	if err := s.store.SaveCategory(ctx, c); err != nil {
		return core.Category{}, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	s.categories = append(s.categories, c)

	s.publish(ctx, storage.KeyCategories, core.ActionCreated, c.ID)
	return c, nil
}

// UpsertBudget stores d as the single budget for its category. An existing
// budget for the category keeps its id; otherwise d.ID is used, or a new id
// when d.ID is empty or already names another category's budget.
func (s *FinanceService) UpsertBudget(ctx context.Context, d core.BudgetDraft) (core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := d.ID
	if existing, ok := core.FindBudget(s.budgets, d.Category); ok {
		id = existing.ID
	} else if id == "" || s.budgetIDTaken(id) {
		id = s.newID()
	}

	b := core.Budget{
		ID:       id,
		Category: d.Category,
		Limit:    d.Limit,
		Period:   d.Period,
	}
	if err := s.store.SaveBudget(ctx, b); err != nil {
		return core.Budget{}, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	s.budgets = core.UpsertBudget(s.budgets, b)

	s.publish(ctx, storage.KeyBudgets, core.ActionUpdated, b.ID)
	return b, nil
}

func (s *FinanceService) budgetIDTaken(id string) bool {
	for _, b := range s.budgets {
		if b.ID == id {
			return true
		}
	}
	return false
}

// DeleteBudget removes the budget with id. Unknown ids are a no-op.
func (s *FinanceService) DeleteBudget(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteBudget(ctx, id); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	kept := make([]core.Budget, 0, len(s.budgets))
	for _, b := range s.budgets {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(s.budgets) {
		return nil
	}
	s.budgets = kept

	s.publish(ctx, storage.KeyBudgets, core.ActionDeleted, id)
	return nil
}

func (s *FinanceService) publish(ctx context.Context, collection string, action core.ChangeAction, id string) {
	if s.publisher == nil {
		return
	}
	change := core.Change{Collection: collection, Action: action, ID: id, At: s.now().UTC()}
	if err := s.publisher.PublishChange(ctx, change); err != nil {
		// The mutation is already durable; notification is best effort.
		slog.ErrorContext(ctx, "Failed to publish change",
			"collection", collection, "action", action, "id", id, "error", err)
	}
}

// Close ends the session, closing the gateway and the publisher.
func (s *FinanceService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close finance service: %w", errors.Join(errs...))
	}

	return nil
}
