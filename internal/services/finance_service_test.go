package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
	"fintrack/internal/storage"
	"fintrack/internal/storage/memory"
)

const foodCategory = "Food & Dining"

var fixedNow = time.Date(2024, time.March, 20, 10, 0, 0, 0, time.UTC)

type fakePublisher struct {
	changes []core.Change
	err     error
	closed  bool
}

func (p *fakePublisher) PublishChange(_ context.Context, c core.Change) error {
	p.changes = append(p.changes, c)
	return p.err
}

func (p *fakePublisher) Close() error {
	p.closed = true
	return nil
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestService(t *testing.T, opts ...Option) (*FinanceService, *memory.Store) {
	t.Helper()
	store := memory.New(nil)
	base := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(sequentialIDs()),
	}
	svc := NewFinanceService(store, append(base, opts...)...)
	require.NoError(t, svc.Initialize(context.Background()))
	return svc, store
}

func expenseDraft(amount int64, category string, date core.Date) core.TransactionDraft {
	return core.TransactionDraft{
		Type:        core.Expense,
		Amount:      decimal.NewFromInt(amount),
		Category:    category,
		Description: "test",
		Date:        date,
	}
}

func TestInitialize_SeedsDefaultCategories(t *testing.T) {
	svc, _ := newTestService(t)

	assert.Len(t, svc.Categories(), len(core.DefaultCategories()))
	assert.Empty(t, svc.Transactions())
	assert.Empty(t, svc.Budgets())
}

func TestInitialize_DoesNotReseed(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	_, err := svc.AddCategory(ctx, core.CategoryDraft{Name: "Pets", Type: core.Expense})
	require.NoError(t, err)

	again := NewFinanceService(store)
	require.NoError(t, again.Initialize(ctx))
	assert.Len(t, again.Categories(), len(core.DefaultCategories())+1)
}

func TestInitialize_SeedFailureIsPersistError(t *testing.T) {
	store := memory.New(nil)
	store.FailWrites(true)

	err := NewFinanceService(store).Initialize(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersist)
}

func TestAddTransaction(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	got, err := svc.AddTransaction(ctx, expenseDraft(42, foodCategory, core.NewDate(2024, 3, 19)))
	require.NoError(t, err)

	assert.Equal(t, "id-1", got.ID)
	assert.Equal(t, fixedNow, got.CreatedAt)
	assert.Equal(t, []core.Transaction{got}, svc.Transactions())

	stored, err := store.Transactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.Transaction{got}, stored)
}

func TestAddTransaction_StorageFailureLeavesSessionUnchanged(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	store.FailWrites(true)

	_, err := svc.AddTransaction(ctx, expenseDraft(42, foodCategory, core.NewDate(2024, 3, 19)))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersist)
	assert.ErrorIs(t, err, memory.ErrWriteFailed)
	assert.Empty(t, svc.Transactions())
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	a, err := svc.AddTransaction(ctx, expenseDraft(1, foodCategory, core.NewDate(2024, 3, 1)))
	require.NoError(t, err)
	b, err := svc.AddTransaction(ctx, expenseDraft(2, foodCategory, core.NewDate(2024, 3, 2)))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTransaction(ctx, a.ID))
	assert.Equal(t, []core.Transaction{b}, svc.Transactions())

	// Unknown id is a no-op.
	require.NoError(t, svc.DeleteTransaction(ctx, "missing"))
	assert.Equal(t, []core.Transaction{b}, svc.Transactions())
}

func TestDeleteTransaction_StorageFailureKeepsRecord(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	a, err := svc.AddTransaction(ctx, expenseDraft(1, foodCategory, core.NewDate(2024, 3, 1)))
	require.NoError(t, err)

	store.FailWrites(true)
	err = svc.DeleteTransaction(ctx, a.ID)
	assert.ErrorIs(t, err, ErrPersist)
	assert.Equal(t, []core.Transaction{a}, svc.Transactions())
}

func TestAddCategory_AllowsDuplicateNames(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	first, err := svc.AddCategory(ctx, core.CategoryDraft{Name: "Pets", Type: core.Expense, Icon: "🐶", Color: "#111111"})
	require.NoError(t, err)
	second, err := svc.AddCategory(ctx, core.CategoryDraft{Name: "Pets", Type: core.Expense})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	cats := svc.Categories()
	assert.Equal(t, first, cats[len(cats)-2])
	assert.Equal(t, second, cats[len(cats)-1])
}

func TestUpsertBudget_ReplacesByCategory(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	first, err := svc.UpsertBudget(ctx, core.BudgetDraft{Category: foodCategory, Limit: decimal.NewFromInt(100), Period: core.Monthly})
	require.NoError(t, err)
	_, err = svc.UpsertBudget(ctx, core.BudgetDraft{Category: "Transport", Limit: decimal.NewFromInt(50), Period: core.Weekly})
	require.NoError(t, err)

	second, err := svc.UpsertBudget(ctx, core.BudgetDraft{ID: "ignored", Category: foodCategory, Limit: decimal.NewFromInt(300), Period: core.Yearly})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "existing budget keeps its id")
	budgets := svc.Budgets()
	require.Len(t, budgets, 2)
	assert.Equal(t, second, budgets[0])
	assert.True(t, budgets[0].Limit.Equal(decimal.NewFromInt(300)))

	stored, err := store.Budgets(ctx)
	require.NoError(t, err)
	assert.Equal(t, budgets, stored)
}

func TestUpsertBudget_UsesDraftIDForNewCategory(t *testing.T) {
	svc, _ := newTestService(t)

	b, err := svc.UpsertBudget(context.Background(), core.BudgetDraft{ID: "b-food", Category: foodCategory, Limit: decimal.NewFromInt(10), Period: core.Monthly})
	require.NoError(t, err)
	assert.Equal(t, "b-food", b.ID)
}

func TestUpsertBudget_DraftIDOfAnotherCategoryGetsFreshID(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	food, err := svc.UpsertBudget(ctx, core.BudgetDraft{ID: "X", Category: foodCategory, Limit: decimal.NewFromInt(10), Period: core.Monthly})
	require.NoError(t, err)
	shopping, err := svc.UpsertBudget(ctx, core.BudgetDraft{ID: "X", Category: "Shopping", Limit: decimal.NewFromInt(20), Period: core.Monthly})
	require.NoError(t, err)

	assert.Equal(t, "X", food.ID)
	assert.NotEqual(t, food.ID, shopping.ID)
	assert.NotEmpty(t, shopping.ID)

	require.NoError(t, svc.DeleteBudget(ctx, "X"))
	budgets := svc.Budgets()
	require.Len(t, budgets, 1)
	assert.Equal(t, shopping, budgets[0])

	stored, err := store.Budgets(ctx)
	require.NoError(t, err)
	assert.Equal(t, budgets, stored)
}

func TestUpsertBudget_StorageFailure(t *testing.T) {
	svc, store := newTestService(t)
	store.FailWrites(true)

	_, err := svc.UpsertBudget(context.Background(), core.BudgetDraft{Category: foodCategory, Limit: decimal.NewFromInt(10), Period: core.Monthly})
	assert.ErrorIs(t, err, ErrPersist)
	assert.Empty(t, svc.Budgets())
}

func TestDeleteBudget(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	b, err := svc.UpsertBudget(ctx, core.BudgetDraft{Category: foodCategory, Limit: decimal.NewFromInt(10), Period: core.Monthly})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBudget(ctx, "missing"))
	assert.Len(t, svc.Budgets(), 1)

	require.NoError(t, svc.DeleteBudget(ctx, b.ID))
	assert.Empty(t, svc.Budgets())
}

func TestSnapshotsAreCopies(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	_, err := svc.AddTransaction(ctx, expenseDraft(5, foodCategory, core.NewDate(2024, 3, 1)))
	require.NoError(t, err)

	snap := svc.Transactions()
	snap[0].Category = "changed"

	assert.Equal(t, foodCategory, svc.Transactions()[0].Category)
}

func TestDerivedViewsUseServiceClock(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.AddTransaction(ctx, core.TransactionDraft{
		Type: core.Income, Amount: decimal.NewFromInt(1000), Category: "Salary",
		Description: "pay", Date: core.NewDate(2024, 3, 1),
	})
	require.NoError(t, err)
	_, err = svc.AddTransaction(ctx, expenseDraft(200, foodCategory, core.NewDate(2024, 3, 10)))
	require.NoError(t, err)
	_, err = svc.AddTransaction(ctx, expenseDraft(50, foodCategory, core.NewDate(2024, 2, 10)))
	require.NoError(t, err)
	budget, err := svc.UpsertBudget(ctx, core.BudgetDraft{Category: foodCategory, Limit: decimal.NewFromInt(400), Period: core.Monthly})
	require.NoError(t, err)

	stats := svc.Stats()
	assert.True(t, stats.Balance.Equal(decimal.NewFromInt(750)))
	assert.True(t, stats.MonthlyExpenses.Equal(decimal.NewFromInt(200)))
	assert.True(t, stats.MonthlyBalance.Equal(decimal.NewFromInt(800)))

	breakdown := svc.CategoryBreakdown()
	require.Len(t, breakdown, 1)
	assert.Equal(t, foodCategory, breakdown[0].Name)
	assert.True(t, breakdown[0].Value.Equal(decimal.NewFromInt(250)))

	trend := svc.MonthlyTrend(0)
	require.Len(t, trend, analytics.DefaultTrendWindow)
	last := trend[len(trend)-1]
	assert.Equal(t, "Mar", last.Label)
	assert.True(t, last.Net.Equal(decimal.NewFromInt(800)))
	assert.Len(t, svc.MonthlyTrend(3), 3)

	status := svc.BudgetStatus(budget)
	assert.True(t, status.Spent.Equal(decimal.NewFromInt(200)))
	assert.InDelta(t, 50.0, status.Percentage, 1e-9)

	statuses := svc.BudgetStatuses()
	require.Len(t, statuses, 1)
	assert.Equal(t, status, statuses[0])
}

func TestWithTrendWindow(t *testing.T) {
	svc, _ := newTestService(t, WithTrendWindow(12))
	assert.Len(t, svc.MonthlyTrend(0), 12)
}

func TestFilterTransactions(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	old, err := svc.AddTransaction(ctx, expenseDraft(1, foodCategory, core.NewDate(2024, 1, 1)))
	require.NoError(t, err)
	recent, err := svc.AddTransaction(ctx, expenseDraft(2, foodCategory, core.NewDate(2024, 3, 1)))
	require.NoError(t, err)
	_, err = svc.AddTransaction(ctx, expenseDraft(3, "Transport", core.NewDate(2024, 2, 1)))
	require.NoError(t, err)

	got := svc.FilterTransactions(analytics.Filter{Category: foodCategory})
	assert.Equal(t, []core.Transaction{recent, old}, got)
}

func TestPublisher_ReceivesChanges(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc, _ := newTestService(t, WithPublisher(pub))

	tx, err := svc.AddTransaction(ctx, expenseDraft(1, foodCategory, core.NewDate(2024, 3, 1)))
	require.NoError(t, err)
	require.NoError(t, svc.DeleteTransaction(ctx, tx.ID))
	require.NoError(t, svc.DeleteTransaction(ctx, tx.ID)) // no-op, no event
	b, err := svc.UpsertBudget(ctx, core.BudgetDraft{Category: foodCategory, Limit: decimal.NewFromInt(5), Period: core.Monthly})
	require.NoError(t, err)

	require.Len(t, pub.changes, 3)
	assert.Equal(t, core.Change{Collection: storage.KeyTransactions, Action: core.ActionCreated, ID: tx.ID, At: fixedNow}, pub.changes[0])
	assert.Equal(t, core.ActionDeleted, pub.changes[1].Action)
	assert.Equal(t, core.Change{Collection: storage.KeyBudgets, Action: core.ActionUpdated, ID: b.ID, At: fixedNow}, pub.changes[2])
}

func TestPublisher_FailureDoesNotFailMutation(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	svc, _ := newTestService(t, WithPublisher(pub))

	_, err := svc.AddTransaction(context.Background(), expenseDraft(1, foodCategory, core.NewDate(2024, 3, 1)))
	require.NoError(t, err)
	assert.Len(t, svc.Transactions(), 1)
}

func TestClose_ClosesPublisher(t *testing.T) {
	pub := &fakePublisher{}
	svc, _ := newTestService(t, WithPublisher(pub))

	require.NoError(t, svc.Close())
	assert.True(t, pub.closed)
}
