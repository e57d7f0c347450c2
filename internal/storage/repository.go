package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLiteRepository is a Gateway backed by a single key/value table.
type SQLiteRepository struct {
	db   *sql.DB
	seed []core.Category
}

// NewSQLiteRepository opens (creating if needed) the database at dbPath and
// applies migrations. seed is the category set used by Initialize and as the
// read fallback; nil means core.DefaultCategories.
func NewSQLiteRepository(dbPath string, seed []core.Category) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One writer at a time; read-modify-write transactions must not interleave.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	if seed == nil {
		seed = core.DefaultCategories()
	}

	return &SQLiteRepository{db: db, seed: seed}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Initialize seeds the category collection when its key is absent.
func (r *SQLiteRepository) Initialize(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin initialize: %w", err)
	}
	defer tx.Rollback()

	_, exists, err := loadCollection[core.Category](ctx, tx, KeyCategories)
	if err != nil {
		return err
	}
	if exists {
		slog.DebugContext(ctx, "Categories already stored, skipping seed")
		return nil
	}

	if err := storeCollection(ctx, tx, KeyCategories, r.seed); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit initialize: %w", err)
	}

	slog.InfoContext(ctx, "Seeded default categories", "count", len(r.seed))
	return nil
}

func (r *SQLiteRepository) Transactions(ctx context.Context) ([]core.Transaction, error) {
	items, _, err := loadCollection[core.Transaction](ctx, r.db, KeyTransactions)
	return items, err
}

func (r *SQLiteRepository) SaveTransaction(ctx context.Context, t core.Transaction) error {
	err := mutate[core.Transaction](ctx, r.db, KeyTransactions, nil, func(items []core.Transaction) []core.Transaction {
		return append(items, t)
	})
	if err != nil {
		return fmt.Errorf("save transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", t.ID,
		"type", t.Type,
		"amount", t.Amount.String(),
		"category", t.Category,
		"date", t.Date.String())
	return nil
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id string) error {
	err := mutate[core.Transaction](ctx, r.db, KeyTransactions, nil, func(items []core.Transaction) []core.Transaction {
		return removeByID(items, id, transactionID)
	})
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// Categories returns the stored categories, or the seed set if none are stored.
func (r *SQLiteRepository) Categories(ctx context.Context) ([]core.Category, error) {
	items, exists, err := loadCollection[core.Category](ctx, r.db, KeyCategories)
	if err != nil {
		return nil, err
	}
	if !exists {
		return append([]core.Category(nil), r.seed...), nil
	}
	return items, nil
}

func (r *SQLiteRepository) SaveCategory(ctx context.Context, c core.Category) error {
	err := mutate[core.Category](ctx, r.db, KeyCategories, r.seed, func(items []core.Category) []core.Category {
		return append(items, c)
	})
	if err != nil {
		return fmt.Errorf("save category: %w", err)
	}
	slog.InfoContext(ctx, "Category saved to SQLite", "id", c.ID, "name", c.Name, "type", c.Type)
	return nil
}

func (r *SQLiteRepository) Budgets(ctx context.Context) ([]core.Budget, error) {
	items, _, err := loadCollection[core.Budget](ctx, r.db, KeyBudgets)
	return items, err
}

// SaveBudget upserts by category.
func (r *SQLiteRepository) SaveBudget(ctx context.Context, b core.Budget) error {
	err := mutate[core.Budget](ctx, r.db, KeyBudgets, nil, func(items []core.Budget) []core.Budget {
		return core.UpsertBudget(items, b)
	})
	if err != nil {
		return fmt.Errorf("save budget: %w", err)
	}
	slog.InfoContext(ctx, "Budget saved to SQLite",
		"id", b.ID,
		"category", b.Category,
		"limit", b.Limit.String(),
		"period", b.Period)
	return nil
}

func (r *SQLiteRepository) DeleteBudget(ctx context.Context, id string) error {
	err := mutate[core.Budget](ctx, r.db, KeyBudgets, nil, func(items []core.Budget) []core.Budget {
		return removeByID(items, id, budgetID)
	})
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return nil
}

// loadCollection reads and decodes the array stored under key. exists is
// false when the key has never been written.
func loadCollection[T any](ctx context.Context, q dbtx, key string) (items []T, exists bool, err error) {
	var raw string
	err = q.QueryRowContext(ctx, `SELECT value FROM collections WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, true, fmt.Errorf("decode %s: %w", key, err)
	}
	return items, true, nil
}

func storeCollection[T any](ctx context.Context, q dbtx, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = q.ExecContext(ctx,
		`INSERT INTO collections (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(raw))
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// mutate applies fn to the stored collection inside one transaction. When the
// key is absent fn receives a copy of fallback.
func mutate[T any](ctx context.Context, db *sql.DB, key string, fallback []T, fn func([]T) []T) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	items, exists, err := loadCollection[T](ctx, tx, key)
	if err != nil {
		return err
	}
	if !exists {
		items = append([]T(nil), fallback...)
	}

	if err := storeCollection(ctx, tx, key, fn(items)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
