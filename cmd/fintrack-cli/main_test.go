package main

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/core"
)

func run(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("AMQP_URL", "")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DATA_BACKEND", "sqlite")
	t.Setenv("CATEGORY_SEED_FILE", "")
	t.Setenv("TREND_MONTHS", "6")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--db", db}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, db string, args ...string) string {
	t.Helper()
	out, err := run(t, db, args...)
	require.NoError(t, err, "fintrack-cli %s", strings.Join(args, " "))
	return out
}

func lines(out string) []string {
	return strings.Split(strings.TrimRight(out, "\n"), "\n")
}

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "fintrack.db")
}

func TestInit_SeedsDefaults(t *testing.T) {
	out := mustRun(t, tempDB(t), "init")
	assert.Equal(t, "store ready: 10 categories, 0 transactions, 0 budgets\n", out)
}

func TestInit_MemoryBackend(t *testing.T) {
	out := mustRun(t, tempDB(t), "--backend", "memory", "init")
	assert.Contains(t, out, "10 categories")
}

func TestInvalidBackendFlag(t *testing.T) {
	_, err := run(t, tempDB(t), "--backend", "postgres", "init")
	assert.Error(t, err)
}

func TestTransactionLifecycle(t *testing.T) {
	db := tempDB(t)

	id := strings.TrimSpace(mustRun(t, db, "tx", "add",
		"--type", "income", "--amount", "1000", "--category", "Salary",
		"--description", "March pay", "--date", "2024-03-01"))
	require.NotEmpty(t, id)

	mustRun(t, db, "tx", "add",
		"--amount", "42,50", "--category", "Food & Dining",
		"--description", "Groceries", "--date", "2024-03-18")

	out := mustRun(t, db, "tx", "list")
	rows := lines(out)
	require.Len(t, rows, 3)
	assert.Contains(t, rows[1], "Groceries", "newest date first")
	assert.Contains(t, rows[1], "42.50")
	assert.Contains(t, rows[2], "March pay")

	out = mustRun(t, db, "tx", "list", "--type", "income")
	assert.Len(t, lines(out), 2)

	out = mustRun(t, db, "stats")
	assert.Contains(t, out, "957.50")

	mustRun(t, db, "tx", "delete", id)
	mustRun(t, db, "tx", "delete", "no-such-id")

	out = mustRun(t, db, "tx", "list")
	assert.NotContains(t, out, "March pay")
	assert.Len(t, lines(out), 2)
}

func TestTxAdd_RejectsInvalidInput(t *testing.T) {
	db := tempDB(t)

	tests := []struct {
		name string
		args []string
	}{
		{"negative amount", []string{"--amount=-5", "--category", "c", "--description", "d"}},
		{"bad type", []string{"--type", "gift", "--amount", "5", "--category", "c", "--description", "d"}},
		{"blank description", []string{"--amount", "5", "--category", "c", "--description", "  "}},
		{"bad date", []string{"--amount", "5", "--category", "c", "--description", "d", "--date", "18/03/2024"}},
		{"missing amount", []string{"--category", "c", "--description", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, db, append([]string{"tx", "add"}, tt.args...)...)
			assert.Error(t, err)
		})
	}

	out := mustRun(t, db, "tx", "list")
	assert.Len(t, lines(out), 1, "only the header")
}

func TestCategories(t *testing.T) {
	db := tempDB(t)

	out := mustRun(t, db, "category", "list", "--type", "income")
	assert.Len(t, lines(out), 4)

	id := strings.TrimSpace(mustRun(t, db, "category", "add", "Pets", "--icon", "🐶", "--color", "#aa5500"))
	assert.NotEmpty(t, id)

	out = mustRun(t, db, "category", "list", "--type", "expense")
	assert.Contains(t, out, "Pets")
	assert.Len(t, lines(out), 9)

	_, err := run(t, db, "category", "add", " ")
	assert.ErrorIs(t, err, core.ErrEmptyName)

	_, err = run(t, db, "category", "list", "--type", "gift")
	assert.ErrorIs(t, err, core.ErrInvalidType)
}

func TestBudgets(t *testing.T) {
	db := tempDB(t)

	first := strings.TrimSpace(mustRun(t, db, "budget", "set", "Food & Dining", "--limit", "100"))
	second := strings.TrimSpace(mustRun(t, db, "budget", "set", "Food & Dining", "--limit", "120"))
	assert.Equal(t, first, second, "upsert keeps the budget id")

	mustRun(t, db, "tx", "add", "--amount", "150", "--category", "Food & Dining", "--description", "Feast")

	out := mustRun(t, db, "budget", "status")
	rows := lines(out)
	require.Len(t, rows, 2)
	assert.Contains(t, rows[1], "120.00")
	assert.Contains(t, rows[1], "150.00")
	assert.Contains(t, rows[1], "-30.00")
	assert.Contains(t, rows[1], "125.0%")
	assert.Contains(t, rows[1], "over")

	_, err := run(t, db, "budget", "set", "Food & Dining", "--limit", "0")
	assert.ErrorIs(t, err, core.ErrInvalidLimit)

	_, err = run(t, db, "budget", "set", "Food & Dining", "--limit", "10", "--period", "daily")
	assert.ErrorIs(t, err, core.ErrInvalidPeriod)

	mustRun(t, db, "budget", "delete", first)
	out = mustRun(t, db, "budget", "status")
	assert.Len(t, lines(out), 1)
}

func TestTrend(t *testing.T) {
	db := tempDB(t)

	out := mustRun(t, db, "trend")
	assert.Len(t, lines(out), 7)

	out = mustRun(t, db, "trend", "--months", "3")
	assert.Len(t, lines(out), 4)

	_, err := run(t, db, "trend", "--months", "40")
	assert.Error(t, err)
}

func TestBreakdown(t *testing.T) {
	db := tempDB(t)
	mustRun(t, db, "tx", "add", "--amount", "20", "--category", "Shopping", "--description", "socks")
	mustRun(t, db, "tx", "add", "--amount", "70", "--category", "Utilities", "--description", "power")

	rows := lines(mustRun(t, db, "breakdown"))
	require.Len(t, rows, 3)
	assert.Contains(t, rows[1], "Shopping", "category declaration order, not amount")
	assert.Contains(t, rows[1], "20.00")
	assert.Contains(t, rows[2], "Utilities")
	assert.Contains(t, rows[2], "70.00")
}

func TestExportImportRoundTrip(t *testing.T) {
	src := tempDB(t)
	mustRun(t, src, "tx", "add", "--type", "income", "--amount", "1000", "--category", "Salary",
		"--description", "pay", "--date", "2024-03-01")
	mustRun(t, src, "tx", "add", "--amount", "12.75", "--category", "Shopping",
		"--description", "socks, wool", "--date", "2024-03-05")

	file := filepath.Join(t.TempDir(), "tx.csv")
	mustRun(t, src, "export", "--output", file)

	dst := tempDB(t)
	out := mustRun(t, dst, "tx", "import", "--input", file)
	assert.Equal(t, "imported 2 transactions\n", out)

	rows := lines(mustRun(t, dst, "tx", "list"))
	require.Len(t, rows, 3)
	assert.Contains(t, rows[1], "socks, wool")
	assert.Contains(t, rows[1], "12.75")
	assert.Contains(t, rows[2], "1000.00")
}

func TestExport_Stdout(t *testing.T) {
	db := tempDB(t)
	mustRun(t, db, "tx", "add", "--amount", "5", "--category", "Shopping", "--description", "pen", "--date", "2024-03-05")

	rows := lines(mustRun(t, db, "export", "--type", "expense"))
	require.Len(t, rows, 2)
	assert.Equal(t, "id,date,type,category,description,amount,created_at", rows[0])
	assert.Contains(t, rows[1], ",2024-03-05,expense,Shopping,pen,5,")
}

func TestToRows(t *testing.T) {
	created := time.Date(2024, time.March, 5, 9, 30, 0, 0, time.UTC)
	rows := toRows([]core.Transaction{{
		ID:          "t1",
		Type:        core.Expense,
		Amount:      decimal.RequireFromString("12.50"),
		Category:    "Shopping",
		Description: "pen",
		Date:        core.NewDate(2024, 3, 5),
		CreatedAt:   created,
	}})

	require.Len(t, rows, 1)
	assert.Equal(t, transactionRow{
		ID:          "t1",
		Date:        "2024-03-05",
		Type:        "expense",
		Category:    "Shopping",
		Description: "pen",
		Amount:      "12.5",
		CreatedAt:   "2024-03-05T09:30:00Z",
	}, rows[0])
}

func TestDraftsFromRows_ReportsLine(t *testing.T) {
	_, err := draftsFromRows([]transactionRow{
		{Date: "2024-03-05", Type: "expense", Category: "Shopping", Description: "pen", Amount: "5"},
		{Date: "2024-03-06", Type: "expense", Category: "Shopping", Description: "pen", Amount: "-5"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidAmount)
	assert.Contains(t, err.Error(), "line 3")

	_, err = draftsFromRows([]transactionRow{{Type: "expense", Category: "c", Description: "d", Amount: "1"}})
	assert.ErrorIs(t, err, core.ErrZeroDate)
}

func TestEvents_RequiresBroker(t *testing.T) {
	_, err := run(t, tempDB(t), "events")
	assert.Error(t, err)
}
