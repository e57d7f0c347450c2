package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"fintrack/internal/cli"
	"fintrack/internal/config"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

// timeNow is the clock for dates defaulted at the CLI boundary.
var timeNow = time.Now

// app carries state shared by every command once the root pre-run has
// resolved configuration.
type app struct {
	dbPath  string
	backend string

	cfg    *config.Config
	logger *log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "fintrack-cli",
		Short: "Record transactions, categories and budgets and print dashboard figures.",
		Long: `fintrack-cli works against the same storage as the fintrack server.
Every command opens a session, applies one intent or prints one view, and closes it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.configure()
		},
	}

	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite database path (overrides SQLITE_DB_PATH)")
	root.PersistentFlags().StringVar(&a.backend, "backend", "", "storage backend: sqlite or memory (overrides DATA_BACKEND)")

	root.AddCommand(
		newInitCmd(a),
		newTxCmd(a),
		newCategoryCmd(a),
		newBudgetCmd(a),
		newStatsCmd(a),
		newBreakdownCmd(a),
		newTrendCmd(a),
		newExportCmd(a),
		newEventsCmd(a),
	)
	return root
}

func (a *app) configure() error {
	cli.LoadEnvFile()

	cfg := config.Load()
	if a.dbPath != "" {
		cfg.SQLiteDBPath = a.dbPath
	}
	if a.backend != "" {
		cfg.DataBackend = a.backend
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = cli.SetupLoggerTo(cfg, os.Stderr).WithComponent(log.ComponentCLI)
	return nil
}

// withFinance opens a finance session for the duration of fn.
func (a *app) withFinance(ctx context.Context, fn func(*services.FinanceService) error) (err error) {
	svc, err := cli.InitFinance(ctx, a.logger, a.cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := svc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close finance session: %w", cerr)
		}
	}()
	return fn(svc)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the store and seed default categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withFinance(cmd.Context(), func(svc *services.FinanceService) error {
				a.logger.Info("Store ready",
					log.FieldOperation, log.OpStartup,
					"backend", a.cfg.DataBackend,
					"categories", len(svc.Categories()))
				fmt.Fprintf(cmd.OutOrStdout(), "store ready: %d categories, %d transactions, %d budgets\n",
					len(svc.Categories()), len(svc.Transactions()), len(svc.Budgets()))
				return nil
			})
		},
	}
}
