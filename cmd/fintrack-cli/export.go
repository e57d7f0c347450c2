package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"fintrack/internal/core"
	"fintrack/internal/services"
)

// transactionRow is the CSV shape of a transaction. Amounts and dates stay
// strings so the file round-trips without float or timezone drift.
type transactionRow struct {
	ID          string `csv:"id"`
	Date        string `csv:"date"`
	Type        string `csv:"type"`
	Category    string `csv:"category"`
	Description string `csv:"description"`
	Amount      string `csv:"amount"`
	CreatedAt   string `csv:"created_at"`
}

func toRows(transactions []core.Transaction) []transactionRow {
	rows := make([]transactionRow, 0, len(transactions))
	for _, t := range transactions {
		rows = append(rows, transactionRow{
			ID:          t.ID,
			Date:        t.Date.String(),
			Type:        string(t.Type),
			Category:    t.Category,
			Description: t.Description,
			Amount:      t.Amount.String(),
			CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return rows
}

// draftsFromRows validates rows read from CSV. The first invalid row aborts
// the import; its line number counts the header as line 1.
func draftsFromRows(rows []transactionRow) ([]core.TransactionDraft, error) {
	drafts := make([]core.TransactionDraft, 0, len(rows))
	for i, row := range rows {
		if row.Date == "" {
			return nil, fmt.Errorf("line %d: %w", i+2, core.ErrZeroDate)
		}
		d, err := buildTransactionDraft(row.Type, row.Amount, row.Category, row.Description, row.Date)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

func writeCSV(w io.Writer, transactions []core.Transaction) error {
	rows := toRows(transactions)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func readCSV(r io.Reader) ([]core.TransactionDraft, error) {
	var rows []transactionRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return draftsFromRows(rows)
}

func newExportCmd(a *app) *cobra.Command {
	var (
		output   string
		txType   string
		category string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write transactions to CSV, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := buildFilter(txType, category, 0)
			if err != nil {
				return err
			}
			return a.withFinance(cmd.Context(), func(svc *services.FinanceService) error {
				transactions := svc.FilterTransactions(f)
				if output == "" || output == "-" {
					return writeCSV(cmd.OutOrStdout(), transactions)
				}

				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				if err := writeCSV(file, transactions); err != nil {
					_ = file.Close()
					return err
				}
				if err := file.Close(); err != nil {
					return fmt.Errorf("close %s: %w", output, err)
				}
				a.logger.Info("Exported transactions", "file", output, "count", len(transactions))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "CSV file to write (default stdout)")
	cmd.Flags().StringVarP(&txType, "type", "t", "", "only income or expense")
	cmd.Flags().StringVarP(&category, "category", "c", "", "only this category")
	return cmd
}

func newTxImportCmd(a *app) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Add every transaction from a CSV file in the export format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(input)
			if err != nil {
				return fmt.Errorf("open %s: %w", input, err)
			}
			drafts, err := readCSV(file)
			_ = file.Close()
			if err != nil {
				return err
			}

			return a.withFinance(cmd.Context(), func(svc *services.FinanceService) error {
				for _, d := range drafts {
					if _, err := svc.AddTransaction(cmd.Context(), d); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d transactions\n", len(drafts))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "CSV file to read")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
