package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

func newTxCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Add, list and delete transactions",
	}
	cmd.AddCommand(newTxAddCmd(a), newTxListCmd(a), newTxDeleteCmd(a), newTxImportCmd(a))
	return cmd
}

func newTxAddCmd(a *app) *cobra.Command {
	var (
		txType      string
		amount      string
		category    string
		description string
		date        string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an income or expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := buildTransactionDraft(txType, amount, category, description, date)
			if err != nil {
				return err
			}
			return a.withFinance(cmd.Context(), func(svc *services.FinanceService) error {
				t, err := svc.AddTransaction(cmd.Context(), draft)
				if err != nil {
					return err
				}
				a.logger.Debug("Transaction added", log.FieldID, t.ID, log.FieldAmount, t.Amount.String())
				fmt.Fprintln(cmd.OutOrStdout(), t.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&txType, "type", "t", string(core.Expense), "income or expense")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "non-negative amount, e.g. 12.50")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "free-text description")
	cmd.Flags().StringVar(&date, "date", "", "calendar date YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

// buildTransactionDraft applies the same boundary validation as the HTTP
// adapter. An empty date means today.
func buildTransactionDraft(txType, amount, category, description, date string) (core.TransactionDraft, error) {
	value, err := core.ParseAmount(amount)
	if err != nil {
		return core.TransactionDraft{}, err
	}

	d := core.DateOf(timeNow())
	if strings.TrimSpace(date) != "" {
		if d, err = core.ParseDate(date); err != nil {
			return core.TransactionDraft{}, err
		}
	}

	draft := core.TransactionDraft{
		Type:        core.TransactionType(strings.ToLower(strings.TrimSpace(txType))),
		Amount:      value,
		Category:    strings.TrimSpace(category),
		Description: strings.TrimSpace(description),
		Date:        d,
	}
	if err := draft.Validate(); err != nil {
		return core.TransactionDraft{}, err
	}
	return draft, nil
}

func newTxListCmd(a *app) *cobra.Command {
	var (
		txType   string
		category string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := buildFilter(txType, category, limit)
			if err != nil {
				return err
			}
			return a.withFinance(cmd.Context(), func(svc *services.FinanceService) error {
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "ID\tDATE\tTYPE\tCATEGORY\tAMOUNT\tDESCRIPTION")
				for _, t := range svc.FilterTransactions(f) {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
						t.ID, t.Date, t.Type, t.Category, core.FormatAmount(t.Amount), t.Description)
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().StringVarP(&txType, "type", "t", "", "only income or expense")
	cmd.Flags().StringVarP(&category, "category", "c", "", "only this category")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "at most n rows (0 for all)")
	return cmd
}

func buildFilter(txType, category string, limit int) (analytics.Filter, error) {
	f := analytics.Filter{
		Type:     core.TransactionType(strings.ToLower(strings.TrimSpace(txType))),
		Category: strings.TrimSpace(category),
		Limit:    limit,
	}
	if f.Type != "" && !f.Type.IsValid() {
		return analytics.Filter{}, core.ErrInvalidType
	}
	if limit < 0 {
		return analytics.Filter{}, fmt.Errorf("invalid limit %d: must be non-negative", limit)
	}
	return f, nil
}

func newTxDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction; unknown ids are ignored",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withFinance(cmd.Context(), func(svc *services.FinanceService) error {
				return svc.DeleteTransaction(cmd.Context(), strings.TrimSpace(args[0]))
			})
		},
	}
}
