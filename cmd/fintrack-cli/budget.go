package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fintrack/internal/core"
	"fintrack/internal/services"
)

func newBudgetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Set, delete and check budgets",
	}
	cmd.AddCommand(newBudgetSetCmd(a), newBudgetDeleteCmd(a), newBudgetStatusCmd(a))
	return cmd
}

func newBudgetSetCmd(a *app) *cobra.Command {
	var (
		limit  string
		period string
	)

	cmd := &cobra.Command{
		Use:   "set <category>",
		Short: "Create or replace the budget of a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := buildBudgetDraft(args[0], limit, period)
			if err != nil {
				return err
			}
			return a.withFinance(cmd.Context(), func(svc *services.FinanceService) error {
				b, err := svc.UpsertBudget(cmd.Context(), draft)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), b.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&limit, "limit", "l", "", "positive spending limit")
	cmd.Flags().StringVarP(&period, "period", "p", string(core.Monthly), "weekly, monthly or yearly")
	_ = cmd.MarkFlagRequired("limit")
	return cmd
}

func buildBudgetDraft(category, limit, period string) (core.BudgetDraft, error) {
	value, err := core.ParseLimit(limit)
	if err != nil {
		return core.BudgetDraft{}, err
	}
	p := core.Period(strings.ToLower(strings.TrimSpace(period)))
	if p == "" {
		p = core.Monthly
	}

	draft := core.BudgetDraft{
		Category: strings.TrimSpace(category),
		Limit:    value,
		Period:   p,
	}
	if err := draft.Validate(); err != nil {
		return core.BudgetDraft{}, err
	}
	return draft, nil
}

func newBudgetDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a budget; unknown ids are ignored",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withFinance(cmd.Context(), func(svc *services.FinanceService) error {
				return svc.DeleteBudget(cmd.Context(), strings.TrimSpace(args[0]))
			})
		},
	}
}

func newBudgetStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show spending against every budget for its current period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withFinance(cmd.Context(), func(svc *services.FinanceService) error {
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "ID\tCATEGORY\tPERIOD\tSINCE\tLIMIT\tSPENT\tREMAINING\tUSED")
				for _, st := range svc.BudgetStatuses() {
					flag := ""
					if st.OverBudget {
						flag = " over"
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%.1f%%%s\n",
						st.Budget.ID, st.Budget.Category, st.Budget.Period, st.PeriodStart,
						core.FormatAmount(st.Budget.Limit), core.FormatAmount(st.Spent),
						core.FormatAmount(st.Remaining), st.Percentage, flag)
				}
				return tw.Flush()
			})
		},
	}
}
