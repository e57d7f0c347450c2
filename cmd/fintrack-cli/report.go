package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fintrack/internal/config"
	"fintrack/internal/core"
	"fintrack/internal/services"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print all-time and current-month totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withFinance(cmd.Context(), func(svc *services.FinanceService) error {
				s := svc.Stats()
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintf(tw, "total income\t%s\n", core.FormatAmount(s.TotalIncome))
				fmt.Fprintf(tw, "total expenses\t%s\n", core.FormatAmount(s.TotalExpenses))
				fmt.Fprintf(tw, "balance\t%s\n", core.FormatAmount(s.Balance))
				fmt.Fprintf(tw, "monthly income\t%s\n", core.FormatAmount(s.MonthlyIncome))
				fmt.Fprintf(tw, "monthly expenses\t%s\n", core.FormatAmount(s.MonthlyExpenses))
				fmt.Fprintf(tw, "monthly balance\t%s\n", core.FormatAmount(s.MonthlyBalance))
				return tw.Flush()
			})
		},
	}
}

func newBreakdownCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "breakdown",
		Short: "Print all-time expenses per expense category in declaration order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withFinance(cmd.Context(), func(svc *services.FinanceService) error {
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "CATEGORY\tAMOUNT")
				for _, slice := range svc.CategoryBreakdown() {
					fmt.Fprintf(tw, "%s %s\t%s\n", slice.Icon, slice.Name, core.FormatAmount(slice.Value))
				}
				return tw.Flush()
			})
		},
	}
}

func newTrendCmd(a *app) *cobra.Command {
	var months int

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Print income, expenses and net for the trailing months",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if months < 0 || months > config.MaxTrendMonths {
				return fmt.Errorf("invalid months %d: must be between 1 and %d", months, config.MaxTrendMonths)
			}
			return a.withFinance(cmd.Context(), func(svc *services.FinanceService) error {
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "MONTH\tINCOME\tEXPENSES\tNET")
				for _, m := range svc.MonthlyTrend(months) {
					fmt.Fprintf(tw, "%s %d\t%s\t%s\t%s\n", m.Label, m.Year,
						core.FormatAmount(m.Income), core.FormatAmount(m.Expenses), core.FormatAmount(m.Net))
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().IntVarP(&months, "months", "m", 0, "window size (default TREND_MONTHS)")
	return cmd
}
