package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fintrack/internal/core"
	"fintrack/internal/services"
)

func newCategoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Add and list categories",
	}
	cmd.AddCommand(newCategoryAddCmd(a), newCategoryListCmd(a))
	return cmd
}

func newCategoryAddCmd(a *app) *cobra.Command {
	var (
		txType string
		icon   string
		color  string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := core.CategoryDraft{
				Name:  strings.TrimSpace(args[0]),
				Type:  core.TransactionType(strings.ToLower(strings.TrimSpace(txType))),
				Icon:  strings.TrimSpace(icon),
				Color: strings.TrimSpace(color),
			}
			if err := draft.Validate(); err != nil {
				return err
			}
			return a.withFinance(cmd.Context(), func(svc *services.FinanceService) error {
				c, err := svc.AddCategory(cmd.Context(), draft)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), c.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&txType, "type", "t", string(core.Expense), "income or expense")
	cmd.Flags().StringVar(&icon, "icon", "", "display icon")
	cmd.Flags().StringVar(&color, "color", "", "display color, e.g. #10b981")
	return cmd
}

func newCategoryListCmd(a *app) *cobra.Command {
	var txType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := core.TransactionType(strings.ToLower(strings.TrimSpace(txType)))
			if t != "" && !t.IsValid() {
				return core.ErrInvalidType
			}
			return a.withFinance(cmd.Context(), func(svc *services.FinanceService) error {
				cats := svc.Categories()
				if t != "" {
					cats = core.CategoriesOfType(cats, t)
				}
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "ID\tNAME\tTYPE\tICON\tCOLOR")
				for _, c := range cats {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Type, c.Icon, c.Color)
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().StringVarP(&txType, "type", "t", "", "only income or expense categories")
	return cmd
}
