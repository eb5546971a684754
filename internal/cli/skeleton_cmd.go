package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alexanderramin/outing/internal/cli/formatter"
	"github.com/alexanderramin/outing/internal/domain"
	"github.com/alexanderramin/outing/internal/planner"
	"github.com/spf13/cobra"
)

func newSkeletonCmd(app *App) *cobra.Command {
	var budget float64
	var currency, start, end string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "skeleton",
		Short: "Show the time and budget template for a window, without looking up venues",
		RunE: func(cmd *cobra.Command, args []string) error {
			if budget <= 0 {
				return fmt.Errorf("--budget must be greater than 0 (got %v)", budget)
			}
			for _, t := range []string{start, end} {
				if _, err := planner.ParseClock(t); err != nil {
					return err
				}
			}

			s := planner.BuildSkeleton(
				domain.Budget{Amount: budget, Currency: strings.ToUpper(currency)},
				start, end, app.Tables,
			)

			if asJSON {
				data, err := json.MarshalIndent(s, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding skeleton: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSkeleton(s))
			return nil
		},
	}

	cmd.Flags().Float64Var(&budget, "budget", 0, "Total budget for the whole party")
	cmd.Flags().StringVar(&currency, "currency", "EUR", "ISO currency code of the budget")
	cmd.Flags().StringVar(&start, "start", "18:00", "Start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "23:00", "End time (HH:MM)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the skeleton as JSON")
	_ = cmd.MarkFlagRequired("budget")

	return cmd
}
