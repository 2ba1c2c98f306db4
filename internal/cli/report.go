package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReportCmd(opts *rootOptions) *cobra.Command {
	var threshold int
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show low stock products and the inventory summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if !cmd.Flags().Changed("threshold") {
				threshold = a.Config.LowStockThreshold
			}
			if threshold < 0 {
				return fmt.Errorf("threshold must not be negative (got %d)", threshold)
			}

			ctx := cmd.Context()
			low, err := a.Products.LowStock(ctx, threshold)
			if err != nil {
				return err
			}
			summary, err := a.Products.Summary(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, section(fmt.Sprintf("Low stock (< %d units)", threshold)))
			fmt.Fprint(out, renderLowStock(low, threshold))
			fmt.Fprint(out, section("Inventory summary"))
			fmt.Fprint(out, renderSummary(summary))
			return nil
		},
	}
	cmd.Flags().IntVarP(&threshold, "threshold", "t", 0, "report products under this many units (default LOW_STOCK_THRESHOLD)")
	return cmd
}
