package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/sysbrowse/internal/filter"
	"github.com/papapumpkin/sysbrowse/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the subsystem tree of the current world",
	Long: `Print every visible category of the current world with its subsystems
sorted by display name. The filter accepts whitespace-separated terms; a
leading "-" negates a term and a "name:", "class:", "module:" or "path:"
prefix scopes it to one field.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringP("filter", "f", "", "text filter over name, class, module and path")
	listCmd.Flags().String("module", "", "only subsystems from this module")
	listCmd.Flags().Bool("columns", true, "show the enabled dynamic columns")
	listCmd.Flags().Bool("hidden", false, "list hidden categories")
	listCmd.Flags().Bool("metrics", false, "print Prometheus metrics after the tree")
	rootCmd.AddCommand(listCmd)
}

// runList is also the root command's non-interactive fallback, so flags
// missing from cmd read as their zero values.
func runList(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)
	s, err := openSession(cmd.Context(), printer)
	if err != nil {
		return err
	}
	defer s.close()

	query, _ := cmd.Flags().GetString("filter")
	module, _ := cmd.Flags().GetString("module")
	columns := true
	if cmd.Flags().Lookup("columns") != nil {
		columns, _ = cmd.Flags().GetBool("columns")
	}
	hidden, _ := cmd.Flags().GetBool("hidden")
	withMetrics, _ := cmd.Flags().GetBool("metrics")

	chain := filter.DefaultChain(query, module)
	if len(chain.Checks) > 0 {
		s.model.SetTextFilter(chain)
	}

	printer.Tree(s.model, ui.TreeOptions{Columns: columns, ShowHidden: hidden})

	if withMetrics {
		fmt.Fprintln(cmd.OutOrStdout())
		if err := s.metrics.WriteText(cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}
