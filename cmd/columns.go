package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "List the dynamic columns in display order",
	Args:  cobra.NoArgs,
	RunE:  runColumns,
}

var columnsEnableCmd = &cobra.Command{
	Use:   "enable NAME",
	Short: "Show a dynamic column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setColumn(cmd, args[0], true)
	},
}

var columnsDisableCmd = &cobra.Command{
	Use:   "disable NAME",
	Short: "Hide a dynamic column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setColumn(cmd, args[0], false)
	},
}

func init() {
	columnsCmd.Flags().Bool("active", false, "only list enabled columns")
	columnsCmd.AddCommand(columnsEnableCmd, columnsDisableCmd)
	rootCmd.AddCommand(columnsCmd)
}

func runColumns(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)
	s, err := openSession(cmd.Context(), printer)
	if err != nil {
		return err
	}
	defer s.close()

	active, _ := cmd.Flags().GetBool("active")
	printer.Columns(s.model, active)
	return nil
}

func setColumn(cmd *cobra.Command, name string, enabled bool) error {
	printer := newPrinter(cmd)
	s, err := openSession(cmd.Context(), printer)
	if err != nil {
		return err
	}
	defer s.close()

	col, ok := s.model.FindDynamicColumn(name, false)
	if !ok {
		return fmt.Errorf("unknown column %q", name)
	}
	if err := s.store.SetTableColumnState(col.Name, enabled); err != nil {
		return fmt.Errorf("failed to save column %s: %w", col.Name, err)
	}
	state := "disabled"
	if enabled {
		state = "enabled"
	}
	printer.Success(fmt.Sprintf("column %s %s", col.Name, state))
	return nil
}
