package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var gameOnlyCmd = &cobra.Command{
	Use:       "game-only [on|off]",
	Short:     "Show or set whether only game-module subsystems are listed",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"on", "off"},
	RunE:      runGameOnly,
}

func init() {
	rootCmd.AddCommand(gameOnlyCmd)
}

func runGameOnly(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)
	s, err := openSession(cmd.Context(), printer)
	if err != nil {
		return err
	}
	defer s.close()

	if len(args) == 0 {
		state := "off"
		if s.store.ShouldShowOnlyGame() {
			state = "on"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "game-only: %s\n", state)
		return nil
	}

	only := args[0] == "on"
	if err := s.store.SetShowOnlyGame(only); err != nil {
		return fmt.Errorf("failed to save game-only setting: %w", err)
	}
	s.GameOnlyChanged(only)
	printer.Success(fmt.Sprintf("game-only %s (%d subsystem(s) listed)", args[0], s.numListed()))
	return nil
}
