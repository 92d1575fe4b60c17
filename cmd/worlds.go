package cmd

import "github.com/spf13/cobra"

var worldsCmd = &cobra.Command{
	Use:   "worlds",
	Short: "List the worlds of the scene",
	Args:  cobra.NoArgs,
	RunE:  runWorlds,
}

func init() {
	rootCmd.AddCommand(worldsCmd)
}

func runWorlds(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)
	s, err := openSession(cmd.Context(), printer)
	if err != nil {
		return err
	}
	defer s.close()

	names := s.worldNames()
	if len(names) == 0 {
		printer.Info("the scene has no worlds")
		return nil
	}
	printer.Worlds(names, s.worldName())
	return nil
}
