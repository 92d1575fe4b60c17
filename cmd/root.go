package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/sysbrowse/internal/ansi"
	"github.com/papapumpkin/sysbrowse/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "sysbrowse",
	Short: "Browse the live subsystems of a running simulation",
	Long: `sysbrowse lists the subsystem instances of the current world grouped
into engine, game instance, world and player categories. Category visibility,
the game-only switch and column toggles persist across sessions.`,
	Args: cobra.NoArgs,
	RunE: runRootDefault,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .sysbrowse.yaml)")
	pf.BoolP("verbose", "v", false, "verbose output")
	pf.String("world", "", "world to browse (default: first world of the scene)")
	pf.String("scene", "", "scene file (default .sysbrowse/scene.toml)")

	_ = viper.BindPFlag("verbose", pf.Lookup("verbose"))
	_ = viper.BindPFlag("world", pf.Lookup("world"))
	_ = viper.BindPFlag("scene_path", pf.Lookup("scene"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".sysbrowse")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	config.BindEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// runRootDefault launches the TUI on an interactive terminal and falls back
// to printing the tree otherwise.
func runRootDefault(cmd *cobra.Command, args []string) error {
	if ansi.IsTerminal(os.Stdin) && ansi.IsTerminal(os.Stderr) {
		return runTUI(cmd, args)
	}
	return runList(cmd, args)
}
