package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/planner"
	"github.com/aretw0/planner/internal/platform"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a planner data directory",
	Long: `Init creates the data directory (default: the current directory) and
writes a .planner.yaml recording the chosen adapter and format, so later
commands run inside it find it automatically.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}
		if len(args) == 1 {
			dir = args[0]
		}

		svc, err := planner.New(dir, planner.WithAdapter(adapterFlag), planner.WithFormat(formatFlag))
		if err != nil {
			fatal("Failed to initialize data directory", err)
		}
		_ = svc.Close()

		cfg := platform.Config{Adapter: adapterFlag, Format: formatFlag}
		if err := platform.WriteConfigFile(filepath.Join(dir, platform.ConfigFileName), cfg); err != nil {
			fatal("Failed to write config", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Initialized planner data in", dir)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
