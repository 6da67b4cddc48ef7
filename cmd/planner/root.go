package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/planner"
	"github.com/aretw0/planner/internal/platform"
	"github.com/aretw0/planner/pkg/core"
	"github.com/aretw0/planner/pkg/effects"
	domain "github.com/aretw0/planner/pkg/planner"
)

var (
	verbose     bool
	dataDirFlag string
	adapterFlag string
	formatFlag  string
	readOnly    bool
	assumeYes   bool

	dataDir string
	config  planner.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "planner",
	Short: "A personal weekly planner",
	Long: `Planner keeps a weekly schedule of time slots, notes, a small music
playlist and your preferences in a local data directory.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDataDir()
		if err != nil {
			return err
		}
		dataDir = dir

		config, err = planner.LoadConfig(dir)
		if err != nil {
			return err
		}

		level := slog.LevelInfo
		if verbose || config.Verbose {
			level = slog.LevelDebug
		}
		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
		return nil
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&dataDirFlag, "data-dir", "d", "", "Planner data directory (default: nearest .planner.yaml, else the user config dir)")
	rootCmd.PersistentFlags().StringVar(&adapterFlag, "adapter", "", "Storage adapter: fs, sqlite or memory")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "", "File format of the fs adapter: json or yaml")
	rootCmd.PersistentFlags().BoolVar(&readOnly, "read-only", false, "Open the data directory read-only")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Answer yes to confirmation prompts")
}

// resolveDataDir picks the data directory: flag, then PLANNER_DATA_DIR,
// then the nearest marked directory above the working directory, then the
// per-user default.
func resolveDataDir() (string, error) {
	if dataDirFlag != "" {
		return dataDirFlag, nil
	}
	if v := os.Getenv(platform.EnvDataDir); v != "" {
		return v, nil
	}
	if wd, err := os.Getwd(); err == nil {
		if root, err := planner.FindDataRoot(wd); err == nil {
			return root, nil
		}
	}
	return planner.DefaultDataDir()
}

// storageOptions layers flags over the config file and environment.
func storageOptions(cmd *cobra.Command) []planner.Option {
	opts := append(config.Options(), planner.WithLogger(slog.Default()))
	flags := cmd.Flags()
	if flags.Changed("adapter") {
		opts = append(opts, planner.WithAdapter(adapterFlag))
	}
	if flags.Changed("format") {
		opts = append(opts, planner.WithFormat(formatFlag))
	}
	if flags.Changed("read-only") {
		opts = append(opts, planner.WithReadOnly(readOnly))
	}
	return opts
}

func openService(cmd *cobra.Command) *core.Service {
	svc, err := planner.New(dataDir, storageOptions(cmd)...)
	if err != nil {
		fatal("Error opening planner data", err)
	}
	return svc
}

// openPlanner opens storage and loads the planner.
func openPlanner(cmd *cobra.Command) (*domain.Planner, *core.Service) {
	svc := openService(cmd)
	p := planner.Open(context.Background(), svc, domain.WithLogger(slog.Default()))
	return p, svc
}

// openCelebratingPlanner is openPlanner for the schedule views and slot
// edits: complete days are celebrated on stdout, each at most once per run.
func openCelebratingPlanner(cmd *cobra.Command) (*domain.Planner, *core.Service) {
	svc := openService(cmd)
	shown := make(map[string]bool)
	confetti := effects.NewConfetti(func(b effects.Burst) {
		if shown[b.Day] {
			return
		}
		shown[b.Day] = true
		fmt.Fprintf(cmd.OutOrStdout(), "*** %s is complete! %d pieces of confetti ***\n", b.Day, len(b.Particles))
	}, effects.WithLogger(slog.Default()))

	p := planner.Open(context.Background(), svc,
		domain.WithLogger(slog.Default()),
		domain.WithCelebrator(confetti),
	)
	return p, svc
}

// checkPersisted fails the command when the last write did not reach storage.
func checkPersisted(p *domain.Planner) {
	if err := p.PersistErr(); err != nil {
		fatal("Changes were not saved", err)
	}
}

// promptConfirmer asks y/N questions on the terminal.
type promptConfirmer struct {
	in  io.Reader
	out io.Writer
	yes bool
}

func (c promptConfirmer) Confirm(prompt string) bool {
	if c.yes {
		return true
	}
	fmt.Fprintf(c.out, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func confirmer(cmd *cobra.Command) domain.Confirmer {
	return promptConfirmer{in: cmd.InOrStdin(), out: cmd.OutOrStdout(), yes: assumeYes}
}
