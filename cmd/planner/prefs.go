package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	domain "github.com/aretw0/planner/pkg/planner"
)

var (
	prefsTheme      string
	prefsDark       bool
	prefsQuote      string
	prefsResetQuote bool
	prefsName       string
	prefsJSON       bool
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change preferences",
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current preferences",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		p, svc := openPlanner(cmd)
		defer svc.Close()

		prefs := p.Preferences(ctx)
		if prefsJSON {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(prefs); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "app name:  %s\n", prefs.AppName)
		fmt.Fprintf(out, "theme:     %s\n", prefs.Theme)
		fmt.Fprintf(out, "dark mode: %v\n", prefs.DarkMode)
		fmt.Fprintf(out, "classes:   %s\n", domain.ThemeClass(prefs))
		fmt.Fprintf(out, "quote:     %s\n", p.CurrentQuote(ctx))
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change preferences; only the given flags are applied",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		p, svc := openPlanner(cmd)
		defer svc.Close()

		unsubscribe := p.OnPreferences(func(prefs domain.Preferences) {
			fmt.Fprintf(cmd.OutOrStdout(), "classes: %s\n", domain.ThemeClass(prefs))
		})
		defer unsubscribe()

		flags := cmd.Flags()
		if flags.Changed("theme") {
			if err := p.SetTheme(ctx, prefsTheme); err != nil {
				fatal("Error setting theme", err)
			}
		}
		if flags.Changed("dark") {
			p.SetDarkMode(ctx, prefsDark)
		}
		if flags.Changed("name") {
			if err := p.SetAppName(ctx, prefsName); err != nil {
				fatal("Error setting app name", err)
			}
		}
		if flags.Changed("quote") {
			if err := p.SetCustomQuote(ctx, prefsQuote); err != nil {
				fatal("Error setting quote", err)
			}
		}
		if prefsResetQuote {
			p.ResetCustomQuote(ctx)
		}
		checkPersisted(p)
	},
}

func init() {
	prefsShowCmd.Flags().BoolVar(&prefsJSON, "json", false, "Output in JSON format")
	prefsSetCmd.Flags().StringVar(&prefsTheme, "theme", "", "Color theme, e.g. pink")
	prefsSetCmd.Flags().BoolVar(&prefsDark, "dark", false, "Dark mode")
	prefsSetCmd.Flags().StringVar(&prefsName, "name", "", fmt.Sprintf("Planner name (max %d characters)", domain.MaxAppNameLength))
	prefsSetCmd.Flags().StringVar(&prefsQuote, "quote", "", fmt.Sprintf("Custom quote (max %d characters)", domain.MaxQuoteLength))
	prefsSetCmd.Flags().BoolVar(&prefsResetQuote, "reset-quote", false, "Go back to the daily quotes")

	prefsCmd.AddCommand(prefsShowCmd, prefsSetCmd)
	rootCmd.AddCommand(prefsCmd)
}
