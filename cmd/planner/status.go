package main

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/planner"
	domain "github.com/aretw0/planner/pkg/planner"
)

type statusReport struct {
	Version   string         `json:"version"`
	DataDir   string         `json:"data_dir"`
	Config    planner.Config `json:"config"`
	Service   any            `json:"service"`
	Storage   any            `json:"storage,omitempty"`
	Documents []string       `json:"documents"`
	Slots     int            `json:"slots"`
	Notes     int            `json:"notes"`
	Tracks    int            `json:"tracks"`
	Complete  []string       `json:"complete_days"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print storage and planner state as JSON",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		p, svc := openPlanner(cmd)
		defer svc.Close()

		docs, err := svc.ListDocuments(ctx)
		if err != nil {
			fatal("Error listing documents", err)
		}
		ids := make([]string, 0, len(docs))
		for _, d := range docs {
			ids = append(ids, d.ID)
		}

		data := p.Data(ctx)
		report := statusReport{
			Version:   strings.TrimSpace(planner.Version),
			DataDir:   dataDir,
			Config:    config,
			Service:   svc.State(),
			Documents: ids,
			Slots:     len(data.Slots),
			Notes:     len(p.Notes(ctx)),
			Tracks:    len(data.MusicFiles),
			Complete:  domain.CompletedDays(data.Slots),
		}
		if in, ok := svc.Repository().(introspection.Introspectable); ok {
			report.Storage = in.State()
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			fatal("Error encoding JSON", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
