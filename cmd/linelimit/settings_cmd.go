package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"linelimit/internal/driver"
	"linelimit/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings [flags] [file|directory]",
	Short: "Show the maximum line length that applies to a path",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSettings,
}

func init() {
	settingsCmd.Flags().StringSlice("additional-file", nil, "settings candidates in priority order")
	settingsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type settingsPayload struct {
	Source            string   `json:"source,omitempty"`
	Candidates        []string `json:"candidates"`
	MaximumLineLength int      `json:"maximum_line_length"`
	Enabled           bool     `json:"enabled"`
	Reason            string   `json:"reason,omitempty"`
}

func runSettings(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	paths, err := cmd.Flags().GetStringSlice("additional-file")
	if err != nil {
		return fmt.Errorf("failed to get additional-file flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}

	if len(paths) == 0 {
		if path, ok := driver.NearestSettings(target); ok {
			paths = []string{path}
		}
	}
	candidates := driver.Candidates(paths...)
	cfg, err := settings.Resolve(cmd.Context(), candidates)
	if err != nil {
		return err
	}

	payload := settingsPayload{
		Source:            cfg.Source,
		Candidates:        make([]string, len(candidates)),
		MaximumLineLength: cfg.MaximumLineLength,
		Enabled:           cfg.Enabled(),
		Reason:            cfg.Reason,
	}
	for i, c := range candidates {
		payload.Candidates[i] = c.Path()
	}

	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}
	renderSettingsPretty(cmd.OutOrStdout(), payload)
	return nil
}

func renderSettingsPretty(out io.Writer, p settingsPayload) {
	if p.Source == "" {
		fmt.Fprintf(out, "no %s found\n", settings.FileName)
	} else {
		fmt.Fprintf(out, "source:  %s\n", p.Source)
	}
	if p.Enabled {
		fmt.Fprintf(out, "maximum: %d characters\n", p.MaximumLineLength)
		return
	}
	fmt.Fprintf(out, "disabled: %s\n", p.Reason)
}
