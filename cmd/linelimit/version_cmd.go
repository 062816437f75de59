package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"linelimit/internal/version"
)

var versionFormat string

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show linelimit build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Current()
		switch strings.ToLower(versionFormat) {
		case "json":
			return renderVersionJSON(cmd.OutOrStdout(), info)
		case "pretty":
			color, err := useColor(cmd)
			if err != nil {
				return err
			}
			renderVersionPretty(cmd.OutOrStdout(), info, color)
			return nil
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
	},
}

func renderVersionPretty(out io.Writer, info version.Info, color bool) {
	text := info.String()
	if color {
		text = strings.Replace(text, info.Version, version.Colored(), 1)
	}
	fmt.Fprintln(out, text)
}

func renderVersionJSON(out io.Writer, info version.Info) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(info)
}
