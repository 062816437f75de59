package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"linelimit/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the available line length rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		color, err := useColor(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderRules(rules.All(), color))
		return nil
	},
}

func renderRules(policies []rules.Policy, color bool) string {
	headerStyle := lipgloss.NewStyle().Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	if color {
		headerStyle = headerStyle.Bold(true).Foreground(lipgloss.Color("6"))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "THRESHOLD", "GATED", "EXEMPT").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == 0 {
				return headerStyle
			}
			return cellStyle
		})

	for _, p := range policies {
		threshold := "stylecop.json"
		if p.Source == rules.ThresholdFixed {
			threshold = strconv.Itoa(p.Fixed+p.ReportOffset) + " (fixed)"
		}
		gated := "no"
		if p.Gated {
			gated = "yes"
		}
		kinds := p.Exempt.Kinds()
		names := make([]string, len(kinds))
		for i, k := range kinds {
			names[i] = k.String()
		}
		t.Row(p.ID(), threshold, gated, strings.Join(names, "\n"))
	}
	return t.String()
}
