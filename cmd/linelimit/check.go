package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"linelimit/internal/diag"
	"linelimit/internal/diagfmt"
	"linelimit/internal/driver"
	"linelimit/internal/frontend"
	"linelimit/internal/rules"
	"linelimit/internal/ui"
	"linelimit/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file|directory]",
	Short: "Report lines longer than the configured maximum",
	Long: `Check walks the target (default: current directory), parses every
C# and Go file and runs the selected line length rules on it. Settings are
read from --additional-file, linelimit.toml, or the nearest stylecop.json.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("rules", rules.DefaultRuleID, "comma-separated rule IDs (see `linelimit rules`)")
	checkCmd.Flags().StringSlice("additional-file", nil, "settings candidates in priority order")
	checkCmd.Flags().StringSlice("exclude", []string{"bin", "obj", "vendor", ".git"}, "file or directory names (or globs) to skip")
	checkCmd.Flags().StringSlice("ext", nil, "file extensions to check (default: every supported)")
	checkCmd.Flags().String("config", "", "path to linelimit.toml (default: nearest)")
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("cache", false, "reuse results from the on-disk cache")
	checkCmd.Flags().String("ui", "off", "progress UI (auto|on|off)")
	checkCmd.Flags().Bool("warnings-as-errors", false, "exit with status 1 when any warning is reported")
}

type checkFlags struct {
	rules            string
	additional       []string
	exclude          []string
	exts             []string
	format           string
	jobs             int
	withNotes        bool
	fullPath         bool
	cache            bool
	ui               uiMode
	warningsAsErrors bool
	maxDiagnostics   int
	timings          bool
}

func readCheckFlags(cmd *cobra.Command) (checkFlags, error) {
	var (
		f   checkFlags
		err error
	)
	flags := cmd.Flags()
	if f.rules, err = flags.GetString("rules"); err != nil {
		return f, fmt.Errorf("failed to get rules flag: %w", err)
	}
	if f.additional, err = flags.GetStringSlice("additional-file"); err != nil {
		return f, fmt.Errorf("failed to get additional-file flag: %w", err)
	}
	if f.exclude, err = flags.GetStringSlice("exclude"); err != nil {
		return f, fmt.Errorf("failed to get exclude flag: %w", err)
	}
	if f.exts, err = flags.GetStringSlice("ext"); err != nil {
		return f, fmt.Errorf("failed to get ext flag: %w", err)
	}
	if f.format, err = flags.GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	if f.jobs, err = flags.GetInt("jobs"); err != nil {
		return f, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if f.withNotes, err = flags.GetBool("with-notes"); err != nil {
		return f, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if f.fullPath, err = flags.GetBool("fullpath"); err != nil {
		return f, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if f.cache, err = flags.GetBool("cache"); err != nil {
		return f, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if f.warningsAsErrors, err = flags.GetBool("warnings-as-errors"); err != nil {
		return f, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	uiStr, err := flags.GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = readUIMode(uiStr); err != nil {
		return f, err
	}
	if f.maxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return f, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if f.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return f, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return f, nil
}

// applyManifest fills every flag the user did not set explicitly from
// linelimit.toml.
func (f *checkFlags) applyManifest(cmd *cobra.Command, m *projectManifest) {
	if m == nil {
		return
	}
	cfg := m.Config
	changed := cmd.Flags().Changed
	if !changed("rules") && len(cfg.Rules.Enabled) > 0 {
		f.rules = strings.Join(cfg.Rules.Enabled, ",")
	}
	if !changed("additional-file") {
		f.additional = m.additionalFiles()
	}
	if !changed("exclude") && len(cfg.Files.Exclude) > 0 {
		f.exclude = cfg.Files.Exclude
	}
	if !changed("ext") {
		f.exts = cfg.Files.Extensions
	}
	if !changed("format") && cfg.Output.Format != "" {
		f.format = cfg.Output.Format
	}
	if !changed("fullpath") {
		f.fullPath = cfg.Output.FullPath
	}
	if !changed("max-diagnostics") && cfg.Output.MaxDiagnostics > 0 {
		f.maxDiagnostics = cfg.Output.MaxDiagnostics
	}
	if !changed("warnings-as-errors") {
		f.warningsAsErrors = cfg.Output.WarningsAsErrors
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	if _, err := os.Stat(target); err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	f, err := readCheckFlags(cmd)
	if err != nil {
		return err
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	manifest, err := loadProjectManifest(configPath, target)
	if err != nil {
		return err
	}
	f.applyManifest(cmd, manifest)

	policies, err := rules.ParseList(f.rules)
	if err != nil {
		return err
	}
	format, err := diagfmt.ParseFormat(f.format)
	if err != nil {
		return err
	}
	if len(f.additional) == 0 {
		if path, ok := driver.NearestSettings(target); ok {
			f.additional = []string{path}
		}
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := driver.Options{
		Rules:           policies,
		Extensions:      f.exts,
		Exclude:         f.exclude,
		AdditionalFiles: f.additional,
		Jobs:            f.jobs,
		MaxDiagnostics:  f.maxDiagnostics,
	}
	if f.cache {
		cache, err := driver.OpenDiskCache("linelimit")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		opts.Cache = cache
	}

	var result *driver.Result
	if shouldUseTUI(f.ui) {
		result, err = runCheckWithUI(cmd.Context(), target, opts)
	} else {
		result, err = driver.Check(cmd.Context(), target, opts)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	color, err := useColor(cmd)
	if err != nil {
		return err
	}
	pathMode := diagfmt.PathModeRelative
	if f.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	diags := result.Diagnostics()
	err = diagfmt.Write(cmd.OutOrStdout(), diags, result.FileSet, diagfmt.WriteOpts{
		Format: format,
		Pretty: diagfmt.PrettyOpts{Color: color, PathMode: pathMode, ShowNotes: f.withNotes},
		JSON:   diagfmt.JSONOpts{IncludePositions: true, PathMode: pathMode, IncludeNotes: f.withNotes},
		Sarif: diagfmt.SarifRunMeta{
			ToolName:       "linelimit",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		},
	})
	if err != nil {
		return fmt.Errorf("failed to format diagnostics: %w", err)
	}

	if format == diagfmt.FormatPretty && len(diags) > 0 {
		errs, warns := severityCounts(diags)
		fmt.Fprintf(cmd.ErrOrStderr(), "%d warning(s), %d error(s) in %d file(s)\n", warns, errs, len(result.Files))
	}
	if f.timings && result.Timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), result.Timer.Summary())
	}
	if f.cache {
		printCacheStats(cmd, result)
	}

	if code := exitCode(result, f.warningsAsErrors); code != 0 {
		return &exitError{code: code}
	}
	return nil
}

func exitCode(result *driver.Result, warningsAsErrors bool) int {
	if result.HasErrors() {
		return 1
	}
	if warningsAsErrors && result.HasWarnings() {
		return 1
	}
	return 0
}

func printCacheStats(cmd *cobra.Command, result *driver.Result) {
	hits := 0
	for _, fr := range result.Files {
		if fr.Cached {
			hits++
		}
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "cache: %d/%d files reused\n", hits, len(result.Files))
}

type checkOutcome struct {
	result *driver.Result
	err    error
}

func runCheckWithUI(ctx context.Context, target string, opts driver.Options) (*driver.Result, error) {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = frontend.KnownExtensions()
	}
	files, err := driver.ListFiles(target, exts, opts.Exclude)
	if err != nil {
		return nil, err
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)
	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.Check(ctx, target, opts)
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("checking", files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// UI мог выйти раньше: не даём воркерам блокироваться на канале
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stderr)
	}
}

func severityCounts(diags []*diag.Diagnostic) (errs, warns int) {
	for _, d := range diags {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	return errs, warns
}
