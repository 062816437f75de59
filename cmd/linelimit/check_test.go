package main

import (
	"strings"
	"testing"

	"linelimit/internal/diag"
	"linelimit/internal/driver"
	"linelimit/internal/rules"
	"linelimit/internal/source"
)

func TestApplyManifestRespectsExplicitFlags(t *testing.T) {
	if err := checkCmd.Flags().Set("format", "json"); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = checkCmd.Flags().Set("format", "pretty")
		checkCmd.Flags().Lookup("format").Changed = false
	})

	m := &projectManifest{
		Root: "/repo",
		Config: projectConfig{
			Rules:  rulesConfig{Enabled: []string{"CR9001", "VCR9000"}},
			Files:  filesConfig{Exclude: []string{"obj"}, Additional: []string{"stylecop.json"}},
			Output: outputConfig{Format: "short", WarningsAsErrors: true, MaxDiagnostics: 5},
		},
	}
	f := checkFlags{rules: rules.DefaultRuleID, format: "json"}
	f.applyManifest(checkCmd, m)

	if f.rules != "CR9001,VCR9000" {
		t.Errorf("rules = %q", f.rules)
	}
	if f.format != "json" {
		t.Errorf("explicit --format overridden: %q", f.format)
	}
	if !f.warningsAsErrors {
		t.Error("warnings_as_errors not applied")
	}
	if f.maxDiagnostics != 5 {
		t.Errorf("maxDiagnostics = %d", f.maxDiagnostics)
	}
	if len(f.exclude) != 1 || f.exclude[0] != "obj" {
		t.Errorf("exclude = %v", f.exclude)
	}
	if len(f.additional) != 1 || !strings.HasSuffix(f.additional[0], "stylecop.json") {
		t.Errorf("additional = %v", f.additional)
	}
}

func TestExitCode(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.cs", []byte("x\n"))
	withSeverity := func(sev diag.Severity) *driver.Result {
		bag := diag.NewBag(0)
		bag.Add(diag.New(sev, diag.LineTooLong, source.Span{File: id}, "m"))
		return &driver.Result{FileSet: fs, Files: []driver.FileResult{{Path: "a.cs", Bag: bag}}}
	}
	clean := &driver.Result{FileSet: fs, Files: []driver.FileResult{{Path: "a.cs", Bag: diag.NewBag(0)}}}

	tests := []struct {
		name             string
		result           *driver.Result
		warningsAsErrors bool
		want             int
	}{
		{"clean", clean, true, 0},
		{"warning", withSeverity(diag.SevWarning), false, 0},
		{"warning as error", withSeverity(diag.SevWarning), true, 1},
		{"error", withSeverity(diag.SevError), false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.result, tt.warningsAsErrors); got != tt.want {
				t.Fatalf("exitCode = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "ON": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("maybe"); err == nil {
		t.Error("expected error")
	}
}

func TestRenderRules(t *testing.T) {
	out := renderRules(rules.All(), false)
	for _, want := range []string{"CR9000", "CR9001", "VCR9000", "120 (fixed)", "AnonymousMethodExpression"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	// заголовок идёт первой строкой таблицы
	if h, r := strings.Index(out, "THRESHOLD"), strings.Index(out, "CR9000"); h < 0 || h > r {
		t.Errorf("header not above rows:\n%s", out)
	}
}
