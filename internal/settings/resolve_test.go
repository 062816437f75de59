package settings

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestIsSettingsFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"stylecop.json", true},
		{"StyleCop.JSON", true},
		{"/repo/src/stylecop.json", true},
		{`C:\repo\StyleCop.Json`, true},
		{"stylecop.json.bak", false},
		{"my-stylecop.json", false},
		{"/repo/stylecop.json/other.json", false},
	}
	for _, tt := range tests {
		got, err := IsSettingsFile(tt.path)
		if err != nil {
			t.Fatalf("IsSettingsFile(%q): %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("IsSettingsFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIsSettingsFileEmptyPath(t *testing.T) {
	_, err := IsSettingsFile("")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		json string
		want int
	}{
		{"documented layout", `{"settings":{"readabilityRules":{"maximumLineLength":80}}}`, 80},
		{"extra members ignored", `{"$schema":"x","settings":{"indentation":{},"readabilityRules":{"allowBuiltInTypeAliases":true,"maximumLineLength":120}}}`, 120},
		{"zero disables", `{"settings":{"readabilityRules":{"maximumLineLength":0}}}`, 0},
		{"negative disables", `{"settings":{"readabilityRules":{"maximumLineLength":-5}}}`, 0},
		{"missing settings", `{}`, 0},
		{"missing readabilityRules", `{"settings":{}}`, 0},
		{"missing maximumLineLength", `{"settings":{"readabilityRules":{}}}`, 0},
		{"null link", `{"settings":null}`, 0},
		{"string value", `{"settings":{"readabilityRules":{"maximumLineLength":"80"}}}`, 0},
		{"fractional value", `{"settings":{"readabilityRules":{"maximumLineLength":80.5}}}`, 0},
		{"settings is an array", `{"settings":[1,2]}`, 0},
		{"different key case is not an alias", `{"Settings":{"ReadabilityRules":{"MaximumLineLength":80}}}`, 0},
		{"malformed json", `{"settings":`, 0},
		{"empty text", ``, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Parse(tt.json)
			got := cfg.MaximumLineLength
			if got < 0 {
				got = 0
			}
			if got != tt.want {
				t.Errorf("Parse() threshold = %d, want %d", cfg.MaximumLineLength, tt.want)
			}
			if cfg.Enabled() != (tt.want > 0) {
				t.Errorf("Enabled() = %v", cfg.Enabled())
			}
			if !cfg.Enabled() && cfg.Reason == "" {
				t.Error("disabled config without a reason")
			}
		})
	}
}

func TestResolvePicksFirstMatch(t *testing.T) {
	candidates := []AdditionalText{
		StaticText{FilePath: "/repo/README.md", Content: "not json"},
		StaticText{FilePath: "/repo/StyleCop.json", Content: `{"settings":{"readabilityRules":{"maximumLineLength":100}}}`},
		StaticText{FilePath: "/repo/sub/stylecop.json", Content: `{"settings":{"readabilityRules":{"maximumLineLength":60}}}`},
	}
	cfg, err := Resolve(context.Background(), candidates)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.MaximumLineLength != 100 || cfg.Source != "/repo/StyleCop.json" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestResolveFirstMatchMalformedDoesNotFallThrough(t *testing.T) {
	candidates := []AdditionalText{
		StaticText{FilePath: "stylecop.json", Content: `{broken`},
		StaticText{FilePath: "other/stylecop.json", Content: `{"settings":{"readabilityRules":{"maximumLineLength":60}}}`},
	}
	cfg, err := Resolve(context.Background(), candidates)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Enabled() {
		t.Fatalf("expected disabled config, got %+v", cfg)
	}
}

func TestResolveNoCandidates(t *testing.T) {
	cfg, err := Resolve(context.Background(), nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Enabled() {
		t.Fatalf("expected disabled config, got %+v", cfg)
	}
}

func TestResolveEmptyPath(t *testing.T) {
	_, err := Resolve(context.Background(), []AdditionalText{StaticText{}})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestResolveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Resolve(ctx, []AdditionalText{StaticText{FilePath: "stylecop.json", Content: "{}"}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestResolveFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stylecop.json")
	if err := os.WriteFile(path, []byte(`{"settings":{"readabilityRules":{"maximumLineLength":80}}}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Resolve(context.Background(), []AdditionalText{NewFileText(path)})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.MaximumLineLength != 80 {
		t.Fatalf("want 80, got %d", cfg.MaximumLineLength)
	}

	// содержимое перечитывается при каждом вызове
	if err := os.WriteFile(path, []byte(`{"settings":{"readabilityRules":{"maximumLineLength":90}}}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err = Resolve(context.Background(), []AdditionalText{NewFileText(path)})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.MaximumLineLength != 90 {
		t.Fatalf("want 90 after rewrite, got %d", cfg.MaximumLineLength)
	}
}

func TestResolveUnreadableFileDisables(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "stylecop.json")
	cfg, err := Resolve(context.Background(), []AdditionalText{NewFileText(missing)})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Enabled() || cfg.Source != missing {
		t.Fatalf("unexpected config %+v", cfg)
	}
}
