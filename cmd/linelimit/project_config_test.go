package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadProjectManifestDiscovers(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, projectConfigName), `
[rules]
enabled = ["CR9000", "VCR9000"]

[files]
extensions = [".cs"]
exclude = ["bin", "obj"]
additional = ["config/stylecop.json"]

[output]
format = "short"
warnings_as_errors = true
max_diagnostics = 50
`)
	sub := filepath.Join(root, "src", "app")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	m, err := loadProjectManifest("", sub)
	if err != nil {
		t.Fatal(err)
	}
	if m == nil {
		t.Fatal("manifest not found")
	}
	if got := strings.Join(m.Config.Rules.Enabled, ","); got != "CR9000,VCR9000" {
		t.Fatalf("rules = %s", got)
	}
	if m.Config.Output.Format != "short" || !m.Config.Output.WarningsAsErrors || m.Config.Output.MaxDiagnostics != 50 {
		t.Fatalf("output = %+v", m.Config.Output)
	}
	extra := m.additionalFiles()
	want := filepath.Join(root, "config", "stylecop.json")
	if len(extra) != 1 || extra[0] != want {
		t.Fatalf("additional = %v, want [%s]", extra, want)
	}
}

func TestLoadProjectManifestMissing(t *testing.T) {
	m, err := loadProjectManifest("", t.TempDir())
	if err != nil || m != nil {
		t.Fatalf("got %v, %v; want nil, nil", m, err)
	}
}

func TestLoadProjectConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"syntax", "[rules\n", "failed to parse TOML"},
		{"unknown key", "[rules]\nthreshold = 80\n", "unknown keys: rules.threshold"},
		{"empty format", "[output]\nformat = \"\"\n", "empty [output].format"},
		{"bad extension", "[files]\nextensions = [\"cs\"]\n", "must start with '.'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), projectConfigName)
			writeFile(t, path, tt.content)
			_, err := loadProjectConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
