package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"linelimit/internal/diag"
	"linelimit/internal/source"
)

func sample(t *testing.T) (*source.FileSet, []*diag.Diagnostic) {
	t.Helper()
	fs := source.NewFileSetWithBase("/home/user/project")
	content := []byte("namespace N {\n    int x = 1; // a fairly long line\n}\n")
	id := fs.AddVirtual("/home/user/project/src/Program.cs", content)
	line := fs.Get(id).Lines()[1]
	d := diag.New(diag.SevWarning, diag.LineTooLong, line.Span(id),
		"Exceeds maximum line length of 20 characters.")
	return fs, []*diag.Diagnostic{d}
}

func TestPrettyPathModes(t *testing.T) {
	fs, diags := sample(t)

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/src/Program.cs:2:1:"},
		{"relative", PathModeRelative, "src/Program.cs:2:1:"},
		{"basename", PathModeBasename, "Program.cs:2:1:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, diags, fs, PrettyOpts{PathMode: tt.mode})
			out := buf.String()
			if !strings.Contains(out, tt.contains) {
				t.Fatalf("expected %q in:\n%s", tt.contains, out)
			}
			if !strings.Contains(out, "WARNING CR9000: Exceeds maximum line length of 20 characters.") {
				t.Fatalf("header missing:\n%s", out)
			}
		})
	}
}

func TestPrettySnippet(t *testing.T) {
	fs, diags := sample(t)
	var buf bytes.Buffer
	Pretty(&buf, diags, fs, PrettyOpts{})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("want 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	if lines[1] != " 2 |     int x = 1; // a fairly long line" {
		t.Fatalf("source line = %q", lines[1])
	}
	want := " " + " " + " | " + "^" + strings.Repeat("~", len("    int x = 1; // a fairly long line")-1)
	if lines[2] != want {
		t.Fatalf("marker = %q, want %q", lines[2], want)
	}
}

func TestPrettyWidth(t *testing.T) {
	fs, diags := sample(t)
	var buf bytes.Buffer
	Pretty(&buf, diags, fs, PrettyOpts{Width: 10})
	if !strings.Contains(buf.String(), "…") {
		t.Fatalf("expected truncated snippet:\n%s", buf.String())
	}
}

func TestShort(t *testing.T) {
	fs, diags := sample(t)
	var buf bytes.Buffer
	if err := Short(&buf, diags, fs, false); err != nil {
		t.Fatal(err)
	}
	want := "warning CR9000 src/Program.cs:2:1 Exceeds maximum line length of 20 characters.\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}

	buf.Reset()
	if err := Short(&buf, nil, fs, false); err != nil || buf.Len() != 0 {
		t.Fatalf("empty input produced %q (%v)", buf.String(), err)
	}
}

func TestJSON(t *testing.T) {
	fs, diags := sample(t)
	var buf bytes.Buffer
	err := JSON(&buf, diags, fs, JSONOpts{IncludePositions: true, PathMode: PathModeRelative})
	if err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Code != "CR9000" || d.Severity != "WARNING" || d.Title != "Line length is too long" {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if d.Location.File != "src/Program.cs" || d.Location.StartLine != 2 || d.Location.StartByte != 14 {
		t.Fatalf("unexpected location %+v", d.Location)
	}
}

func TestJSONMax(t *testing.T) {
	fs, diags := sample(t)
	diags = append(diags, diags[0], diags[0])
	out := BuildDiagnosticsOutput(diags, fs, JSONOpts{Max: 2})
	if out.Count != 2 {
		t.Fatalf("count = %d, want 2", out.Count)
	}
}

func TestSarif(t *testing.T) {
	fs, diags := sample(t)
	var buf bytes.Buffer
	meta := SarifRunMeta{ToolName: "linelimit", ToolVersion: "0.1.0", InvocationArgs: []string{"check", "."}}
	if err := Sarif(&buf, diags, fs, meta); err != nil {
		t.Fatal(err)
	}
	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected log %+v", log)
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "linelimit" || len(run.Tool.Driver.Rules) != 1 {
		t.Fatalf("unexpected driver %+v", run.Tool.Driver)
	}
	r := run.Results[0]
	if r.RuleID != "CR9000" || r.Level != "warning" {
		t.Fatalf("unexpected result %+v", r)
	}
	if uri := r.Locations[0].PhysicalLocation.ArtifactLocation.URI; uri != "src/Program.cs" {
		t.Fatalf("uri = %q", uri)
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"pretty", "short", "JSON", " sarif "} {
		f, err := ParseFormat(name)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", name, err)
		}
		if f.String() != strings.ToLower(strings.TrimSpace(name)) {
			t.Fatalf("round trip %q -> %s", name, f)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
