package gofront

import (
	"context"
	"strings"
	"testing"

	"linelimit/internal/diag"
	"linelimit/internal/source"
	"linelimit/internal/syntax"
	"linelimit/internal/testkit"
)

const goSample = `// Package demo is a fixture.
package demo

import (
	"fmt"
	"strings"
)

// Color is an enum.
type Color int

const (
	Red Color = iota
	Green
)

const answer = 42

/* Point is documented with a block comment. */
type Point struct {
	X int // trailing
	Y int
}

func (p Point) String() string {
	return fmt.Sprint(p.X, strings.Repeat("y", p.Y))
}

var sorter = func(a, b int) bool {
	return a < b
}
`

func parseSample(t *testing.T, content string) (*source.File, *syntax.Index, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("demo.go", []byte(content))
	file := fs.Get(id)
	bag := diag.NewBag(0)
	ix, err := Parse(context.Background(), file, diag.BagReporter{Bag: bag})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return file, ix, bag
}

func kindOfLine(file *source.File, ix *syntax.Index, prefix string) syntax.Kind {
	for _, l := range file.Lines() {
		if strings.HasPrefix(strings.TrimSpace(l.Text()), prefix) {
			return ix.NodeAt(l.Span(file.ID)).Kind
		}
	}
	return syntax.KindUnknown
}

func TestGoMapping(t *testing.T) {
	file, ix, bag := parseSample(t, goSample)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", bag.Len())
	}
	if err := testkit.CheckIndexInvariants(ix, file); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		line string
		want syntax.Kind
	}{
		{"// Package demo", syntax.KindSingleLineDocComment},
		{"package demo", syntax.KindNamespaceDeclaration},
		{"import (", syntax.KindUsingDirective},
		{`"fmt"`, syntax.KindUsingDirective},
		{"// Color is", syntax.KindSingleLineDocComment},
		{"type Color int", syntax.KindClassDeclaration},
		{"Red Color = iota", syntax.KindEnumMemberDeclaration},
		{"Green", syntax.KindEnumMemberDeclaration},
		{"const answer", syntax.KindMemberDeclaration},
		{"/* Point", syntax.KindMultiLineDocComment},
		{"type Point struct {", syntax.KindClassDeclaration},
		{"X int // trailing", syntax.KindMemberDeclaration},
		{"func (p Point) String()", syntax.KindMemberDeclaration},
		{"return fmt.Sprint", syntax.KindStatement},
		{"return a < b", syntax.KindStatement},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := kindOfLine(file, ix, tt.line); got != tt.want {
				t.Fatalf("line %q: got %s, want %s", tt.line, got, tt.want)
			}
		})
	}
}

func TestFuncLitOnOwnLine(t *testing.T) {
	src := "package p\n\nvar fs = []func(){\n\tfunc() { println() }}\n"
	file, ix, _ := parseSample(t, src)
	// строка содержит ещё и закрывающую скобку литерала среза
	if got := kindOfLine(file, ix, "func() { println() }}"); got == syntax.KindAnonymousMethod {
		t.Fatalf("line with trailing composite brace classified as %s", got)
	}

	src = "package p\n\nvar h = []func(){\n\tfunc() {\n\t\tprintln()\n\t},\n}\n"
	file, ix, _ = parseSample(t, src)
	if got := kindOfLine(file, ix, "func() {"); got != syntax.KindAnonymousMethod {
		t.Fatalf("func literal header: got %s, want AnonymousMethodExpression", got)
	}
}

func TestParseErrorsAreReported(t *testing.T) {
	src := "package broken\n\nfunc f( {\n"
	_, ix, bag := parseSample(t, src)
	if ix == nil {
		t.Fatal("expected a partial index")
	}
	if bag.Len() == 0 {
		t.Fatal("expected syntax diagnostics")
	}
	for _, d := range bag.Items() {
		if d.Code != diag.SynParseError {
			t.Fatalf("code = %s", d.Code.ID())
		}
	}
}

func TestParseCancelled(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("x.go", []byte("package x\n"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Parse(ctx, fs.Get(id), diag.NopReporter{}); err == nil {
		t.Fatal("expected error")
	}
}
