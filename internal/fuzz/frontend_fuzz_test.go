package fuzztests

import (
	"context"
	"testing"
	"time"

	"linelimit/internal/diag"
	"linelimit/internal/frontend/csfront"
	"linelimit/internal/frontend/gofront"
	"linelimit/internal/rules"
	"linelimit/internal/settings"
	"linelimit/internal/source"
	"linelimit/internal/syntax"
	"linelimit/internal/testkit"
)

// parseTimeout is the maximum time allowed for one input.
const parseTimeout = 5 * time.Second

type parseFunc func(ctx context.Context, file *source.File, r diag.Reporter) (*syntax.Index, error)

func checkInput(t *testing.T, name string, input []byte, parse parseFunc) {
	t.Helper()

	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, input))
	bag := diag.NewBag(0)

	ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
	defer cancel()

	done := make(chan struct{})
	var (
		ix  *syntax.Index
		err error
	)
	go func() {
		defer close(done)
		ix, err = parse(ctx, file, diag.BagReporter{Bag: bag})
	}()
	select {
	case <-done:
	case <-ctx.Done():
		t.Fatalf("parse hung on %q", clamp(input[:min(len(input), 200)]))
	}
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if err := testkit.CheckIndexInvariants(ix, file); err != nil {
		t.Fatal(err)
	}

	lines := file.Lines()
	for _, line := range lines {
		n := ix.NodeAt(line.Span(file.ID))
		if n.Span.File != file.ID || n.Span.Start > line.End || n.Span.End < line.Start {
			t.Fatalf("line %d: node %+v does not overlap [%d,%d)", line.Number, n, line.Start, line.End)
		}
	}

	p, _ := rules.Lookup("CR9001")
	scanBag := diag.NewBag(0)
	unit := rules.Unit{File: file, Tree: ix}
	if err := rules.Scan(context.Background(), unit, settings.Config{}, p, diag.BagReporter{Bag: scanBag}); err != nil {
		t.Fatalf("scan: %v", err)
	}
	for _, d := range scanBag.Items() {
		start, _ := fs.Resolve(d.Primary)
		if l := lines[start.Line-1]; l.Len() <= 119 {
			t.Fatalf("line %d has %d characters but was reported", l.Number, l.Len())
		}
	}
}

func FuzzCSharpFrontend(f *testing.F) {
	addSeeds(f, csharpSeeds)
	f.Fuzz(func(t *testing.T, input []byte) {
		checkInput(t, "fuzz.cs", clamp(input), csfront.Parse)
	})
}

func FuzzGoFrontend(f *testing.F) {
	addSeeds(f, goSeeds)
	f.Fuzz(func(t *testing.T, input []byte) {
		checkInput(t, "fuzz.go", clamp(input), gofront.Parse)
	})
}
