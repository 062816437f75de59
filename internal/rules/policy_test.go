package rules

import (
	"testing"

	"linelimit/internal/settings"
	"linelimit/internal/syntax"
)

func TestLookup(t *testing.T) {
	for _, id := range []string{"CR9000", "cr9001", " VCR9000 "} {
		if _, ok := Lookup(id); !ok {
			t.Fatalf("Lookup(%q) failed", id)
		}
	}
	if _, ok := Lookup("CR9002"); ok {
		t.Fatal("unexpected rule CR9002")
	}
}

func TestParseList(t *testing.T) {
	ps, err := ParseList("VCR9000, cr9000,VCR9000,")
	if err != nil {
		t.Fatalf("ParseList: %v", err)
	}
	if len(ps) != 2 || ps[0].ID() != "VCR9000" || ps[1].ID() != "CR9000" {
		t.Fatalf("got %v", ps)
	}
	if _, err := ParseList("CR9000,BOGUS"); err == nil {
		t.Fatal("expected error for unknown rule")
	}
	if _, err := ParseList(" , "); err == nil {
		t.Fatal("expected error for empty list")
	}
}

func TestAllIsACopy(t *testing.T) {
	all := All()
	if len(all) != 3 {
		t.Fatalf("got %d rules", len(all))
	}
	all[0].Fixed = 1
	if p, _ := Lookup(all[0].ID()); p.Fixed == 1 {
		t.Fatal("All exposes the registry")
	}
}

func TestThreshold(t *testing.T) {
	cfg := settings.Config{MaximumLineLength: 80}
	if n, ok := mustLookup(t, "CR9000").Threshold(cfg); !ok || n != 80 {
		t.Fatalf("CR9000 threshold = %d, %v", n, ok)
	}
	if n, ok := mustLookup(t, "CR9001").Threshold(cfg); !ok || n != 119 {
		t.Fatalf("CR9001 threshold = %d, %v", n, ok)
	}
	if _, ok := mustLookup(t, "VCR9000").Threshold(settings.Config{}); ok {
		t.Fatal("VCR9000 must be disabled without settings")
	}
}

func TestClassify(t *testing.T) {
	unit := fixture(
		ln(syntax.KindAnonymousMethod, "delegate { }"),
		ln(syntax.KindStatement, "x();"),
	)
	lines := unit.File.Lines()
	v, node := Classify(unit.Tree, lines[0].Span(unit.File.ID), DeclarationExemptions)
	if v != Reportable || node.Kind != syntax.KindAnonymousMethod {
		t.Fatalf("got %s/%s", v, node.Kind)
	}
	v, _ = Classify(unit.Tree, lines[0].Span(unit.File.ID), DeclarationExemptions.With(syntax.KindAnonymousMethod))
	if v != Exempt {
		t.Fatalf("got %s, want exempt", v)
	}
}
