package source

import "testing"

func TestSpanContains(t *testing.T) {
	tests := []struct {
		name  string
		outer Span
		inner Span
		want  bool
	}{
		{"same span", Span{File: 1, Start: 10, End: 20}, Span{File: 1, Start: 10, End: 20}, true},
		{"strictly inside", Span{File: 1, Start: 10, End: 20}, Span{File: 1, Start: 12, End: 18}, true},
		{"empty span at the edge", Span{File: 1, Start: 10, End: 20}, Span{File: 1, Start: 20, End: 20}, true},
		{"overlaps start", Span{File: 1, Start: 10, End: 20}, Span{File: 1, Start: 5, End: 15}, false},
		{"overlaps end", Span{File: 1, Start: 10, End: 20}, Span{File: 1, Start: 15, End: 25}, false},
		{"other file", Span{File: 1, Start: 10, End: 20}, Span{File: 2, Start: 12, End: 18}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.outer.Contains(tt.inner); got != tt.want {
				t.Errorf("Contains() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 15}
	if got := a.Cover(b); got != (Span{File: 1, Start: 5, End: 20}) {
		t.Errorf("Cover() = %v", got)
	}
	// разные файлы: span не меняется
	c := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(c); got != a {
		t.Errorf("Cover() across files = %v", got)
	}
}

func TestSpanLenEmpty(t *testing.T) {
	s := Span{Start: 3, End: 3}
	if !s.Empty() || s.Len() != 0 {
		t.Errorf("expected empty span, got %v", s)
	}
	if s.String() != "0:3-3" {
		t.Errorf("String() = %q", s.String())
	}
}
