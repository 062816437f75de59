package source

import "testing"

func TestLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []Line
		lens    []int
	}{
		{
			name:    "empty file has no lines",
			content: "",
		},
		{
			name:    "single line without terminator",
			content: "abc",
			want:    []Line{{Number: 1, Start: 0, End: 3}},
			lens:    []int{3},
		},
		{
			name:    "trailing newline does not open a line",
			content: "abc\nde\n",
			want:    []Line{{Number: 1, Start: 0, End: 3}, {Number: 2, Start: 4, End: 6}},
			lens:    []int{3, 2},
		},
		{
			name:    "blank lines are kept",
			content: "a\n\nb",
			want:    []Line{{Number: 1, Start: 0, End: 1}, {Number: 2, Start: 2, End: 2}, {Number: 3, Start: 3, End: 4}},
			lens:    []int{1, 0, 1},
		},
		{
			name:    "multi-byte characters count once",
			content: "αβγ\n",
			want:    []Line{{Number: 1, Start: 0, End: 6}},
			lens:    []int{3},
		},
		{
			name:    "CRLF terminator is not counted",
			content: "ab\r\ncd",
			want:    []Line{{Number: 1, Start: 0, End: 2}, {Number: 2, Start: 4, End: 6}},
			lens:    []int{2, 2},
		},
		{
			name:    "lone carriage return breaks the line",
			content: "ab\rcd\r",
			want:    []Line{{Number: 1, Start: 0, End: 2}, {Number: 2, Start: 3, End: 5}},
			lens:    []int{2, 2},
		},
		{
			name:    "carriage return before CRLF is its own break",
			content: "a\r\r\nb",
			want:    []Line{{Number: 1, Start: 0, End: 1}, {Number: 2, Start: 2, End: 2}, {Number: 3, Start: 4, End: 5}},
			lens:    []int{1, 0, 1},
		},
		{
			name:    "unicode line and paragraph separators",
			content: "ab\u2028cd\u2029e",
			want:    []Line{{Number: 1, Start: 0, End: 2}, {Number: 2, Start: 5, End: 7}, {Number: 3, Start: 10, End: 11}},
			lens:    []int{2, 2, 1},
		},
		{
			name:    "next line character",
			content: "ab\u0085cd",
			want:    []Line{{Number: 1, Start: 0, End: 2}, {Number: 2, Start: 4, End: 6}},
			lens:    []int{2, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := NewFileSet()
			id := fs.AddVirtual("a.cs", []byte(tt.content))
			got := fs.Get(id).Lines()
			if len(got) != len(tt.want) {
				t.Fatalf("want %d lines, got %d", len(tt.want), len(got))
			}
			for i := range got {
				if got[i].Number != tt.want[i].Number || got[i].Start != tt.want[i].Start || got[i].End != tt.want[i].End {
					t.Errorf("line %d: want %+v, got %+v", i, tt.want[i], got[i])
				}
				if got[i].Len() != tt.lens[i] {
					t.Errorf("line %d: want len %d, got %d", i, tt.lens[i], got[i].Len())
				}
			}
		})
	}
}

func TestLinesAreGapless(t *testing.T) {
	fs := NewFileSet()
	content := "namespace A\n{\n    class B { }\n}\n"
	id := fs.AddVirtual("a.cs", []byte(content))
	lines := fs.Get(id).Lines()

	// каждая следующая строка начинается сразу после '\n' предыдущей
	for i := 1; i < len(lines); i++ {
		if lines[i].Start != lines[i-1].End+1 {
			t.Fatalf("gap between line %d and %d", i, i+1)
		}
	}
	if last := lines[len(lines)-1]; int(last.End)+1 != len(content) {
		t.Fatalf("last line ends at %d, content length %d", last.End, len(content))
	}
}

func TestResolveAfterLoneCarriageReturn(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mac.cs", []byte("ab\rcd\u2028ef"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{3, LineCol{Line: 2, Col: 1}},
		{4, LineCol{Line: 2, Col: 2}},
		{8, LineCol{Line: 3, Col: 1}},
	}
	for _, tt := range tests {
		got, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if got != tt.want {
			t.Errorf("offset %d: got %+v, want %+v", tt.off, got, tt.want)
		}
	}
}

func TestLineBreakLen(t *testing.T) {
	tests := []struct {
		content string
		at      int
		want    int
	}{
		{"a\nb", 1, 1},
		{"a\r\nb", 1, 2},
		{"a\rb", 1, 1},
		{"a\u0085", 1, 2},
		{"a\u2028", 1, 3},
		{"a\u2029", 1, 3},
		{"é", 0, 0},
		{"a", 5, 0},
	}
	for _, tt := range tests {
		if got := LineBreakLen([]byte(tt.content), tt.at); got != tt.want {
			t.Errorf("LineBreakLen(%q, %d) = %d, want %d", tt.content, tt.at, got, tt.want)
		}
		if tt.want == 0 {
			continue
		}
		if got := LineBreakBefore([]byte(tt.content), tt.at+tt.want); got != tt.want {
			t.Errorf("LineBreakBefore(%q, %d) = %d, want %d", tt.content, tt.at+tt.want, got, tt.want)
		}
	}
}
