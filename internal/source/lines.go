package source

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"
)

// Line is one physical line of a file. Start and End are byte offsets;
// End excludes the line terminator.
type Line struct {
	Number uint32 // 1-based
	Start  uint32
	End    uint32
	text   []byte
}

// Span returns the line as a span of file id.
func (l Line) Span(id FileID) Span {
	return Span{File: id, Start: l.Start, End: l.End}
}

// Text returns the line content without its terminator.
func (l Line) Text() string {
	return string(l.text)
}

// Len returns the number of characters (code points) on the line.
// Invalid UTF-8 bytes count as one character each.
func (l Line) Len() int {
	return utf8.RuneCount(l.text)
}

// Lines decomposes the file into its ordered, gapless sequence of lines.
// An empty file has no lines; a trailing terminator does not open a new line.
func (f *File) Lines() []Line {
	if len(f.Content) == 0 {
		return nil
	}
	lenContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}

	out := make([]Line, 0, len(f.LineIdx)+1)
	var start uint32
	for _, last := range f.LineIdx {
		next := last + 1
		brk, err := safecast.Conv[uint32](LineBreakBefore(f.Content, int(next)))
		if err != nil {
			panic(fmt.Errorf("line break length overflow: %w", err))
		}
		out = append(out, f.makeLine(len(out), start, next-brk))
		start = next
	}
	if start < lenContent {
		out = append(out, f.makeLine(len(out), start, lenContent))
	}
	return out
}

func (f *File) makeLine(idx int, start, end uint32) Line {
	number, err := safecast.Conv[uint32](idx + 1)
	if err != nil {
		panic(fmt.Errorf("line number overflow: %w", err))
	}
	return Line{Number: number, Start: start, End: end, text: f.Content[start:end]}
}
