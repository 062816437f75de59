package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"linelimit/internal/diag"
	"linelimit/internal/source"
)

type palette struct {
	err, warn, info, note, code, path, gutter, mark *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgCyan),
		code:   color.New(color.Bold),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		mark:   color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.path, p.gutter, p.mark} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Ожидает уже отсортированный список. Для каждой диагностики печатает
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строку исходника с подчёркиванием ^~~~ по Span и, если надо, Notes.
func Pretty(w io.Writer, diags []*diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range diags {
		if i > 0 {
			fmt.Fprintln(w)
		}
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			p.path.Sprint(displayPath(fs, d.Primary.File, opts.PathMode)),
			start.Line, start.Col,
			p.severity(d.Severity).Sprint(d.Severity.String()),
			p.code.Sprint(d.Code.ID()),
			d.Message,
		)
		writeSnippet(w, fs, d.Primary, p, opts.Width)

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n",
				p.note.Sprint("note:"),
				displayPath(fs, n.Span.File, opts.PathMode),
				ns.Line, ns.Col, n.Msg)
		}
	}
}

// writeSnippet печатает первую строку span'а и маркер под ним.
func writeSnippet(w io.Writer, fs *source.FileSet, span source.Span, p palette, width uint16) {
	f := fs.Get(span.File)
	if f == nil || len(f.Content) == 0 {
		return
	}
	start, end := fs.Resolve(span)
	text := strings.TrimRight(f.GetLine(start.Line), "\r")
	text = strings.ReplaceAll(text, "\t", " ")

	lineLen, err := safecast.Conv[uint32](len(text))
	if err != nil {
		return
	}
	from := min(start.Col-1, lineLen)
	to := lineLen
	if end.Line == start.Line {
		to = min(max(end.Col-1, from), lineLen)
	}

	pad := runewidth.StringWidth(text[:from])
	markWidth := max(runewidth.StringWidth(text[from:to]), 1)

	if width > 0 && runewidth.StringWidth(text) > int(width) {
		text = runewidth.Truncate(text, int(width), "…")
		pad = min(pad, int(width))
		markWidth = max(min(markWidth, int(width)-pad), 1)
	}

	num := strconv.FormatUint(uint64(start.Line), 10)
	blank := strings.Repeat(" ", len(num))
	fmt.Fprintf(w, " %s %s %s\n", p.gutter.Sprint(num), p.gutter.Sprint("|"), text)
	fmt.Fprintf(w, " %s %s %s%s\n", blank, p.gutter.Sprint("|"),
		strings.Repeat(" ", pad),
		p.mark.Sprint("^"+strings.Repeat("~", markWidth-1)))
}
