package diagfmt

import (
	"io"

	"linelimit/internal/diag"
	"linelimit/internal/source"
)

// Short пишет по одной строке на диагностику:
// "<sev> <CODE> <path>:<line>:<col> <message>".
func Short(w io.Writer, diags []*diag.Diagnostic, fs *source.FileSet, includeNotes bool) error {
	out := diag.FormatShortDiagnostics(diags, fs, includeNotes)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}
