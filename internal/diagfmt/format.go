package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"linelimit/internal/diag"
	"linelimit/internal/source"
)

// Format selects an output renderer.
type Format uint8

const (
	FormatPretty Format = iota
	FormatShort
	FormatJSON
	FormatSarif
)

var formatNames = map[string]Format{
	"pretty": FormatPretty,
	"short":  FormatShort,
	"json":   FormatJSON,
	"sarif":  FormatSarif,
}

// ParseFormat resolves a --format value.
func ParseFormat(s string) (Format, error) {
	if f, ok := formatNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return FormatPretty, fmt.Errorf("unknown format %q (want pretty, short, json or sarif)", s)
}

func (f Format) String() string {
	for name, v := range formatNames {
		if v == f {
			return name
		}
	}
	return "pretty"
}

// WriteOpts bundles the options of every renderer.
type WriteOpts struct {
	Format Format
	Pretty PrettyOpts
	JSON   JSONOpts
	Sarif  SarifRunMeta
}

// Write renders diags with the selected format.
func Write(w io.Writer, diags []*diag.Diagnostic, fs *source.FileSet, opts WriteOpts) error {
	switch opts.Format {
	case FormatShort:
		return Short(w, diags, fs, opts.Pretty.ShowNotes)
	case FormatJSON:
		return JSON(w, diags, fs, opts.JSON)
	case FormatSarif:
		return Sarif(w, diags, fs, opts.Sarif)
	default:
		Pretty(w, diags, fs, opts.Pretty)
		return nil
	}
}
