// Package frontend picks the parser for a source file by its extension.
package frontend

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"linelimit/internal/diag"
	"linelimit/internal/frontend/csfront"
	"linelimit/internal/frontend/gofront"
	"linelimit/internal/source"
	"linelimit/internal/syntax"
)

// ParseFunc parses one file into a syntax index.
type ParseFunc func(ctx context.Context, file *source.File, r diag.Reporter) (*syntax.Index, error)

// Frontend describes a supported language.
type Frontend struct {
	Name       string
	Extensions []string
	Parse      ParseFunc
}

var frontends = []Frontend{
	{Name: "csharp", Extensions: csfront.Extensions, Parse: csfront.Parse},
	{Name: "go", Extensions: gofront.Extensions, Parse: gofront.Parse},
}

// All returns the registered front-ends.
func All() []Frontend {
	return slices.Clone(frontends)
}

// For returns the front-end handling path, matched by extension
// case-insensitively.
func For(path string) (Frontend, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return Frontend{}, false
	}
	for _, f := range frontends {
		if slices.Contains(f.Extensions, ext) {
			return f, true
		}
	}
	return Frontend{}, false
}

// KnownExtensions lists every extension some front-end handles.
func KnownExtensions() []string {
	var out []string
	for _, f := range frontends {
		out = append(out, f.Extensions...)
	}
	slices.Sort(out)
	return out
}
