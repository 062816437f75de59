package settings

import (
	"context"
	"os"
)

// AdditionalText is a candidate file supplied alongside the sources.
// Text is read lazily and may be called once per analysed tree.
type AdditionalText interface {
	Path() string
	Text(ctx context.Context) (string, error)
}

// FileText reads its content from disk on every call.
type FileText struct {
	path string
}

// NewFileText returns an AdditionalText backed by the file at path.
func NewFileText(path string) FileText {
	return FileText{path: path}
}

func (f FileText) Path() string { return f.path }

func (f FileText) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// StaticText is an in-memory AdditionalText.
type StaticText struct {
	FilePath string
	Content  string
}

func (s StaticText) Path() string { return s.FilePath }

func (s StaticText) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.Content, nil
}
