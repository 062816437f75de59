package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const projectConfigName = "linelimit.toml"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Rules  rulesConfig  `toml:"rules"`
	Files  filesConfig  `toml:"files"`
	Output outputConfig `toml:"output"`
}

type rulesConfig struct {
	Enabled []string `toml:"enabled"`
}

type filesConfig struct {
	Extensions []string `toml:"extensions"`
	Exclude    []string `toml:"exclude"`
	Additional []string `toml:"additional"` // relative to the manifest
}

type outputConfig struct {
	Format           string `toml:"format"`
	FullPath         bool   `toml:"fullpath"`
	WarningsAsErrors bool   `toml:"warnings_as_errors"`
	MaxDiagnostics   int    `toml:"max_diagnostics"`
}

func findProjectConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, projectConfigName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadProjectManifest reads path, or the nearest linelimit.toml above
// startDir when path is empty. A missing file is not an error.
func loadProjectManifest(path, startDir string) (*projectManifest, error) {
	if path == "" {
		found, ok, err := findProjectConfig(startDir)
		if err != nil || !ok {
			return nil, err
		}
		path = found
	}
	cfg, err := loadProjectConfig(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &projectManifest{Path: abs, Root: filepath.Dir(abs), Config: cfg}, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return projectConfig{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("output", "format") && strings.TrimSpace(cfg.Output.Format) == "" {
		return projectConfig{}, fmt.Errorf("%s: empty [output].format", path)
	}
	for _, ext := range cfg.Files.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return projectConfig{}, fmt.Errorf("%s: extension %q must start with '.'", path, ext)
		}
	}
	return cfg, nil
}

// additionalFiles resolves [files].additional against the manifest root.
func (m *projectManifest) additionalFiles() []string {
	if m == nil {
		return nil
	}
	out := make([]string, 0, len(m.Config.Files.Additional))
	for _, p := range m.Config.Files.Additional {
		p = filepath.FromSlash(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(m.Root, p)
		}
		out = append(out, p)
	}
	return out
}
