package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/text/cases"
)

// FileName is the settings file the resolver looks for.
const FileName = "stylecop.json"

// ErrInvalidArgument is returned when a candidate has no path.
var ErrInvalidArgument = errors.New("invalid argument")

// Config is the resolved rule configuration for one analysis pass.
type Config struct {
	MaximumLineLength int
	Source            string // path of the settings file, empty if none matched
	Reason            string // why the rule is disabled, for tracing
}

// Enabled reports whether the threshold is usable.
func (c Config) Enabled() bool {
	return c.MaximumLineLength > 0
}

// IsSettingsFile reports whether the final component of path is FileName,
// ignoring case. Both '/' and '\' separate components.
func IsSettingsFile(path string) (bool, error) {
	if path == "" {
		return false, fmt.Errorf("%w: candidate path is empty", ErrInvalidArgument)
	}
	name := path
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	// cases.Caser is stateful, so one per call
	fold := cases.Fold()
	return fold.String(name) == fold.String(FileName), nil
}

// Resolve scans candidates in order and decodes the first settings file.
func Resolve(ctx context.Context, candidates []AdditionalText) (Config, error) {
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return Config{}, err
		}
		if c == nil {
			return Config{}, fmt.Errorf("%w: nil candidate", ErrInvalidArgument)
		}
		ok, err := IsSettingsFile(c.Path())
		if err != nil {
			return Config{}, err
		}
		if !ok {
			continue
		}

		text, err := c.Text(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Config{}, ctxErr
			}
			return Config{Source: c.Path(), Reason: "unreadable: " + err.Error()}, nil
		}
		cfg := Parse(text)
		cfg.Source = c.Path()
		return cfg, nil
	}
	return Config{Reason: "no " + FileName + " among additional files"}, nil
}

// Parse decodes a settings payload. Keys are matched exactly.
func Parse(text string) Config {
	settings, ok := object([]byte(text), "settings")
	if !ok {
		return Config{Reason: "missing settings"}
	}
	rules, ok := object(settings, "readabilityRules")
	if !ok {
		return Config{Reason: "missing settings.readabilityRules"}
	}
	raw, ok := object(rules, "maximumLineLength")
	if !ok {
		return Config{Reason: "missing settings.readabilityRules.maximumLineLength"}
	}

	n, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return Config{Reason: "maximumLineLength is not an integer"}
	}
	cfg := Config{MaximumLineLength: n}
	if n <= 0 {
		cfg.Reason = "maximumLineLength is not positive"
	}
	return cfg
}

// object extracts member key from the JSON object in data.
func object(data []byte, key string) (json.RawMessage, bool) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, false
	}
	raw, ok := members[key]
	if !ok || string(raw) == "null" {
		return nil, false
	}
	return raw, true
}
