package rules

import (
	"fmt"
	"strings"

	"linelimit/internal/diag"
	"linelimit/internal/settings"
	"linelimit/internal/syntax"
)

// ThresholdSource says where a policy takes its maximum line length from.
type ThresholdSource uint8

const (
	ThresholdSettings ThresholdSource = iota // resolved from stylecop.json
	ThresholdFixed                           // Policy.Fixed
)

func (s ThresholdSource) String() string {
	if s == ThresholdFixed {
		return "fixed"
	}
	return "settings"
}

const (
	Title    = "Line length is too long"
	Category = "Syntax"
)

// Policy parameterises the shared scan loop.
type Policy struct {
	Code   diag.Code
	Source ThresholdSource
	// Fixed is the stored threshold for ThresholdFixed policies.
	Fixed int
	// ReportOffset is added to the threshold in the message.
	ReportOffset int
	// Gated policies stay silent until a line whose node is a namespace
	// declaration has been seen.
	Gated  bool
	Exempt syntax.KindSet
}

// ID returns the diagnostic identifier, e.g. "CR9000".
func (p Policy) ID() string {
	return p.Code.ID()
}

// NeedsSettings reports whether the policy reads stylecop.json.
func (p Policy) NeedsSettings() bool {
	return p.Source == ThresholdSettings
}

// Threshold returns the effective maximum and whether the rule is enabled.
func (p Policy) Threshold(cfg settings.Config) (int, bool) {
	n := p.Fixed
	if p.Source == ThresholdSettings {
		n = cfg.MaximumLineLength
	}
	return n, n > 0
}

// Message formats the diagnostic text for threshold.
func (p Policy) Message(threshold int) string {
	return fmt.Sprintf("Exceeds maximum line length of %d characters.", threshold+p.ReportOffset)
}

var registry = []Policy{
	{
		Code:   diag.LineTooLong,
		Source: ThresholdSettings,
		Gated:  true,
		Exempt: DeclarationExemptions,
	},
	{
		// 119 is stored and 120 reported; the message is what users see.
		Code:         diag.LineTooLongDefault,
		Source:       ThresholdFixed,
		Fixed:        119,
		ReportOffset: 1,
		Exempt:       DeclarationExemptions,
	},
	{
		Code:   diag.LineTooLongAnonymousOK,
		Source: ThresholdSettings,
		Exempt: DeclarationExemptions.With(syntax.KindAnonymousMethod),
	},
}

// DefaultRuleID is enabled when nothing else is configured.
const DefaultRuleID = "CR9000"

// All returns the registered policies in ID order.
func All() []Policy {
	out := make([]Policy, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds a policy by its identifier (case-insensitive).
func Lookup(id string) (Policy, bool) {
	for _, p := range registry {
		if strings.EqualFold(p.ID(), strings.TrimSpace(id)) {
			return p, true
		}
	}
	return Policy{}, false
}

// ParseList resolves a comma separated list of identifiers. Duplicates are
// dropped, order is kept.
func ParseList(list string) ([]Policy, error) {
	var out []Policy
	seen := make(map[diag.Code]bool)
	for _, id := range strings.Split(list, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		p, ok := Lookup(id)
		if !ok {
			return nil, fmt.Errorf("unknown rule %q", id)
		}
		if seen[p.Code] {
			continue
		}
		seen[p.Code] = true
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no rules selected")
	}
	return out, nil
}
