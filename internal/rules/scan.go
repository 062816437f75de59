package rules

import (
	"context"

	"linelimit/internal/diag"
	"linelimit/internal/settings"
	"linelimit/internal/source"
	"linelimit/internal/syntax"
)

// Unit is one parsed compilation unit.
type Unit struct {
	File *source.File
	Tree syntax.Tree
}

// Run resolves the configuration for one tree and scans it. Settings are read
// on every call; policies with a fixed threshold do not look at candidates.
func Run(ctx context.Context, unit Unit, candidates []settings.AdditionalText, p Policy, r diag.Reporter) (settings.Config, error) {
	var cfg settings.Config
	if p.NeedsSettings() {
		var err error
		cfg, err = settings.Resolve(ctx, candidates)
		if err != nil {
			return cfg, err
		}
	}
	return cfg, Scan(ctx, unit, cfg, p, r)
}

// scanState is owned by a single Scan call.
type scanState struct {
	policy    Policy
	threshold int
	started   bool
}

// Scan reports every reportable line of unit longer than the policy
// threshold, in line order. It returns the context error if cancelled;
// diagnostics reported before that stay valid.
func Scan(ctx context.Context, unit Unit, cfg settings.Config, p Policy, r diag.Reporter) error {
	threshold, enabled := p.Threshold(cfg)
	if !enabled {
		return nil
	}
	st := &scanState{policy: p, threshold: threshold, started: !p.Gated}

	for _, line := range unit.File.Lines() {
		if err := ctx.Err(); err != nil {
			return err
		}
		st.visit(unit, line, r)
	}
	return nil
}

func (st *scanState) visit(unit Unit, line source.Line, r diag.Reporter) {
	over := line.Len() > st.threshold
	if !over && st.started {
		return
	}

	span := line.Span(unit.File.ID)
	verdict, node := Classify(unit.Tree, span, st.policy.Exempt)

	// NotStarted -> Started, без обратного перехода
	if !st.started && node.Kind == syntax.KindNamespaceDeclaration {
		st.started = true
	}
	if !over || !st.started || verdict == Exempt {
		return
	}
	diag.ReportWarning(r, st.policy.Code, span, st.policy.Message(st.threshold)).Emit()
}
