// Package goanalysis exposes the line length rules as a go/analysis pass so
// they can run under go vet, gopls or any multichecker.
package goanalysis

import (
	"context"
	"fmt"
	"go/ast"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/analysis"

	"linelimit/internal/diag"
	"linelimit/internal/driver"
	"linelimit/internal/frontend/gofront"
	"linelimit/internal/rules"
	"linelimit/internal/settings"
	"linelimit/internal/source"
)

const doc = `report lines that exceed the configured maximum length

The threshold of CR9000 and VCR9000 comes from the nearest stylecop.json
(or the file named by -settings); CR9001 always uses 120 characters.
Import blocks, package clauses, type and const declarations and doc
comments are exempt.`

var (
	flagRules    string
	flagSettings string
)

// Analyzer reports lines exceeding the maximum length.
var Analyzer = &analysis.Analyzer{
	Name: "linelimit",
	Doc:  doc,
	Run:  run,
}

func init() {
	Analyzer.Flags.StringVar(&flagRules, "rules", rules.DefaultRuleID, "comma-separated rule IDs to run")
	Analyzer.Flags.StringVar(&flagSettings, "settings", "", "comma-separated settings files; default is the nearest stylecop.json")
}

func run(pass *analysis.Pass) (any, error) {
	policies, err := rules.ParseList(flagRules)
	if err != nil {
		return nil, err
	}

	fs := source.NewFileSet()
	for _, f := range pass.Files {
		if err := checkFile(pass, fs, f, policies); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func checkFile(pass *analysis.Pass, fs *source.FileSet, f *ast.File, policies []rules.Policy) error {
	tf := pass.Fset.File(f.FileStart)
	if tf == nil {
		return nil
	}
	name := tf.Name()
	// cgo и прочие сгенерированные имена без .go пропускаем
	if !strings.EqualFold(filepath.Ext(name), ".go") {
		return nil
	}
	content, err := pass.ReadFile(name)
	if err != nil {
		return fmt.Errorf("linelimit: %w", err)
	}
	if len(content) != tf.Size() {
		// файл изменился после парсинга
		return nil
	}

	file := fs.Get(fs.Add(name, content, 0))
	unit := rules.Unit{File: file, Tree: gofront.Index(tf, f, file)}
	candidates := candidatesFor(name)

	r := diag.FuncReporter(func(d *diag.Diagnostic) {
		pass.Report(analysis.Diagnostic{
			Pos:      tf.Pos(int(d.Primary.Start)),
			End:      tf.Pos(int(d.Primary.End)),
			Category: d.Code.ID(),
			Message:  d.Message,
		})
	})
	for _, p := range policies {
		if _, err := rules.Run(context.Background(), unit, candidates, p, r); err != nil {
			return fmt.Errorf("linelimit: %s: %w", p.ID(), err)
		}
	}
	return nil
}

func candidatesFor(name string) []settings.AdditionalText {
	if flagSettings != "" {
		return driver.Candidates(strings.Split(flagSettings, ",")...)
	}
	if path, ok := driver.NearestSettings(filepath.Dir(name)); ok {
		return driver.Candidates(path)
	}
	return nil
}
