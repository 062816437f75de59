// Command linelimit-vet runs the line length analyzer as a go vet tool:
//
//	go vet -vettool=$(which linelimit-vet) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"linelimit/internal/goanalysis"
)

func main() { singlechecker.Main(goanalysis.Analyzer) }
