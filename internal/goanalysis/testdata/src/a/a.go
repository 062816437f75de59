package a

import longAliasForTheFormattingPackageToPushPastTheLimit "fmt"

// Greeting returns a friendly message for the caller; this doc comment is deliberately long.
func Greeting(name string) string {
	return longAliasForTheFormattingPackageToPushPastTheLimit.Sprintf("hello %s", name) // want "Exceeds maximum line length of 60 characters."
}

type options struct{ verbose, quiet, color, progress, timings bool } // wide but exempt

func short() int {
	x := 1
	return x
}

var _ = options{}
