// Package settings resolves the line length threshold from the additional
// files handed to an analysis pass.
//
// The first candidate named stylecop.json (compared case-insensitively on the
// final path component) is read and decoded as
//
//	{ "settings": { "readabilityRules": { "maximumLineLength": 120 } } }
//
// A missing file, unreadable content, malformed JSON, a missing key at any
// level or a non-integer value all resolve to a disabled Config. None of these
// is an error: a broken settings file must never break the analysis. The only
// errors Resolve returns are ErrInvalidArgument for a candidate without a path
// and the context error on cancellation.
package settings
