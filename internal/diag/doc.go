// Package diag defines the diagnostic model shared by the rules and the host.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with a stable string
//     form such as "CR9000".
//   - Message – human oriented text; rules produce it fully formatted.
//   - Primary span – the source.Span of the offending line.
//   - Notes – optional secondary spans/messages.
//
// Diagnostics are produced once and never mutated afterwards.
//
// # Emitting diagnostics
//
// Producers depend on the Reporter interface only. BagReporter stores into a
// Bag, which supports sorting and severity queries; FuncReporter adapts a
// plain callback (used by the go/analysis host).
//
// Package diag does not perform any formatting beyond the short single-line
// form in short.go; rendering lives in internal/diagfmt.
package diag
