// Package trace records what the checker is doing: run and pass boundaries,
// per-file work and the settings each file was checked with.
//
// # Usage
//
//	linelimit check --trace=- --trace-level=detail ./src
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: nothing is streamed, kept for flag compatibility
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file spans and settings resolution
//   - LevelDebug: everything
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "scan", parentID)
//	defer span.End("")
package trace
