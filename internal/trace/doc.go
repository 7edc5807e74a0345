// Package trace is kappa's logging layer: structured span and point events
// emitted by the driver and the CLI.
//
// Enable it from the command line:
//
//	kappa parse --trace=- --trace-level=detail src/
//
// Tracers:
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write (stderr or file), text or NDJSON
//   - RingTracer: last N events in memory, dumped on failure
//   - MultiTracer: fan-out
//
// Levels gate scopes: LevelPhase shows driver and pass spans, LevelDetail adds
// per-file spans, LevelDebug shows everything. The lexer and the parser never
// trace; the driver wraps them.
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
