// Package trace records what a scopelint run is doing.
//
// Tracing is off by default and enabled from the command line:
//
//	scopelint check --trace=- --trace-level=detail
//
// Tracers:
//
//   - Nop: used whenever tracing is disabled
//   - StreamTracer: writes each event as it happens (text or ndjson)
//   - RingTracer: keeps the last N events in memory for a crash dump
//   - MultiTracer: fans out to several tracers
//
// Levels decide which scopes are emitted:
//
//   - LevelPhase: driver and pass spans (check, discover, fmt)
//   - LevelDetail: plus one span per linted file
//   - LevelDebug: everything
//
// The tracer travels in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.Start(ctx, trace.ScopePass, "discover")
//	defer span.End("")
package trace
