// Package trace records what the extractor is doing.
//
// Events are grouped by scope, from the coarsest to the finest:
//
//   - ScopeDriver: one crate run (root file, module walk, commit)
//   - ScopeModule: one module
//   - ScopeFunction: one function body
//   - ScopeNode: single nodes; degraded lookups are reported here
//
// The level decides which scopes reach the output:
//
//	off     nothing
//	error   nothing is streamed; events are kept in a ring and dumped on failure
//	phase   driver
//	detail  driver, module and function
//	debug   everything
//
// Tracers travel in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeModule, "module:foo", parent)
//	defer span.End("")
package trace
