// Package scope implements the foreign runtime's scoped-execution-context
// protocol: a runtime-managed region that must be explicitly entered and
// exited, with cleanup guaranteed on exit.
//
// The Stack enforces the two contract points:
//
//   - LIFO discipline: nested scopes exit in strict reverse order of entry;
//     exiting a non-innermost scope is a scope_order error.
//   - Guaranteed release: With runs the exit protocol on every path out of
//     the block, including error returns and panics.
//
// Explicit Enter/Exit pairs exist for callers that need to hold a scope
// across function boundaries; With is the preferred form.
package scope
