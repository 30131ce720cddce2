// Package executors implements the built-in data-graph node executors:
// typed literal inputs, conditional branching, merge, JSON-path filtering,
// JSON-schema validation, model inference, sandboxed file I/O, and vector
// search. Each type implements registry.NodeExecutor and is wired into a
// Registry by DefaultRegistry.
//
// Every executor reads its static configuration from inputs["_data"] (an
// opaque map decoded from the node's JSON config) with a fallback to a
// same-named input port, matching how upstream nodes feed live values into
// an otherwise-constant node.
package executors
