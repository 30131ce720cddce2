// Package registry is the node type registry: it replaces a hardcoded
// type-switch dispatch with a table of node_type strings, each mapped to
// metadata (category, ports, label) and an optional executor factory.
//
//	reg := registry.New()
//	reg.Register(myMetadata, registry.SharedExecutorFactory(myExecutor))
//
//	taskExecutor := registry.NewTaskExecutor(reg)
//	output, err := demandEngine.Demand(ctx, "my-node-1", g, taskExecutor, ...)
//
// Entries registered with RegisterMetadata have no executor and exist
// purely for UI palette listing. Two registries compose with Merge, with
// the argument's entries winning on node_type collisions - this is how
// plugin-contributed node types layer on top of the built-in set.
package registry
