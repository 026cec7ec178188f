// Package pipeline implements a small graph-based state machine for
// multi-stage LLM workflows.
//
// A workflow is built as a directed graph of named nodes. Each node is a
// function that receives the current state and returns an updated state.
// Edges connect nodes; a conditional edge consults a router function at
// runtime to pick the next node, which is how retry loops are expressed.
//
// Build a Graph, Compile it into an immutable CompiledGraph, then Run it:
//
//	g := pipeline.NewGraph[State]().
//	    AddNode("describe", describe).
//	    AddNode("generate", generate).
//	    AddNode("validate", validate).
//	    AddEdge("describe", "generate").
//	    AddEdge("generate", "validate").
//	    AddConditionalEdge("validate", route).
//	    SetEntry("describe")
//
//	compiled, err := g.Compile()
//	final, err := compiled.Run(pipeline.NewContext(ctx), initial)
//
// Execution within one run is strictly sequential: a node never runs
// concurrently with another node of the same run. Independent runs share
// nothing and may execute in parallel.
package pipeline
