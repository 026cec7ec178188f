package pipeline

// END is the terminal node identifier. Use it as an edge target (or return
// it from a router) to finish the run.
const END = "__end__"

// NodeFunc is the signature of a stage. The state is passed by value;
// stages modify a copy and return it rather than mutating shared memory.
//
// Example:
//
//	func describe(ctx pipeline.Context, s State) (State, error) {
//	    s.Narrative = "..."
//	    return s, nil
//	}
type NodeFunc[S any] func(ctx Context, state S) (S, error)

// RouterFunc picks the next node after a conditional edge.
// It must return an existing node ID or END; anything else is a runtime
// RouterError.
type RouterFunc[S any] func(ctx Context, state S) string
