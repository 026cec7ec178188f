package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sketchflow/sketchflow/pkg/pipeline/checkpoint"
)

// Resume continues execution from the latest checkpoint of a run. The
// checkpointed state is deserialized and execution starts at the node the
// checkpoint named as next.
//
// Example:
//
//	// Previous run crashed after "generate"; continue with "validate".
//	result, err := compiled.Resume(ctx, store, "job-123")
func (cg *CompiledGraph[S]) Resume(ctx Context, store checkpoint.Store, runID string) (S, error) {
	var zero S

	if ctx == nil {
		return zero, ErrNilContext
	}

	infos, err := store.List(runID)
	if err != nil {
		return zero, fmt.Errorf("list checkpoints: %w", err)
	}
	if len(infos) == 0 {
		return zero, fmt.Errorf("%w: %s", ErrNoCheckpoints, runID)
	}

	latest := infos[len(infos)-1]
	return cg.resumeFromCheckpoint(ctx, store, runID, latest.NodeID)
}

// ResumeFrom continues execution from the checkpoint taken at a specific
// node rather than the latest one.
func (cg *CompiledGraph[S]) ResumeFrom(ctx Context, store checkpoint.Store, runID, nodeID string) (S, error) {
	var zero S

	if ctx == nil {
		return zero, ErrNilContext
	}

	return cg.resumeFromCheckpoint(ctx, store, runID, nodeID)
}

func (cg *CompiledGraph[S]) resumeFromCheckpoint(ctx Context, store checkpoint.Store, runID, nodeID string) (S, error) {
	var zero S

	data, err := store.Load(runID, nodeID)
	if err != nil {
		if errors.Is(err, checkpoint.ErrNotFound) {
			return zero, fmt.Errorf("%w: %s at node %s", ErrNoCheckpoints, runID, nodeID)
		}
		return zero, fmt.Errorf("load checkpoint: %w", err)
	}

	cp, err := checkpoint.Unmarshal(data)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrDeserializeState, err)
	}

	if cp.Version != checkpoint.Version {
		return zero, fmt.Errorf("%w: got %d, expected %d",
			ErrCheckpointVersionMismatch, cp.Version, checkpoint.Version)
	}

	var state S
	if err := json.Unmarshal(cp.State, &state); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrDeserializeState, err)
	}

	startNode := cp.NextNode
	if startNode != END && !cg.HasNode(startNode) {
		return zero, fmt.Errorf("%w: %s", ErrInvalidResumeNode, startNode)
	}

	cfg := defaultRunConfig()
	cfg.checkpointStore = store
	cfg.runID = runID
	cfg.sequence = cp.Sequence

	return cg.runFrom(ctx, state, startNode, &cfg)
}
