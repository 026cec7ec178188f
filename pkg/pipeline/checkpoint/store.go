// Package checkpoint persists pipeline state snapshots so interrupted
// conversion runs can be inspected or resumed.
package checkpoint

import (
	"errors"
	"time"
)

// Store persists checkpoints keyed by (run ID, node ID).
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a checkpoint, overwriting any existing one for the same
	// (runID, nodeID) pair.
	Save(runID, nodeID string, data []byte) error

	// Load retrieves a checkpoint. Returns ErrNotFound if absent.
	Load(runID, nodeID string) ([]byte, error)

	// List returns metadata for all checkpoints of a run, ordered by
	// sequence. An unknown run yields an empty result, not an error.
	List(runID string) ([]Info, error)

	// Delete removes one checkpoint. A missing checkpoint is not an error.
	Delete(runID, nodeID string) error

	// DeleteRun removes all checkpoints for a run.
	DeleteRun(runID string) error

	// Close releases any resources held by the store.
	Close() error
}

// Info is checkpoint metadata without the serialized state.
type Info struct {
	RunID     string
	NodeID    string
	Sequence  int
	Timestamp time.Time
	Size      int64
}

// Sentinel errors for checkpoint operations.
var (
	// ErrNotFound indicates a checkpoint doesn't exist.
	ErrNotFound = errors.New("checkpoint not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("checkpoint store closed")
)
