package convert

import (
	"github.com/sketchflow/sketchflow/pkg/diagram"
)

// Stage names recorded in State.ProcessingPath, in execution order.
const (
	stageDescribe = "describe"
	stageGenerate = "generate"
	stageValidate = "validate"
)

// Request carries the caller's input into a conversion run.
type Request struct {
	// Image is the raw sketch image.
	Image []byte `json:"image"`
	// ImageMIME is the image media type, e.g. "image/png".
	ImageMIME string `json:"image_mime"`
	// Format is the target diagram code format.
	Format Format `json:"format"`
	// Notes are optional user hints forwarded to the describer.
	Notes string `json:"notes,omitempty"`
	// JobID identifies the run. Assigned if empty.
	JobID string `json:"job_id"`
}

// State is the conversion state threaded through the pipeline nodes.
// All fields serialize to JSON so runs can be checkpointed and resumed.
type State struct {
	Request Request `json:"request"`

	// Spec is the structured description extracted from the sketch,
	// nil when the describer could not produce one.
	Spec *diagram.Spec `json:"spec,omitempty"`
	// Narrative is the free-text remainder of the description. It is
	// the generation input when Spec is absent.
	Narrative string `json:"narrative,omitempty"`

	// DiagramCode is the candidate produced by the latest generation
	// attempt, before validation normalization.
	DiagramCode string `json:"diagram_code"`
	// GenerationError records the latest generator failure, if any.
	GenerationError string `json:"generation_error,omitempty"`

	// AttemptCount is the number of generation attempts so far. It is
	// incremented exactly once per generator invocation, success or not.
	AttemptCount int `json:"attempt_count"`

	// Issues are the validator findings from the latest validation.
	Issues []string `json:"issues,omitempty"`
	// Corrections is the validator feedback injected into the next
	// generation prompt. Empty when the latest validation passed.
	Corrections string `json:"corrections,omitempty"`

	// ValidationPassed reports whether the latest candidate validated.
	ValidationPassed bool `json:"validation_passed"`
	// ValidationSkipped reports that validation could not run and the
	// candidate was accepted unverified.
	ValidationSkipped bool `json:"validation_skipped"`

	// FinalCode is the best available code after validation, normalized
	// when normalization was what made it valid.
	FinalCode string `json:"final_code"`

	// ProcessingPath is the append-only log of stages executed.
	ProcessingPath []string `json:"processing_path"`
}

// visited appends a stage marker to the processing path.
func (s State) visited(stage string) State {
	s.ProcessingPath = append(s.ProcessingPath, stage)
	return s
}
