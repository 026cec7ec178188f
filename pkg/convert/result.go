package convert

import "time"

// Result is the outcome of a conversion returned to the caller.
type Result struct {
	// Format is the target format the code is in.
	Format Format `json:"format"`
	// Code is the final diagram code, best-available when validation
	// never passed.
	Code string `json:"code"`
	// JobID identifies the run.
	JobID string `json:"job_id"`
	// ProcessingTime is the wall-clock duration of the run.
	ProcessingTime time.Duration `json:"processing_time"`
	// AgentsUsed is the ordered log of pipeline stages executed.
	AgentsUsed []string `json:"agents_used"`
	// ValidationPassed reports whether the code validated (or was
	// accepted via a skip).
	ValidationPassed bool `json:"validation_passed"`
	// ValidationSkipped reports that validation could not run.
	ValidationSkipped bool `json:"validation_skipped"`
	// Issues are the outstanding validator findings, empty on a clean
	// pass.
	Issues []string `json:"issues,omitempty"`
	// Attempts is the number of generation attempts consumed.
	Attempts int `json:"attempts"`
}

func newResult(s State, elapsed time.Duration) *Result {
	return &Result{
		Format:            s.Request.Format,
		Code:              s.FinalCode,
		JobID:             s.Request.JobID,
		ProcessingTime:    elapsed,
		AgentsUsed:        s.ProcessingPath,
		ValidationPassed:  s.ValidationPassed,
		ValidationSkipped: s.ValidationSkipped,
		Issues:            s.Issues,
		Attempts:          s.AttemptCount,
	}
}
