package convert

import (
	"context"
	"fmt"
	"strings"

	"github.com/sketchflow/sketchflow/pkg/pipeline"
)

// Outcome is the result of validating one generated candidate.
type Outcome struct {
	// Valid reports whether the candidate validated.
	Valid bool
	// Skipped reports that validation could not run and the candidate
	// is accepted unverified. Implies Valid.
	Skipped bool
	// Issues are the human-readable findings behind an invalid outcome,
	// or a note explaining a skip.
	Issues []string
	// NormalizedCode is the candidate after any repair normalization.
	// When normalization is what made the candidate valid, this is the
	// code to ship.
	NormalizedCode string
}

// Validator checks diagram code in one target format.
type Validator interface {
	// Validate checks a candidate. It does not fail the run: problems
	// are reported through the Outcome.
	Validate(ctx context.Context, code string) Outcome
}

const emptyCodeIssue = "Empty code"

// validateNode adapts a Validator into a pipeline node and applies the
// outcome to the state: final code, issues, and the correction feedback the
// next generation attempt will see.
func validateNode(f Format, v Validator) pipeline.NodeFunc[State] {
	return func(ctx pipeline.Context, s State) (State, error) {
		s = s.visited(stageValidate + ":" + string(f))

		out := v.Validate(ctx, s.DiagramCode)

		s.ValidationPassed = out.Valid || out.Skipped
		s.ValidationSkipped = out.Skipped
		s.Issues = out.Issues
		s.FinalCode = s.DiagramCode
		if out.NormalizedCode != "" {
			s.FinalCode = out.NormalizedCode
		}

		if s.ValidationPassed {
			s.Corrections = ""
			ctx.Logger().Info("diagram code validated",
				"format", string(f),
				"skipped", out.Skipped,
				"attempt", s.AttemptCount)
			return s, nil
		}

		s.Corrections = corrections(f, out.Issues, s.GenerationError)
		ctx.Logger().Warn("diagram code failed validation",
			"format", string(f),
			"attempt", s.AttemptCount,
			"issues", len(out.Issues))
		return s, nil
	}
}

// corrections renders validator findings as the instruction block injected
// into the next generation prompt.
func corrections(f Format, issues []string, generationError string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The %s code failed validation. Fix the following issues and regenerate strictly:\n", f)
	for _, issue := range issues {
		b.WriteString("- ")
		b.WriteString(issue)
		b.WriteString("\n")
	}
	if generationError != "" {
		fmt.Fprintf(&b, "- The previous generation attempt errored: %s\n", generationError)
	}
	return strings.TrimSpace(b.String())
}
