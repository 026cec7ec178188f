package convert

import (
	"fmt"

	"github.com/sketchflow/sketchflow/pkg/diagram"
	"github.com/sketchflow/sketchflow/pkg/llm"
	"github.com/sketchflow/sketchflow/pkg/pipeline"
)

// Describer runs the vision model over the sketch once and extracts a
// structured diagram description from the response.
type Describer struct {
	client llm.Client
}

// NewDescriber builds a Describer on top of a vision-capable client.
func NewDescriber(client llm.Client) *Describer {
	return &Describer{client: client}
}

// Describe is the describe pipeline node. It never fails the run: when the
// model call or extraction falls over, the state degrades to an empty spec
// with whatever narrative text is available so generation can still proceed.
func (d *Describer) Describe(ctx pipeline.Context, s State) (State, error) {
	s = s.visited(stageDescribe)

	if !d.client.SupportsVision() {
		ctx.Logger().Warn("vision model does not report image support, describing from notes only")
	}

	resp, err := d.client.Complete(ctx, llm.CompletionRequest{
		Prompt:    describerPrompt(s.Request.Notes),
		Image:     s.Request.Image,
		ImageMIME: s.Request.ImageMIME,
	})
	if err != nil {
		ctx.Logger().Error("sketch description failed", "error", err)
		spec := diagram.Empty()
		s.Spec = &spec
		s.Narrative = fallbackNarrative(s.Request, err)
		return s, nil
	}

	spec, narrative, ok := diagram.Extract(resp.Content)
	if !ok {
		ctx.Logger().Warn("no structured description in model response, using raw text",
			"model", resp.Model)
	}
	s.Spec = &spec
	s.Narrative = narrative
	if s.Narrative == "" {
		s.Narrative = resp.Content
	}

	ctx.Logger().Info("sketch described",
		"model", resp.Model,
		"elements", len(spec.Elements),
		"edges", len(spec.Edges),
		"structured", ok)
	return s, nil
}

// fallbackNarrative gives generation something to work with when the
// describer could not see the image at all.
func fallbackNarrative(req Request, err error) string {
	base := fmt.Sprintf("A sketch of a diagram that could not be analyzed (%v).", err)
	if req.Notes != "" {
		return base + " The user described it as: " + req.Notes
	}
	return base + " Produce a minimal placeholder diagram."
}
