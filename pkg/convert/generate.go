package convert

import (
	"github.com/sketchflow/sketchflow/pkg/llm"
	"github.com/sketchflow/sketchflow/pkg/pipeline"
)

// Generator produces diagram code in one target format from the described
// sketch, folding validator corrections into retry prompts.
type Generator struct {
	format Format
	client llm.Client
}

// NewGenerator builds a Generator for a format.
func NewGenerator(f Format, client llm.Client) *Generator {
	return &Generator{format: f, client: client}
}

// Generate is the generate pipeline node. The attempt counter advances
// exactly once per invocation whether or not the model call succeeds, so the
// retry budget cannot be stretched by failures. A failed call leaves empty
// code and records the error instead of failing the run; validation then
// turns the empty code into correction feedback for the next attempt.
func (g *Generator) Generate(ctx pipeline.Context, s State) (State, error) {
	s = s.visited(stageGenerate + ":" + string(g.format))
	attempt := s.AttemptCount
	s.AttemptCount++

	resp, err := g.client.Complete(ctx, llm.CompletionRequest{
		Prompt: generationPrompt(g.format, s),
	})
	if err != nil {
		ctx.Logger().Error("diagram generation failed",
			"format", string(g.format),
			"attempt", attempt,
			"error", err)
		s.DiagramCode = ""
		s.GenerationError = err.Error()
		return s, nil
	}

	s.DiagramCode = cleanOutput(g.format, resp.Content)
	s.GenerationError = ""

	ctx.Logger().Info("diagram code generated",
		"format", string(g.format),
		"attempt", attempt,
		"model", resp.Model,
		"bytes", len(s.DiagramCode))
	return s, nil
}
