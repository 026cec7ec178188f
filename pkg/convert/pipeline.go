package convert

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sketchflow/sketchflow/pkg/llm"
	"github.com/sketchflow/sketchflow/pkg/pipeline"
	"github.com/sketchflow/sketchflow/pkg/pipeline/checkpoint"
)

// DefaultMaxAttempts bounds the generate/validate retry loop.
const DefaultMaxAttempts = 2

// Pipeline converts sketch images to diagram code. It compiles one execution
// graph per target format at construction and is safe for concurrent use.
type Pipeline struct {
	describer   *Describer
	generators  map[Format]*Generator
	validators  map[Format]Validator
	graphs      map[Format]*pipeline.CompiledGraph[State]
	maxAttempts int
	logger      *slog.Logger
	runOpts     []pipeline.RunOption
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMaxAttempts overrides the generation attempt budget.
func WithMaxAttempts(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxAttempts = n
		}
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMermaidCompiler overrides the compiler backing mermaid validation,
// mainly so tests can inject one.
func WithMermaidCompiler(c MermaidCompiler) Option {
	return func(p *Pipeline) {
		p.validators[FormatMermaid] = NewMermaidValidator(c)
	}
}

// WithValidator overrides the validator for a format.
func WithValidator(f Format, v Validator) Option {
	return func(p *Pipeline) {
		p.validators[f] = v
	}
}

// WithRunOptions forwards engine options (checkpointing, metrics, tracing)
// to every run.
func WithRunOptions(opts ...pipeline.RunOption) Option {
	return func(p *Pipeline) {
		p.runOpts = append(p.runOpts, opts...)
	}
}

// New builds a Pipeline from a vision-capable description client and a
// generation client. The two may be the same client.
func New(vision, generation llm.Client, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		describer: NewDescriber(vision),
		generators: map[Format]*Generator{
			FormatMermaid:  NewGenerator(FormatMermaid, generation),
			FormatDrawio:   NewGenerator(FormatDrawio, generation),
			FormatPlantUML: NewGenerator(FormatPlantUML, generation),
		},
		validators: map[Format]Validator{
			FormatMermaid:  NewMermaidValidator(NewMermaidCompiler(defaultMmdcBin, defaultMmdcTimeout)),
			FormatDrawio:   NewDrawioValidator(),
			FormatPlantUML: NewPlantUMLValidator(),
		},
		maxAttempts: DefaultMaxAttempts,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.graphs = make(map[Format]*pipeline.CompiledGraph[State], len(p.generators))
	for _, f := range Formats() {
		g, err := p.buildGraph(f)
		if err != nil {
			return nil, fmt.Errorf("compile %s pipeline: %w", f, err)
		}
		p.graphs[f] = g
	}
	return p, nil
}

// buildGraph wires the describe -> generate -> validate loop for a format.
// After validation the router either ends the run or loops back to
// generation for another attempt.
func (p *Pipeline) buildGraph(f Format) (*pipeline.CompiledGraph[State], error) {
	return pipeline.NewGraph[State]().
		AddNode("describe", p.describer.Describe).
		AddNode("generate", p.generators[f].Generate).
		AddNode("validate", validateNode(f, p.validators[f])).
		SetEntry("describe").
		AddEdge("describe", "generate").
		AddEdge("generate", "validate").
		AddConditionalEdge("validate", p.route).
		Compile()
}

// route decides whether a run is finished after validation. It exits when
// the candidate passed, when validation was skipped, or when the attempt
// budget is exhausted; otherwise it loops back for another generation pass.
func (p *Pipeline) route(ctx pipeline.Context, s State) string {
	if s.ValidationPassed || s.ValidationSkipped {
		return pipeline.END
	}
	if s.AttemptCount >= p.maxAttempts {
		ctx.Logger().Warn("attempt budget exhausted, returning best candidate",
			"attempts", s.AttemptCount,
			"issues", len(s.Issues))
		return pipeline.END
	}
	return "generate"
}

// Convert runs the full pipeline for a request and returns the result.
// Validator findings do not fail the conversion; only engine-level failures
// (cancellation, node panics) surface as errors.
func (p *Pipeline) Convert(ctx context.Context, req Request) (*Result, error) {
	if len(req.Image) == 0 {
		return nil, fmt.Errorf("convert: request has no image data")
	}
	if _, ok := p.graphs[req.Format]; !ok {
		return nil, fmt.Errorf("convert: unsupported target format %q", req.Format)
	}
	if req.JobID == "" {
		req.JobID = uuid.NewString()
	}
	if req.ImageMIME == "" {
		req.ImageMIME = "image/png"
	}

	start := time.Now()
	pctx := pipeline.NewContext(ctx,
		pipeline.WithLogger(p.logger),
		pipeline.WithContextRunID(req.JobID),
	)
	opts := append([]pipeline.RunOption{pipeline.WithRunID(req.JobID)}, p.runOpts...)

	final, err := p.graphs[req.Format].Run(pctx, State{Request: req}, opts...)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	return newResult(final, time.Since(start)), nil
}

// Resume continues a checkpointed run from its latest saved state.
func (p *Pipeline) Resume(ctx context.Context, f Format, store checkpoint.Store, jobID string) (*Result, error) {
	g, ok := p.graphs[f]
	if !ok {
		return nil, fmt.Errorf("resume: unsupported target format %q", f)
	}
	start := time.Now()
	pctx := pipeline.NewContext(ctx,
		pipeline.WithLogger(p.logger),
		pipeline.WithContextRunID(jobID),
	)
	final, err := g.Resume(pctx, store, jobID)
	if err != nil {
		return nil, fmt.Errorf("resume: %w", err)
	}
	return newResult(final, time.Since(start)), nil
}
