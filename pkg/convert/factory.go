package convert

import (
	"fmt"

	"github.com/sketchflow/sketchflow/pkg/llm"
	"github.com/sketchflow/sketchflow/pkg/pipeline/config"
)

// Configuration keys and defaults understood by FromConfig.
const (
	keyVisionModel     = "vision_model"
	keyGenerationModel = "generation_model"
	keyTemperature     = "temperature"
	keyVisionTemp      = "vision_temperature"
	keyGenerationTemp  = "generation_temperature"
	keyMaxAttempts     = "max_attempts"
	keyMmdcBin         = "mmdc_bin"
	keyMmdcTimeout     = "mmdc_timeout"

	defaultModel       = "gpt-4.1"
	defaultTemperature = 0.1
)

// FromConfig resolves the model clients and pipeline options from
// configuration and builds a Pipeline. Misconfiguration (unknown models,
// missing API keys) fails fast here rather than on the first request.
func FromConfig(cfg config.Config, opts ...Option) (*Pipeline, error) {
	// Per-stage temperatures fall back to the shared "temperature" key.
	shared := cfg.Float(keyTemperature, defaultTemperature)

	visionModel := cfg.String(keyVisionModel, defaultModel)
	vision, provider, err := llm.Resolve(visionModel,
		llm.WithTemperature(cfg.Float(keyVisionTemp, shared)))
	if err != nil {
		return nil, fmt.Errorf("resolve vision model %q: %w", visionModel, err)
	}
	if !vision.SupportsVision() {
		return nil, fmt.Errorf("vision model %q (%s) does not support image input", visionModel, provider)
	}

	generationModel := cfg.String(keyGenerationModel, defaultModel)
	generation, _, err := llm.Resolve(generationModel,
		llm.WithTemperature(cfg.Float(keyGenerationTemp, shared)))
	if err != nil {
		return nil, fmt.Errorf("resolve generation model %q: %w", generationModel, err)
	}

	compiler := NewMermaidCompiler(
		cfg.String(keyMmdcBin, defaultMmdcBin),
		cfg.Duration(keyMmdcTimeout, defaultMmdcTimeout),
	)

	base := []Option{
		WithMaxAttempts(cfg.Int(keyMaxAttempts, DefaultMaxAttempts)),
		WithMermaidCompiler(compiler),
	}
	return New(vision, generation, append(base, opts...)...)
}
