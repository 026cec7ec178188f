// Package llm resolves logical model names to completion clients.
//
// A model name may carry an explicit provider prefix ("openai:gpt-4.1",
// "anthropic:claude-sonnet-4-5"); without one the provider is inferred
// from the name. Resolution is a pure mapping: no retries, no caching,
// no backoff. Both providers are driven through the same Client interface,
// with provider-specific request shaping hidden behind it.
package llm

import (
	"context"
	"time"
)

// Client is a text or text+image completion capability.
type Client interface {
	// Complete performs one completion call. The request may carry an
	// image; clients that cannot handle images report it via
	// SupportsVision.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// SupportsVision reports whether the client accepts image input.
	SupportsVision() bool
}

// CompletionRequest configures one completion call.
type CompletionRequest struct {
	// Prompt is the full instruction text.
	Prompt string `json:"prompt"`

	// Image is optional raw image bytes (JPEG, PNG, WebP).
	Image []byte `json:"image,omitempty"`
	// ImageMIME is the image media type; defaults to "image/jpeg".
	ImageMIME string `json:"image_mime,omitempty"`

	// MaxTokens bounds the response length. 0 means the client default.
	MaxTokens int `json:"max_tokens,omitempty"`
	// Temperature controls sampling. The gateway defaults it per stage.
	Temperature float64 `json:"temperature"`
}

// CompletionResponse is the output of a completion call.
type CompletionResponse struct {
	Content      string        `json:"content"`
	Model        string        `json:"model"`
	FinishReason string        `json:"finish_reason,omitempty"`
	Usage        TokenUsage    `json:"usage"`
	Duration     time.Duration `json:"duration"`
}

// TokenUsage tracks token consumption.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Add accumulates another usage into u.
func (u *TokenUsage) Add(other TokenUsage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.TotalTokens += other.TotalTokens
}
