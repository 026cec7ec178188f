package llm

import "fmt"

// ConfigurationError indicates the gateway cannot construct a client:
// an empty model name or a missing credential for the resolved provider.
// It is fatal to the stage where it occurs and is never retried.
type ConfigurationError struct {
	Provider Provider
	Message  string
}

func (e *ConfigurationError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("llm configuration: %s: %s", e.Provider, e.Message)
	}
	return fmt.Sprintf("llm configuration: %s", e.Message)
}

// APIError wraps a provider HTTP failure.
type APIError struct {
	Provider   Provider
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error (HTTP %d): %s", e.Provider, e.StatusCode, e.Message)
}

// Retryable reports whether the failure is plausibly transient.
// Callers in this pipeline do not retry model calls directly; the
// generate/validate loop absorbs transient failures instead.
func (e *APIError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
