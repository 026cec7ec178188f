package llm

import (
	"net/http"
	"os"
	"strings"
	"time"
)

// Provider identifies a model provider family.
type Provider string

// Supported providers.
const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// Environment variables holding provider credentials.
const (
	openAIKeyEnv    = "OPENAI_API_KEY"
	anthropicKeyEnv = "ANTHROPIC_API_KEY"
)

// ResolveOption configures client construction.
type ResolveOption func(*resolveConfig)

type resolveConfig struct {
	temperature float64
	maxTokens   int
	httpClient  *http.Client
	apiKey      string
}

// WithTemperature sets the sampling temperature for the resolved client.
func WithTemperature(t float64) ResolveOption {
	return func(c *resolveConfig) { c.temperature = t }
}

// WithMaxTokens caps the response length for the resolved client.
func WithMaxTokens(n int) ResolveOption {
	return func(c *resolveConfig) { c.maxTokens = n }
}

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) ResolveOption {
	return func(c *resolveConfig) { c.httpClient = hc }
}

// WithAPIKey overrides the credential lookup, mainly for tests.
func WithAPIKey(key string) ResolveOption {
	return func(c *resolveConfig) { c.apiKey = key }
}

// Resolve maps a logical model name to a completion client and its
// provider. Fails with ConfigurationError when the name is empty or the
// resolved provider's credential is absent.
func Resolve(modelName string, opts ...ResolveOption) (Client, Provider, error) {
	if strings.TrimSpace(modelName) == "" {
		return nil, "", &ConfigurationError{Message: "model name must be a non-empty string"}
	}

	cfg := resolveConfig{
		temperature: 0.1,
		httpClient:  &http.Client{Timeout: 120 * time.Second},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	provider := InferProvider(modelName)
	model := stripPrefix(modelName)

	switch provider {
	case ProviderOpenAI:
		key := cfg.apiKey
		if key == "" {
			key = os.Getenv(openAIKeyEnv)
		}
		if key == "" {
			return nil, provider, &ConfigurationError{
				Provider: provider,
				Message:  openAIKeyEnv + " is not set, required for provider 'openai'",
			}
		}
		return newOpenAIClient(model, key, cfg), provider, nil

	case ProviderAnthropic:
		key := cfg.apiKey
		if key == "" {
			key = os.Getenv(anthropicKeyEnv)
		}
		if key == "" {
			return nil, provider, &ConfigurationError{
				Provider: provider,
				Message:  anthropicKeyEnv + " is not set, required for provider 'anthropic'",
			}
		}
		return newAnthropicClient(model, key, cfg), provider, nil
	}

	// Unreachable: InferProvider always returns a known provider.
	return nil, provider, &ConfigurationError{
		Provider: provider,
		Message:  "unsupported provider for model '" + modelName + "'",
	}
}

// InferProvider determines the provider for a model name. An explicit
// "openai:" or "anthropic:" prefix wins; otherwise names from the Claude
// family select Anthropic and everything else (gpt/o families) defaults
// to OpenAI.
func InferProvider(modelName string) Provider {
	name := strings.ToLower(strings.TrimSpace(modelName))

	if prefix, _, found := strings.Cut(name, ":"); found {
		switch Provider(prefix) {
		case ProviderOpenAI:
			return ProviderOpenAI
		case ProviderAnthropic:
			return ProviderAnthropic
		}
	}

	if strings.Contains(name, "claude") || strings.Contains(name, "sonnet") || strings.HasPrefix(name, "anthropic") {
		return ProviderAnthropic
	}
	return ProviderOpenAI
}

// stripPrefix removes a recognized provider prefix from a model name.
// Unrecognized prefixes are kept as part of the name.
func stripPrefix(modelName string) string {
	if prefix, rest, found := strings.Cut(modelName, ":"); found {
		switch Provider(strings.ToLower(prefix)) {
		case ProviderOpenAI, ProviderAnthropic:
			return rest
		}
	}
	return modelName
}
