package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfig_String verifies string extraction with defaults.
func TestConfig_String(t *testing.T) {
	cfg := New(map[string]any{
		"name":  "gpt-4.1",
		"count": 3,
	})

	assert.Equal(t, "gpt-4.1", cfg.String("name", "fallback"))
	assert.Equal(t, "fallback", cfg.String("missing", "fallback"))
	assert.Equal(t, "fallback", cfg.String("count", "fallback"))
}

// TestConfig_Duration verifies the accepted duration representations.
func TestConfig_Duration(t *testing.T) {
	testCases := []struct {
		name     string
		value    any
		expected time.Duration
	}{
		{"go duration string", "1m30s", 90 * time.Second},
		{"bare number string means seconds", "30", 30 * time.Second},
		{"int means seconds", 45, 45 * time.Second},
		{"int64 means seconds", int64(10), 10 * time.Second},
		{"float means seconds", 2.5, 2500 * time.Millisecond},
		{"native duration", 5 * time.Second, 5 * time.Second},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := New(map[string]any{"timeout": tc.value})
			assert.Equal(t, tc.expected, cfg.Duration("timeout", time.Minute))
		})
	}

	cfg := New(map[string]any{"timeout": "not a duration"})
	assert.Equal(t, time.Minute, cfg.Duration("timeout", time.Minute))
	assert.Equal(t, time.Minute, cfg.Duration("missing", time.Minute))
}

// TestConfig_Int verifies integer coercions, including env-style strings.
func TestConfig_Int(t *testing.T) {
	cfg := New(map[string]any{
		"attempts":   2,
		"from_json":  float64(3),
		"from_env":   "4",
		"fractional": 2.5,
	})

	assert.Equal(t, 2, cfg.Int("attempts", 9))
	assert.Equal(t, 3, cfg.Int("from_json", 9))
	assert.Equal(t, 4, cfg.Int("from_env", 9))
	assert.Equal(t, 9, cfg.Int("fractional", 9))
	assert.Equal(t, 9, cfg.Int("missing", 9))
}

// TestConfig_Float verifies float coercions.
func TestConfig_Float(t *testing.T) {
	cfg := New(map[string]any{
		"temp":     0.1,
		"from_env": "0.7",
		"whole":    1,
	})

	assert.InDelta(t, 0.1, cfg.Float("temp", 0.5), 1e-9)
	assert.InDelta(t, 0.7, cfg.Float("from_env", 0.5), 1e-9)
	assert.InDelta(t, 1.0, cfg.Float("whole", 0.5), 1e-9)
	assert.InDelta(t, 0.5, cfg.Float("missing", 0.5), 1e-9)
}

// TestConfig_Merge verifies overlay precedence.
func TestConfig_Merge(t *testing.T) {
	base := New(map[string]any{"a": "base", "b": "base"})
	over := New(map[string]any{"b": "override", "c": "new"})

	merged := base.Merge(over)

	assert.Equal(t, "base", merged.String("a", ""))
	assert.Equal(t, "override", merged.String("b", ""))
	assert.Equal(t, "new", merged.String("c", ""))
}

// TestFromYAML verifies YAML loading.
func TestFromYAML(t *testing.T) {
	cfg, err := FromYAML([]byte("generation_model: claude-sonnet-4\nmax_attempts: 3\n"))
	require.NoError(t, err)

	assert.Equal(t, "claude-sonnet-4", cfg.String("generation_model", ""))
	assert.Equal(t, 3, cfg.Int("max_attempts", 0))
}

// TestFromTOML verifies TOML loading.
func TestFromTOML(t *testing.T) {
	cfg, err := FromTOML([]byte("mmdc_bin = \"/usr/local/bin/mmdc\"\ntemperature = 0.2\n"))
	require.NoError(t, err)

	assert.Equal(t, "/usr/local/bin/mmdc", cfg.String("mmdc_bin", ""))
	assert.InDelta(t, 0.2, cfg.Float("temperature", 0), 1e-9)
}

// TestFromJSON verifies JSON loading.
func TestFromJSON(t *testing.T) {
	cfg, err := FromJSON([]byte(`{"vision_model": "gpt-4.1", "max_attempts": 2}`))
	require.NoError(t, err)

	assert.Equal(t, "gpt-4.1", cfg.String("vision_model", ""))
	assert.Equal(t, 2, cfg.Int("max_attempts", 0))
}

// TestFromEnv verifies environment variables map onto config keys.
func TestFromEnv(t *testing.T) {
	t.Setenv("GENERATION_LLM_MODEL", "claude-sonnet-4")
	t.Setenv("MAX_ATTEMPTS", "5")
	t.Setenv("MMDC_TIMEOUT_SEC", "60")

	cfg := FromEnv()

	assert.Equal(t, "claude-sonnet-4", cfg.String("generation_model", ""))
	assert.Equal(t, 5, cfg.Int("max_attempts", 0))
	assert.Equal(t, 60*time.Second, cfg.Duration("mmdc_timeout", 0))
}
