package config

import "os"

// Environment variables the pipeline recognizes, mapped to config keys.
// File-provided values are overridden by the environment when set.
var envKeys = map[string]string{
	"VISION_LLM_MODEL":           "vision_model",
	"GENERATION_LLM_MODEL":       "generation_model",
	"VISION_LLM_TEMPERATURE":     "vision_temperature",
	"GENERATION_LLM_TEMPERATURE": "generation_temperature",
	"MAX_ATTEMPTS":               "max_attempts",
	"MMDC_BIN":                   "mmdc_bin",
	"MMDC_TIMEOUT_SEC":           "mmdc_timeout",
	"CHECKPOINT_PATH":            "checkpoint_path",
}

// FromEnv builds a Config from recognized environment variables.
// Unset variables are simply absent from the result, so typed accessors
// fall back to their defaults.
func FromEnv() Config {
	m := make(map[string]any)
	for env, key := range envKeys {
		if v := os.Getenv(env); v != "" {
			m[key] = v
		}
	}
	return New(m)
}

// Load reads the optional config file at path (empty path skips the file)
// and overlays environment variables on top.
func Load(path string) (Config, error) {
	base := New(nil)
	if path != "" {
		fileCfg, err := FromFile(path)
		if err != nil {
			return Config{}, err
		}
		base = fileCfg
	}
	return base.Merge(FromEnv()), nil
}
