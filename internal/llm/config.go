package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	// TaskIntent turns a free-text outing description into a request.
	TaskIntent TaskType = "intent"
)

// Provider selects the backend that serves generation calls.
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderOpenAI Provider = "openai"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled             bool
	LogCalls            bool
	Provider            Provider
	Endpoint            string
	Model               string
	APIKey              string
	TimeoutMs           int
	MaxRetries          int
	ConfidenceThreshold float64
	Tasks               map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// LLM is disabled by default.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:             false,
		LogCalls:            false,
		Provider:            ProviderOllama,
		Endpoint:            "http://localhost:11434",
		Model:               "llama3.2",
		TimeoutMs:           10000,
		MaxRetries:          1,
		ConfidenceThreshold: 0.6,
		Tasks: map[TaskType]TaskConfig{
			TaskIntent: {Temperature: 0.1, MaxTokens: 512, TimeoutMs: 10000},
		},
	}
}

// defaultOpenAIModel is used when the provider is openai and no model is set.
const defaultOpenAIModel = "gpt-4o-mini"

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("OUTING_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("OUTING_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("OUTING_LLM_PROVIDER"); v != "" {
		switch p := Provider(strings.ToLower(v)); p {
		case ProviderOllama, ProviderOpenAI:
			cfg.Provider = p
		}
	}
	if cfg.Provider == ProviderOpenAI {
		cfg.Endpoint = ""
		cfg.Model = defaultOpenAIModel
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if v := os.Getenv("OUTING_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("OUTING_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("OUTING_LLM_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("OUTING_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("OUTING_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("OUTING_LLM_CONFIDENCE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			cfg.ConfidenceThreshold = f
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskIntent, "OUTING_LLM_INTENT_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
