package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a language model for text generation.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available checks whether the backend is reachable.
	Available(ctx context.Context) bool
}

// NewClient builds the client for cfg.Provider.
func NewClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	switch cfg.Provider {
	case ProviderOpenAI:
		return NewOpenAIClient(cfg, observer)
	case ProviderOllama, "":
		return NewOllamaClient(cfg, observer), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// callFunc performs one generation attempt against a backend.
type callFunc func(ctx context.Context, temperature float64, maxTokens int) (text, model string, err error)

// runner applies task defaults, the task timeout, retries and observation
// around a backend call. Both backends share it.
type runner struct {
	cfg      LLMConfig
	provider Provider
	observer Observer
	// unavailable reports whether err means the backend cannot be reached.
	unavailable func(err error) bool
}

func (r runner) generate(ctx context.Context, req GenerateRequest, call callFunc) (*GenerateResponse, error) {
	start := time.Now()

	taskCfg := r.cfg.Tasks[req.Task]
	temp := taskCfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := taskCfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}

	timeout := time.Duration(r.cfg.TaskTimeout(req.Task)) * time.Millisecond
	attempts := 1 + r.cfg.MaxRetries

	var lastErr error
	var timedOut bool
	tried := 0
	for i := 0; i < attempts; i++ {
		tried++
		// Each attempt gets its own deadline so a slow first try does not
		// starve the retry.
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		text, model, err := call(attemptCtx, temp, maxTok)
		attemptTimedOut := errors.Is(attemptCtx.Err(), context.DeadlineExceeded)
		cancel()

		if err == nil {
			latency := time.Since(start).Milliseconds()
			r.observer.OnCallComplete(LLMCallEvent{
				Task:      req.Task,
				Provider:  r.provider,
				Model:     r.cfg.Model,
				LatencyMs: latency,
				Attempts:  tried,
				Success:   true,
			})
			if model == "" {
				model = r.cfg.Model
			}
			return &GenerateResponse{Text: text, Model: model, LatencyMs: latency}, nil
		}
		lastErr = err
		timedOut = attemptTimedOut

		// The caller gave up; stop retrying.
		if ctx.Err() != nil {
			break
		}
	}

	var result error
	switch {
	case timedOut || errors.Is(ctx.Err(), context.DeadlineExceeded):
		result = ErrTimeout
	case r.unavailable != nil && r.unavailable(lastErr):
		result = ErrUnavailable
	default:
		result = fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
	}

	r.observer.OnCallComplete(LLMCallEvent{
		Task:      req.Task,
		Provider:  r.provider,
		Model:     r.cfg.Model,
		LatencyMs: time.Since(start).Milliseconds(),
		Attempts:  tried,
		Success:   false,
		ErrorCode: errorCode(result),
	})
	return nil, result
}

// ollamaClient implements LLMClient using the Ollama HTTP API.
type ollamaClient struct {
	cfg    LLMConfig
	http   *http.Client
	runner runner
}

// NewOllamaClient creates an LLMClient that talks to a local Ollama instance.
func NewOllamaClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &ollamaClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		runner: runner{
			cfg:         cfg,
			provider:    ProviderOllama,
			observer:    observer,
			unavailable: isConnectionError,
		},
	}
}

// ollamaRequest is the JSON body sent to POST /api/generate.
type ollamaRequest struct {
	Model   string        `json:"model"`
	System  string        `json:"system,omitempty"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Format  string        `json:"format,omitempty"`
	Options ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// ollamaResponse is the JSON body returned by POST /api/generate (non-streaming).
type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

func (c *ollamaClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	return c.runner.generate(ctx, req, func(ctx context.Context, temp float64, maxTok int) (string, string, error) {
		resp, err := c.doRequest(ctx, ollamaRequest{
			Model:  c.cfg.Model,
			System: req.SystemPrompt,
			Prompt: req.UserPrompt,
			Stream: false,
			Format: "json",
			Options: ollamaOptions{
				Temperature: temp,
				NumPredict:  maxTok,
			},
		})
		if err != nil {
			return "", "", err
		}
		return resp.Response, resp.Model, nil
	})
}

func (c *ollamaClient) doRequest(ctx context.Context, body ollamaRequest) (*ollamaResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := c.cfg.Endpoint + "/api/generate"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	var resp ollamaResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &resp, nil
}

func (c *ollamaClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	url := c.cfg.Endpoint + "/api/tags"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case errors.Is(err, ErrMissingAPIKey):
		return "MISSING_API_KEY"
	default:
		return "UNKNOWN"
	}
}
