package llm

import (
	"context"
	"errors"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// openAIClient implements LLMClient on the OpenAI chat completions API, or
// any compatible server when Endpoint is set.
type openAIClient struct {
	cfg    LLMConfig
	api    *openai.Client
	runner runner
}

// NewOpenAIClient creates an LLMClient backed by OpenAI chat completions.
func NewOpenAIClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	ocfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		ocfg.BaseURL = cfg.Endpoint
	}
	return &openAIClient{
		cfg: cfg,
		api: openai.NewClientWithConfig(ocfg),
		runner: runner{
			cfg:         cfg,
			provider:    ProviderOpenAI,
			observer:    observer,
			unavailable: isOpenAIUnavailable,
		},
	}, nil
}

func (c *openAIClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	return c.runner.generate(ctx, req, func(ctx context.Context, temp float64, maxTok int) (string, string, error) {
		var messages []openai.ChatCompletionMessage
		if req.SystemPrompt != "" {
			messages = append(messages, openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleSystem,
				Content: req.SystemPrompt,
			})
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: req.UserPrompt,
		})

		resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       c.cfg.Model,
			Messages:    messages,
			Temperature: float32(temp),
			MaxTokens:   maxTok,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		})
		if err != nil {
			return "", "", err
		}
		if len(resp.Choices) == 0 {
			return "", "", errors.New("openai returned no choices")
		}
		return resp.Choices[0].Message.Content, resp.Model, nil
	})
}

func (c *openAIClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_, err := c.api.ListModels(ctx)
	return err == nil
}

// isOpenAIUnavailable treats connection failures and 5xx API errors as the
// backend being down.
func isOpenAIUnavailable(err error) bool {
	if isConnectionError(err) {
		return true
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode >= 500
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode >= 500
	}
	return false
}
