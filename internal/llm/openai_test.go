package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAITestConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Provider = ProviderOpenAI
	cfg.Endpoint = endpoint + "/v1"
	cfg.Model = "gpt-4o-mini"
	cfg.APIKey = "sk-test"
	cfg.MaxRetries = 0
	return cfg
}

func chatCompletionBody(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{"index": 0, "message": map[string]any{"role": "assistant", "content": content}, "finish_reason": "stop"}},
	}
}

func TestOpenAIClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o-mini", body.Model)
		require.Len(t, body.Messages, 2)
		assert.Equal(t, "system", body.Messages[0].Role)
		assert.Equal(t, "user", body.Messages[1].Role)
		assert.Equal(t, "dinner in Lisbon", body.Messages[1].Content)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletionBody(`{"city":"Lisbon"}`))
	}))
	defer srv.Close()

	var captured LLMCallEvent
	client, err := NewOpenAIClient(openAITestConfig(srv.URL), &captureObserver{fn: func(e LLMCallEvent) { captured = e }})
	require.NoError(t, err)

	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskIntent,
		SystemPrompt: "extract",
		UserPrompt:   "dinner in Lisbon",
	})

	require.NoError(t, err)
	assert.Equal(t, `{"city":"Lisbon"}`, resp.Text)
	assert.Equal(t, "gpt-4o-mini", resp.Model)
	assert.True(t, captured.Success)
	assert.Equal(t, ProviderOpenAI, captured.Provider)
}

func TestOpenAIClient_Generate_ServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
	}))
	defer srv.Close()

	client, err := NewOpenAIClient(openAITestConfig(srv.URL), NoopObserver{})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), GenerateRequest{Task: TaskIntent, UserPrompt: "x"})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestOpenAIClient_Generate_BadRequestExhaustsRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"bad model","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	client, err := NewOpenAIClient(openAITestConfig(srv.URL), NoopObserver{})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), GenerateRequest{Task: TaskIntent, UserPrompt: "x"})
	assert.ErrorIs(t, err, ErrRetryExhausted)
}

func TestNewOpenAIClient_RequiresAPIKey(t *testing.T) {
	cfg := openAITestConfig("http://unused")
	cfg.APIKey = ""
	_, err := NewOpenAIClient(cfg, nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNewClient_SelectsProvider(t *testing.T) {
	c, err := NewClient(DefaultConfig(), nil)
	require.NoError(t, err)
	assert.IsType(t, &ollamaClient{}, c)

	c, err = NewClient(openAITestConfig("http://unused"), nil)
	require.NoError(t, err)
	assert.IsType(t, &openAIClient{}, c)

	cfg := DefaultConfig()
	cfg.Provider = "other"
	_, err = NewClient(cfg, nil)
	assert.Error(t, err)
}
