package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTokenManager captures what the provider accounts.
type recordingTokenManager struct {
	mu     sync.Mutex
	input  int
	output int
}

func (tm *recordingTokenManager) UsedTokens(inputToken int, outputToken int) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.input += inputToken
	tm.output += outputToken
}

func (tm *recordingTokenManager) EstimateTokens(text string) int {
	return len(text) / 4
}

func (tm *recordingTokenManager) GetCurrentTokenUsage() (int, int, int) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return tm.input + tm.output, tm.input, tm.output
}

func (tm *recordingTokenManager) DisplayTokens(string, string) {}

func (tm *recordingTokenManager) ClearToken() {}

func chatServer(t *testing.T, responseBody string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(responseBody))
	}))
}

func TestGenerate_ReportsUsageFromResponse(t *testing.T) {
	server := chatServer(t, `{
		"choices": [{"message": {"role": "assistant", "content": "summary"}}],
		"usage": {"prompt_tokens": 12, "completion_tokens": 7, "total_tokens": 19}
	}`)
	defer server.Close()

	tm := &recordingTokenManager{}
	provider := NewOpenAIGenerationProvider(&OpenAIConfig{BaseURL: server.URL, Model: "gpt-4o", TokenManagement: tm})

	content, err := provider.Generate(context.Background(), "describe this file")
	require.NoError(t, err)
	assert.Equal(t, "summary", content)
	assert.Equal(t, 12, tm.input)
	assert.Equal(t, 7, tm.output)
}

func TestGenerate_EstimatesTokensWhenUsageAbsent(t *testing.T) {
	server := chatServer(t, `{
		"choices": [{"message": {"role": "assistant", "content": "a short summary text"}}]
	}`)
	defer server.Close()

	tm := &recordingTokenManager{}
	provider := NewOpenAIGenerationProvider(&OpenAIConfig{BaseURL: server.URL, Model: "gpt-4o", TokenManagement: tm})

	prompt := "describe this file in detail please"
	content, err := provider.Generate(context.Background(), prompt)
	require.NoError(t, err)

	// chars/4 estimate stands in for the missing usage block.
	assert.Equal(t, len(prompt)/4, tm.input)
	assert.Equal(t, len(content)/4, tm.output)
}

func TestGenerate_ErrorStatusSurfacesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "invalid api key"}}`))
	}))
	defer server.Close()

	provider := NewOpenAIGenerationProvider(&OpenAIConfig{BaseURL: server.URL, Model: "gpt-4o"})

	_, err := provider.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}
