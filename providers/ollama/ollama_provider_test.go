package ollama

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingTokenManager captures what the provider accounts.
type countingTokenManager struct {
	input  int
	output int
}

func (tm *countingTokenManager) UsedTokens(inputToken int, outputToken int) {
	tm.input += inputToken
	tm.output += outputToken
}

func (tm *countingTokenManager) EstimateTokens(text string) int {
	return len(text) / 4
}

func (tm *countingTokenManager) GetCurrentTokenUsage() (int, int, int) {
	return tm.input + tm.output, tm.input, tm.output
}

func (tm *countingTokenManager) DisplayTokens(string, string) {}

func (tm *countingTokenManager) ClearToken() {}

func TestGenerate_ReportsEvalCounts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"model": "llama3",
			"message": {"role": "assistant", "content": "summary"},
			"done": true,
			"prompt_eval_count": 15,
			"eval_count": 9
		}`))
	}))
	defer server.Close()

	tm := &countingTokenManager{}
	provider := NewOllamaGenerationProvider(&OllamaConfig{BaseURL: server.URL, Model: "llama3", TokenManagement: tm})

	content, err := provider.Generate(context.Background(), "describe this file")
	require.NoError(t, err)
	assert.Equal(t, "summary", content)
	assert.Equal(t, 15, tm.input)
	assert.Equal(t, 9, tm.output)
}

func TestGenerate_EstimatesTokensWhenCountsAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"model": "llama3",
			"message": {"role": "assistant", "content": "a short summary text"},
			"done": true
		}`))
	}))
	defer server.Close()

	tm := &countingTokenManager{}
	provider := NewOllamaGenerationProvider(&OllamaConfig{BaseURL: server.URL, Model: "llama3", TokenManagement: tm})

	prompt := "describe this file in detail please"
	content, err := provider.Generate(context.Background(), prompt)
	require.NoError(t, err)

	// chars/4 estimate stands in for the missing eval counts.
	assert.Equal(t, len(prompt)/4, tm.input)
	assert.Equal(t, len(content)/4, tm.output)
}
