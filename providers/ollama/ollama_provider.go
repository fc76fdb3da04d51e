package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/docuai/docuai/providers/contracts"
	"github.com/docuai/docuai/providers/models"
	ollama_models "github.com/docuai/docuai/providers/ollama/models"
	contracts2 "github.com/docuai/docuai/token_management/contracts"
)

// OllamaConfig implements the generation provider interface for Ollama.
type OllamaConfig struct {
	BaseURL         string
	Model           string
	Temperature     *float32
	TokenManagement contracts2.ITokenManagement
}

const (
	defaultBaseURL = "http://localhost:11434/api"
)

// NewOllamaGenerationProvider initializes a new Ollama provider.
func NewOllamaGenerationProvider(config *OllamaConfig) contracts.IGenerationProvider {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &OllamaConfig{
		BaseURL:         baseURL,
		Model:           config.Model,
		Temperature:     config.Temperature,
		TokenManagement: config.TokenManagement,
	}
}

// Generate sends the prompt to the Ollama chat endpoint and returns the
// full response text. The call blocks until the model finishes; there is
// no per-call timeout beyond what the caller's context imposes.
func (ollamaProvider *OllamaConfig) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := ollama_models.OllamaChatCompletionRequest{
		Model: ollamaProvider.Model,
		Messages: []ollama_models.Message{
			{Role: "user", Content: prompt},
		},
		Stream:      false,
		Temperature: ollamaProvider.Temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshalling request body: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/chat", ollamaProvider.BaseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return "", fmt.Errorf("request canceled: %v", err)
		}
		return "", fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiError models.AIError
		if err := json.Unmarshal(body, &apiError); err != nil {
			return "", fmt.Errorf("API request failed with status code '%d'", resp.StatusCode)
		}
		return "", fmt.Errorf("API request failed with status code '%d' - %s", resp.StatusCode, apiError.Error.Message)
	}

	var response ollama_models.OllamaChatCompletionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("error unmarshalling response: %v", err)
	}

	content := response.Message.Content

	if ollamaProvider.TokenManagement != nil {
		if response.PromptEvalCount > 0 {
			ollamaProvider.TokenManagement.UsedTokens(response.PromptEvalCount, response.EvalCount)
		} else {
			// Ollama omits eval counts on some responses; account an
			// estimate so the run total is never silently short.
			ollamaProvider.TokenManagement.UsedTokens(
				ollamaProvider.TokenManagement.EstimateTokens(prompt),
				ollamaProvider.TokenManagement.EstimateTokens(content),
			)
		}
	}

	return content, nil
}
