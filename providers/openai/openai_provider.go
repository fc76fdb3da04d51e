package openai

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
	openai_models "github.com/docuai/docuai/providers/openai/models"
	contracts2 "github.com/docuai/docuai/token_management/contracts"
)

// OpenAIConfig implements the generation provider interface for OpenAI
// and OpenAI-compatible endpoints.
type OpenAIConfig struct {
	BaseURL         string
	Model           string
	Temperature     *float32
	ApiKey          string
	MaxTokens       int
	TokenManagement contracts2.ITokenManagement
}

const (
	defaultBaseURL = "https://api.openai.com/v1"
)

// NewOpenAIGenerationProvider initializes a new OpenAI provider.
func NewOpenAIGenerationProvider(config *OpenAIConfig) contracts.IGenerationProvider {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &OpenAIConfig{
		BaseURL:         baseURL,
		Model:           config.Model,
		Temperature:     config.Temperature,
		ApiKey:          config.ApiKey,
		MaxTokens:       config.MaxTokens,
		TokenManagement: config.TokenManagement,
	}
}

// Generate sends the prompt to the chat completions endpoint and returns
// the first choice's text.
func (openAIProvider *OpenAIConfig) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := openai_models.OpenAIChatCompletionRequest{
		Model: openAIProvider.Model,
		Messages: []openai_models.Message{
			{Role: "user", Content: prompt},
		},
		Stream:      false,
		Temperature: openAIProvider.Temperature,
		MaxTokens:   openAIProvider.MaxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshalling request body: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/chat/completions", openAIProvider.BaseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if openAIProvider.ApiKey != "" {
		req.Header.Set("Authorization", "Bearer "+openAIProvider.ApiKey)
	}

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

	var response openai_models.OpenAIChatCompletionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("error unmarshalling response: %v", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from API")
	}

	content := response.Choices[0].Message.Content

	if openAIProvider.TokenManagement != nil {
		if response.Usage.TotalTokens > 0 {
			openAIProvider.TokenManagement.UsedTokens(response.Usage.PromptTokens, response.Usage.CompletionTokens)
		} else {
			// Some compatible endpoints omit usage; account an estimate
			// so the run total is never silently short.
			openAIProvider.TokenManagement.UsedTokens(
				openAIProvider.TokenManagement.EstimateTokens(prompt),
				openAIProvider.TokenManagement.EstimateTokens(content),
			)
		}
	}

	return content, nil
}
