package providers

import (
	"fmt"

	"github.com/docuai/docuai/providers/contracts"
	"github.com/docuai/docuai/providers/ollama"
	"github.com/docuai/docuai/providers/openai"
	contracts2 "github.com/docuai/docuai/token_management/contracts"
)

// GenerationProviderFactory creates the configured generation provider.
func GenerationProviderFactory(config *AIProviderConfig, tm contracts2.ITokenManagement) (contracts.IGenerationProvider, error) {
	switch config.Provider {
	case "ollama":
		return ollama.NewOllamaGenerationProvider(&ollama.OllamaConfig{
			BaseURL:         config.BaseURL,
			Model:           config.Model,
			Temperature:     config.Temperature,
			TokenManagement: tm,
		}), nil
	case "openai", "azure-openai", "deepseek", "openrouter", "":
		return openai.NewOpenAIGenerationProvider(&openai.OpenAIConfig{
			BaseURL:         config.BaseURL,
			Model:           config.Model,
			Temperature:     config.Temperature,
			ApiKey:          config.ApiKey,
			MaxTokens:       config.MaxTokens,
			TokenManagement: tm,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", config.Provider)
	}
}
