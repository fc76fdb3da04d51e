package providers

// AIProviderConfig holds the settings for the chat AI provider.
type AIProviderConfig struct {
	Provider    string   `mapstructure:"provider"`
	BaseURL     string   `mapstructure:"base_url"`
	Model       string   `mapstructure:"model"`
	Temperature *float32 `mapstructure:"temperature"`
	ApiKey      string   `mapstructure:"api_key"`
	MaxTokens   int      `mapstructure:"max_tokens"`
}
