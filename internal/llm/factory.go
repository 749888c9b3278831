package llm

import "fmt"

// NewProvider creates a provider by name. Supported: "gemini", "openai".
func NewProvider(providerType, apiKey, model string) (Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("no API key configured for provider %q", providerType)
	}

	switch providerType {
	case "gemini", "google":
		return NewGeminiProvider(apiKey, model), nil
	case "openai":
		return NewOpenAIProvider(apiKey, model), nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}
