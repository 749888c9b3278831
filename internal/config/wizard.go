package config

import (
	"fmt"

	"github.com/manifoldco/promptui"

	"github.com/exply-app/exply/internal/prompt"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. The caller decides where to save it.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to exply! Let's configure your client.")
	fmt.Println()

	cfg := DefaultConfig()

	modePrompt := promptui.Select{
		Label: "How should explanations be fetched",
		Items: []string{"relay (recommended; the server holds the API key)", "direct (local API key)"},
	}
	modeIdx, _, err := modePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("mode selection: %w", err)
	}

	if modeIdx == 0 {
		cfg.Client.Mode = ModeRelay
		urlPrompt := promptui.Prompt{
			Label:   "Relay URL",
			Default: "http://localhost:3000",
		}
		relayURL, err := urlPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("relay URL: %w", err)
		}
		cfg.Client.RelayURL = relayURL
	} else {
		cfg.Client.Mode = ModeDirect
		providerPrompt := promptui.Select{
			Label: "Select generative provider",
			Items: []string{"gemini", "openai"},
		}
		_, provider, err := providerPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("provider selection: %w", err)
		}
		cfg.Client.Provider = provider
		if provider == "openai" {
			cfg.Client.Model = ""
		}
		if key := APIKey(provider); key == "" {
			fmt.Printf("\nNote: set %s before running explanations.\n", APIKeyEnvVar(provider))
		}
	}

	langPrompt := promptui.Select{
		Label: "Response language",
		Items: prompt.LanguageCodes,
		Size:  len(prompt.LanguageCodes),
	}
	_, language, err := langPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("language selection: %w", err)
	}
	cfg.Client.Language = language

	return cfg, nil
}
