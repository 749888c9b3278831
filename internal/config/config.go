// Package config loads and validates exply configuration from
// .exply.yml with EXPLY_* environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// DefaultPath is the conventional config file location.
const DefaultPath = ".exply.yml"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (EXPLY_SERVER_PORT -> server.port).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Only the first underscore separates the section from the field
	// name; the rest belong to the field (EXPLY_SERVER_AUTH_POLICY ->
	// server.auth_policy).
	if err := k.Load(env.Provider("EXPLY_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "EXPLY_")), "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	switch c.Client.Mode {
	case ModeDirect, ModeRelay:
	default:
		return fmt.Errorf("invalid client mode %q: must be direct or relay", c.Client.Mode)
	}

	if c.Client.Mode == ModeRelay && c.Client.RelayURL == "" {
		return fmt.Errorf("relay mode requires client.relay_url")
	}
	if c.Client.Mode == ModeDirect && c.Client.Provider == "" {
		return fmt.Errorf("direct mode requires client.provider")
	}

	switch c.Server.AuthPolicy {
	case PolicyRequired, PolicyOpen:
	default:
		return fmt.Errorf("invalid auth_policy %q: must be required or open", c.Server.AuthPolicy)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Server.RPM < 0 {
		return fmt.Errorf("rpm must be non-negative")
	}
	return nil
}

// APIKeyEnvVar returns the conventional environment variable carrying
// the API key for a provider.
func APIKeyEnvVar(provider string) string {
	switch provider {
	case "gemini", "google":
		return "GEMINI_API_KEY"
	case "openai":
		return "OPENAI_API_KEY"
	default:
		return ""
	}
}

// APIKey resolves the provider API key from the environment.
func APIKey(provider string) string {
	if name := APIKeyEnvVar(provider); name != "" {
		return os.Getenv(name)
	}
	return ""
}
