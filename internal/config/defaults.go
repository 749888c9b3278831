package config

// DefaultConfig returns a Config with sensible defaults: direct Gemini
// client, English responses, fail-closed relay on port 3000.
func DefaultConfig() *Config {
	return &Config{
		Client: ClientConfig{
			Mode:     ModeDirect,
			Provider: "gemini",
			Model:    "gemini-2.5-flash",
			Language: "en",
		},
		Server: ServerConfig{
			Port:            3000,
			Provider:        "gemini",
			Model:           "gemini-2.5-flash",
			AuthPolicy:      PolicyRequired,
			AllowAllOrigins: true,
			RPM:             60,
		},
	}
}
