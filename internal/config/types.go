package config

// ClientMode selects how explanations are fetched. The two modes are
// mutually exclusive deployment configurations chosen once at startup,
// not runtime branches.
type ClientMode string

const (
	// ModeDirect builds prompts locally and calls the generative API
	// with a locally held key.
	ModeDirect ClientMode = "direct"
	// ModeRelay sends structured requests to a relay that holds the
	// key server-side.
	ModeRelay ClientMode = "relay"
)

// AuthPolicy is the relay's deployment-time stance when deciding whether
// requests must carry a verified bearer token.
type AuthPolicy string

const (
	// PolicyRequired fails closed: without a configured identity
	// provider every request is rejected.
	PolicyRequired AuthPolicy = "required"
	// PolicyOpen fails open: requests are served unauthenticated.
	PolicyOpen AuthPolicy = "open"
)

// Config is the top-level exply configuration (.exply.yml).
type Config struct {
	Client ClientConfig `yaml:"client" koanf:"client"`
	Server ServerConfig `yaml:"server" koanf:"server"`
}

// ClientConfig configures the explanation client and session behavior.
type ClientConfig struct {
	Mode     ClientMode `yaml:"mode" koanf:"mode"`
	Provider string     `yaml:"provider" koanf:"provider"`
	Model    string     `yaml:"model" koanf:"model"`
	RelayURL string     `yaml:"relay_url" koanf:"relay_url"`
	// Language is the stored response language code. Unsupported codes
	// are kept as-is here; the fallback to English happens at
	// prompt-build time.
	Language string `yaml:"language" koanf:"language"`
	// BlockedDomains are glob patterns ('.'-separated, e.g.
	// "*.bank.example") on which the trigger is suppressed.
	BlockedDomains []string `yaml:"blocked_domains" koanf:"blocked_domains"`
}

// ServerConfig configures the relay service.
type ServerConfig struct {
	Port               int        `yaml:"port" koanf:"port"`
	Provider           string     `yaml:"provider" koanf:"provider"`
	Model              string     `yaml:"model" koanf:"model"`
	AuthPolicy         AuthPolicy `yaml:"auth_policy" koanf:"auth_policy"`
	SupabaseURL        string     `yaml:"supabase_url" koanf:"supabase_url"`
	SupabaseServiceKey string     `yaml:"supabase_service_key" koanf:"supabase_service_key"`
	UsageDB            string     `yaml:"usage_db" koanf:"usage_db"`
	AllowAllOrigins    bool       `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	RPM                int        `yaml:"rpm" koanf:"rpm"`
}
