package domain

// Config mirrors ~/.aria/config.yaml.
type Config struct {
	ConfigFormatVersion string              `yaml:"config_format_version"`
	Preferences         Preferences         `yaml:"preferences"`
	Providers           []ProviderConfig    `yaml:"providers"`
	History             HistorySettings     `yaml:"history"`
	Memory              MemorySettings      `yaml:"memory"`
	Sync                SyncSettings        `yaml:"sync"`
	Integrations        IntegrationSettings `yaml:"integrations"`
}

// Preferences captures user level toggles.
type Preferences struct {
	DefaultProvider string `yaml:"default_provider"`
	UserID          string `yaml:"user_id"`
	TimeoutSeconds  int    `yaml:"timeout"`
}

// ProviderKind enumerates the supported LLM backends.
type ProviderKind string

const (
	ProviderGemini     ProviderKind = "gemini"
	ProviderGroq       ProviderKind = "groq"
	ProviderOpenRouter ProviderKind = "openrouter"
)

// ProviderConfig describes one LLM backend declared in the config file.
// The API key is never stored in the file; AuthEnvVar names the environment
// variable holding it. Endpoint overrides the provider's default base URL.
type ProviderConfig struct {
	Name       string       `yaml:"name"`
	Provider   ProviderKind `yaml:"provider"`
	ModelID    string       `yaml:"model_id"`
	AuthEnvVar string       `yaml:"auth_env_var"`
	Endpoint   string       `yaml:"endpoint,omitempty"`
	MaxTokens  int          `yaml:"max_tokens,omitempty"`
}

// HistorySettings configures the conversation log and its dispatch window.
type HistorySettings struct {
	MaxMessages  int `yaml:"max_messages"`
	WindowSize   int `yaml:"window_size"`
	WindowStride int `yaml:"window_stride"`
}

// MemorySettings configures the memory store and relevance search.
type MemorySettings struct {
	MaxEntries   int     `yaml:"max_entries"`
	MinRelevance float64 `yaml:"min_relevance"`
	SaveTurns    bool    `yaml:"save_turns"`
}

// SyncSettings configures the optional remote sync backend. An empty
// Endpoint disables sync entirely.
type SyncSettings struct {
	Endpoint           string `yaml:"endpoint,omitempty"`
	MinIntervalSeconds int    `yaml:"min_interval,omitempty"`
}

// ServiceKind identifies an external service integration.
type ServiceKind string

const (
	ServiceGmail    ServiceKind = "gmail"
	ServiceCalendar ServiceKind = "calendar"
	ServiceDrive    ServiceKind = "drive"
)

// IntegrationSettings lists external service hand-off endpoints. An
// integration counts as connected only when its endpoint is set.
type IntegrationSettings struct {
	Gmail    string `yaml:"gmail,omitempty"`
	Calendar string `yaml:"calendar,omitempty"`
	Drive    string `yaml:"drive,omitempty"`
}

// Connected returns the set of service kinds with a configured endpoint.
func (i IntegrationSettings) Connected() map[ServiceKind]string {
	connected := make(map[ServiceKind]string)
	if i.Gmail != "" {
		connected[ServiceGmail] = i.Gmail
	}
	if i.Calendar != "" {
		connected[ServiceCalendar] = i.Calendar
	}
	if i.Drive != "" {
		connected[ServiceDrive] = i.Drive
	}
	return connected
}

// ActiveProvider resolves the provider configuration selected by override or,
// failing that, the configured default. Returns false when nothing matches.
func (c Config) ActiveProvider(override string) (ProviderConfig, bool) {
	name := override
	if name == "" {
		name = c.Preferences.DefaultProvider
	}
	if name == "" && len(c.Providers) > 0 {
		return c.Providers[0], true
	}
	for _, p := range c.Providers {
		if p.Name == name || string(p.Provider) == name {
			return p, true
		}
	}
	return ProviderConfig{}, false
}
