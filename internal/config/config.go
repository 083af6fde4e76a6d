// Package config loads and validates the Upliftr server configuration.
package config

// Config is the root configuration for the Upliftr backend.
type Config struct {
	Server   ServerConfig   `yaml:"server,omitempty"`
	Gemini   GeminiConfig   `yaml:"gemini,omitempty"`
	Sheets   SheetsConfig   `yaml:"sheets,omitempty"`
	Contact  ContactConfig  `yaml:"contact,omitempty"`
	Session  SessionConfig  `yaml:"session,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
}

// ServerConfig controls the HTTP/WebSocket server.
type ServerConfig struct {
	Port           int      `yaml:"port,omitempty"`
	Bind           string   `yaml:"bind,omitempty"` // "loopback" | "lan" | "custom"
	CustomBindHost string   `yaml:"customBindHost,omitempty"`
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty"`
}

// GeminiConfig configures the language-model gateway.
type GeminiConfig struct {
	APIKey      string   `yaml:"apiKey,omitempty"`
	Model       string   `yaml:"model,omitempty"`
	Temperature *float64 `yaml:"temperature,omitempty"`
}

// SheetsConfig configures the Google Sheets enquiry mirror.
// An empty SpreadsheetID disables the mirror.
type SheetsConfig struct {
	SpreadsheetID   string `yaml:"spreadsheetId,omitempty"`
	Range           string `yaml:"range,omitempty"`
	CredentialsFile string `yaml:"credentialsFile,omitempty"`
}

// ContactConfig configures contact-form handling.
type ContactConfig struct {
	NotifyEmail string `yaml:"notifyEmail,omitempty"`
}

// SessionConfig defines chat session behavior.
type SessionConfig struct {
	IdleMinutes int `yaml:"idleMinutes,omitempty"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"` // "silent" | "fatal" | "error" | "warn" | "info" | "debug"
}

// Defaults returns a Config with all defaults applied.
func Defaults() Config {
	var cfg Config
	applyDefaults(&cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8787
	}
	if cfg.Server.Bind == "" {
		cfg.Server.Bind = "loopback"
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-3-flash-preview"
	}
	if cfg.Gemini.Temperature == nil {
		t := 0.7
		cfg.Gemini.Temperature = &t
	}
	if cfg.Sheets.Range == "" {
		cfg.Sheets.Range = "Leads!A:G"
	}
	if cfg.Session.IdleMinutes == 0 {
		cfg.Session.IdleMinutes = 30
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// ConfigError is a configuration load/parse failure.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}
