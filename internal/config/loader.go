package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR_NAME} patterns in strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars replaces ${VAR} patterns with environment variable values.
// Unset variables are left unchanged.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

// expandSensitiveFields processes environment variable references in
// credential fields so keys can be stored as ${ENV_VAR} in the file.
func expandSensitiveFields(cfg *Config) {
	cfg.Gemini.APIKey = expandEnvVars(cfg.Gemini.APIKey)
	cfg.Sheets.SpreadsheetID = expandEnvVars(cfg.Sheets.SpreadsheetID)
	cfg.Sheets.CredentialsFile = expandEnvVars(cfg.Sheets.CredentialsFile)
}

// Load reads the config file, applies defaults and environment overrides,
// and returns a merged Config. A missing file produces defaults only.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	expandSensitiveFields(&cfg)
	return cfg, nil
}

// applyEnvOverrides reads UPLIFTR_* environment variables over config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("UPLIFTR_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("UPLIFTR_BIND"); v != "" {
		cfg.Server.Bind = v
	}
	if v := os.Getenv("UPLIFTR_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" && cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = v
	}
	if v := os.Getenv("SHEET_ID"); v != "" && cfg.Sheets.SpreadsheetID == "" {
		cfg.Sheets.SpreadsheetID = v
	}
}
