package config

import (
	"fmt"
	"slices"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Config for issues. Returns nil if valid.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		issues = append(issues, ValidationIssue{
			Path:    "server.port",
			Message: fmt.Sprintf("port must be 0-65535, got %d", cfg.Server.Port),
		})
	}

	validBinds := []string{"loopback", "lan", "custom"}
	if cfg.Server.Bind != "" && !slices.Contains(validBinds, cfg.Server.Bind) {
		issues = append(issues, ValidationIssue{
			Path:    "server.bind",
			Message: fmt.Sprintf("must be one of %v, got %q", validBinds, cfg.Server.Bind),
		})
	}
	if cfg.Server.Bind == "custom" && cfg.Server.CustomBindHost == "" {
		issues = append(issues, ValidationIssue{
			Path:    "server.customBindHost",
			Message: "required when bind is \"custom\"",
		})
	}

	if cfg.Gemini.Temperature != nil {
		t := *cfg.Gemini.Temperature
		if t < 0 || t > 2 {
			issues = append(issues, ValidationIssue{
				Path:    "gemini.temperature",
				Message: fmt.Sprintf("must be 0-2, got %g", t),
			})
		}
	}

	if cfg.Sheets.SpreadsheetID != "" && cfg.Sheets.CredentialsFile == "" {
		issues = append(issues, ValidationIssue{
			Path:    "sheets.credentialsFile",
			Message: "required when a spreadsheet is configured",
		})
	}

	validLogLevels := []string{"silent", "fatal", "error", "warn", "info", "debug"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}

	if cfg.Session.IdleMinutes < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "session.idleMinutes",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.Session.IdleMinutes),
		})
	}

	return issues
}
