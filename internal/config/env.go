// Package config provides configuration parsing for go-letterbox.
// This file implements environment variable expansion support for configuration values.
package config

import (
	"os"
	"regexp"
	"strings"
)

// envVarPattern matches ${VAR}, ${VAR:-default} and $VAR references.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([a-zA-Z_][a-zA-Z0-9_]*)`)

// ExpandEnv expands environment variable references in a string:
//   - ${VAR_NAME} is replaced with the value of VAR_NAME
//   - ${VAR_NAME:-default} falls back to "default" when VAR_NAME is unset or empty
//   - $VAR_NAME is replaced with the value of VAR_NAME
//
// Unset variables without a default expand to the empty string.
func ExpandEnv(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if strings.HasPrefix(match, "${") {
			inner := match[2 : len(match)-1]
			if name, def, ok := strings.Cut(inner, ":-"); ok {
				if val := os.Getenv(name); val != "" {
					return val
				}
				return def
			}
			return os.Getenv(inner)
		}
		return os.Getenv(match[1:])
	})
}

// ExpandEnvConfig expands environment references in the window title and
// the HUD text lines. It modifies cfg in place.
func ExpandEnvConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.Window.Title = ExpandEnv(cfg.Window.Title)
	for i, line := range cfg.Text.Template {
		cfg.Text.Template[i] = ExpandEnv(line)
	}
}
