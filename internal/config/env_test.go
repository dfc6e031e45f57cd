package config

import "testing"

func TestExpandEnv(t *testing.T) {
	t.Setenv("TEST_LETTERBOX_VAR", "test_value")
	t.Setenv("TEST_LETTERBOX_EMPTY", "")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no variables", "plain text", "plain text"},
		{"braced", "prefix ${TEST_LETTERBOX_VAR} suffix", "prefix test_value suffix"},
		{"simple", "prefix $TEST_LETTERBOX_VAR suffix", "prefix test_value suffix"},
		{"unset", "[${UNSET_LETTERBOX_12345}]", "[]"},
		{"unset with default", "${UNSET_LETTERBOX_12345:-fallback}", "fallback"},
		{"empty uses default", "${TEST_LETTERBOX_EMPTY:-fallback}", "fallback"},
		{"set ignores default", "${TEST_LETTERBOX_VAR:-fallback}", "test_value"},
		{"empty default", "${UNSET_LETTERBOX_12345:-}", ""},
		{"multiple", "$TEST_LETTERBOX_VAR/${TEST_LETTERBOX_VAR}", "test_value/test_value"},
		{"lone dollar", "cost: $5", "cost: $5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandEnv(tt.input); got != tt.expected {
				t.Errorf("ExpandEnv(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExpandEnvConfig(t *testing.T) {
	t.Setenv("TEST_LETTERBOX_VAR", "x")

	cfg := DefaultConfig()
	cfg.Window.Title = "game $TEST_LETTERBOX_VAR"
	cfg.Text.Template = []string{"${TEST_LETTERBOX_VAR}1", "plain"}

	ExpandEnvConfig(&cfg)

	if cfg.Window.Title != "game x" {
		t.Errorf("title = %q, want %q", cfg.Window.Title, "game x")
	}
	if cfg.Text.Template[0] != "x1" || cfg.Text.Template[1] != "plain" {
		t.Errorf("text = %q", cfg.Text.Template)
	}

	ExpandEnvConfig(nil)
}
