package config

import (
	"strings"
	"testing"

	"github.com/morada-labs/morada/internal/api"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	err := Validate(cfg)
	if err != nil {
		t.Errorf("Expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Level = "INVALID"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for invalid log level")
	}
	if !strings.Contains(err.Error(), "oneof") {
		t.Errorf("Expected 'oneof' validation error, got: %v", err)
	}
}

func TestValidate_InvalidLogFormat(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Format = "xml"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for invalid log format")
	}
}

func TestValidate_InvalidAPIPort(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.API.Port = 70000 // Out of range

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for port out of range")
	}
	if !strings.Contains(err.Error(), "max") {
		t.Errorf("Expected 'max' validation error, got: %v", err)
	}
}

func TestValidate_InvalidPolicyAccess(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.API.Auth.Rules = []api.RuleConfig{
		{Method: "GET", Pattern: "/listings/**", Access: "everyone"},
	}

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for invalid rule access value")
	}
}

func TestValidate_WeakSecret(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.API.Auth.Secret = "too-short"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for weak JWT secret")
	}
	if !strings.Contains(err.Error(), "32") {
		t.Errorf("Expected error to mention minimum length, got: %v", err)
	}
}

func TestValidate_MissingSecretIsAllowed(t *testing.T) {
	// A missing secret is not a config error: it may come from the
	// environment, and the API server enforces its presence at startup.
	cfg := GetDefaultConfig()
	cfg.API.Auth.Secret = ""

	if err := Validate(cfg); err != nil {
		t.Errorf("Expected missing secret to pass config validation, got: %v", err)
	}
}

func TestValidate_LogLevelNormalization(t *testing.T) {
	// Validation accepts both uppercase and lowercase log levels.
	testCases := []string{"info", "INFO", "debug", "DEBUG", "warn", "WARN", "error", "ERROR"}

	for _, level := range testCases {
		cfg := GetDefaultConfig()
		cfg.Logging.Level = level

		if err := Validate(cfg); err != nil {
			t.Errorf("Validation failed for level %q: %v", level, err)
		}
	}
}
