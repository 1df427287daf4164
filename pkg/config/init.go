package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
)

// InitConfig creates a sample configuration file at the default location.
// Returns the path of the created file.
func InitConfig(force bool) (string, error) {
	path := GetDefaultConfigPath()
	return path, InitConfigToPath(path, force)
}

// InitConfigToPath creates a sample configuration file at the given path.
//
// The generated file contains all defaults plus a freshly generated random
// JWT signing secret, so a development server can start immediately. Unless
// force is true, an existing file is never overwritten.
func InitConfigToPath(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
		}
	}

	cfg := GetDefaultConfig()

	secret, err := generateRandomSecret()
	if err != nil {
		return fmt.Errorf("failed to generate JWT secret: %w", err)
	}
	cfg.API.Auth.Secret = secret

	return SaveConfig(cfg, path)
}

// generateRandomSecret returns a 64-character hex string (32 bytes of entropy)
// suitable as an HMAC signing key for development setups.
func generateRandomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
