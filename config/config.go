package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds the service configuration. Collaborator addresses are read
// once at process start; nothing re-reads the environment afterwards.
type Config struct {
	IdentityURL          string        // Identity authority base URL
	StorageURL           string        // Backing resource service base URL
	Port                 string        // Service port
	UpstreamTimeout      time.Duration // Bound on every outbound call
	InternalSecret       string        // Shared secret for /internal endpoints
	SystemUser           string        // Username minted into system tokens
	BackendTokenSecret   string        // Secret for signing backend JWT tokens
	BackendTokenIssuer   string        // JWT issuer claim
	BackendTokenAudience string        // JWT audience claim
	BackendTokenTTL      time.Duration // JWT token TTL
}

// Load reads configuration from environment variables with defaults usable in
// the local/dev topology. defaultPort is the service's port when PORT is not
// set.
func Load(defaultPort string) (*Config, error) {
	config := &Config{
		IdentityURL:          getEnv("IDENTITY_URL", "http://identity:8001"),
		StorageURL:           getEnv("STORAGE_URL", "http://storage:8002"),
		Port:                 getEnv("PORT", defaultPort),
		UpstreamTimeout:      5 * time.Second,
		InternalSecret:       getEnv("INTERNAL_SECRET", ""),
		SystemUser:           getEnv("SYSTEM_USER", "system"),
		BackendTokenSecret:   getEnv("BACKEND_TOKEN_SECRET", ""),
		BackendTokenIssuer:   getEnv("BACKEND_TOKEN_ISSUER", "mailhub"),
		BackendTokenAudience: getEnv("BACKEND_TOKEN_AUDIENCE", "mailhub-backend"),
		BackendTokenTTL:      5 * time.Minute,
	}

	// Parse UPSTREAM_TIMEOUT if provided
	if timeoutStr := os.Getenv("UPSTREAM_TIMEOUT"); timeoutStr != "" {
		duration, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT format: %w", err)
		}
		config.UpstreamTimeout = duration
	}

	// Parse BACKEND_TOKEN_TTL if provided
	if ttlStr := os.Getenv("BACKEND_TOKEN_TTL"); ttlStr != "" {
		duration, err := time.ParseDuration(ttlStr)
		if err != nil {
			return nil, fmt.Errorf("invalid BACKEND_TOKEN_TTL format: %w", err)
		}
		config.BackendTokenTTL = duration
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.IdentityURL == "" {
		return fmt.Errorf("IDENTITY_URL cannot be empty")
	}

	if c.StorageURL == "" {
		return fmt.Errorf("STORAGE_URL cannot be empty")
	}

	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
	}

	return nil
}

// getEnv retrieves an environment variable or returns a fallback value
func getEnv(key, fallback string) string {
	// Check for _FILE suffix
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
