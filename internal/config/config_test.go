package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{
			name: "Development defaults pass",
			config: Config{
				Port:      "8190",
				JWTSecret: "your-secret-key-change-in-production",
				Env:       "development",
			},
			expectError: false,
		},
		{
			name: "Missing port",
			config: Config{
				JWTSecret: "secret",
			},
			expectError: true,
		},
		{
			name: "Missing JWT secret",
			config: Config{
				Port: "8190",
			},
			expectError: true,
		},
		{
			name: "Production with default JWT secret",
			config: Config{
				Port:      "8190",
				JWTSecret: "your-secret-key-change-in-production",
				Env:       "production",
			},
			expectError: true,
		},
		{
			name: "Production with short JWT secret",
			config: Config{
				Port:       "8190",
				JWTSecret:  "short",
				DBPassword: "strong-enough-password",
				DBSSLMode:  "require",
				Env:        "production",
			},
			expectError: true,
		},
		{
			name: "Production with disabled SSL",
			config: Config{
				Port:       "8190",
				JWTSecret:  "secure-secret-at-least-32-chars-long",
				DBPassword: "strong-enough-password",
				DBSSLMode:  "disable",
				Env:        "production",
			},
			expectError: true,
		},
		{
			name: "Production fully configured",
			config: Config{
				Port:       "8190",
				JWTSecret:  "secure-secret-at-least-32-chars-long",
				DBPassword: "strong-enough-password",
				DBSSLMode:  "require",
				Env:        "production",
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	defer viper.Reset()
	defer os.Unsetenv("PORT")
	defer os.Unsetenv("APP_ENV")

	os.Setenv("PORT", "9999")
	os.Setenv("APP_ENV", "test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "test", cfg.Env)
	// Defaults still fill the rest.
	assert.Equal(t, "localhost:6379", cfg.RedisURL)
}
