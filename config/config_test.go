package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", " Postgres ")
	t.Setenv("PHRASE_PROVIDER", "NONE")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000,https://jobs.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageBackendPostgres, cfg.StorageBackend)
	assert.Equal(t, PhraseProviderNone, cfg.PhraseProvider)
	assert.Equal(t, []string{"http://localhost:3000", "https://jobs.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 30, cfg.HTTPTimeoutSeconds)
	assert.Equal(t, 60, cfg.SignedURLTTLMinutes)
	assert.True(t, cfg.RunMigrations)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT_SECONDS", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			StorageBackend: StorageBackendPostgres,
			DatabaseURL:    "postgres://localhost/jobs",
			PhraseProvider: PhraseProviderNone,
			JWTSecret:      "secret",
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"valid", func(*Config) {}, ""},
		{"unknown backend", func(c *Config) { c.StorageBackend = "mysql" }, "STORAGE_BACKEND"},
		{"missing database", func(c *Config) { c.DatabaseURL = "" }, "DATABASE_URL"},
		{"firestore needs project", func(c *Config) { c.StorageBackend = StorageBackendFirestore }, "PROJECT_ID"},
		{"gemini needs project", func(c *Config) { c.PhraseProvider = PhraseProviderGemini }, "PROJECT_ID"},
		{"openai needs key", func(c *Config) { c.PhraseProvider = PhraseProviderOpenAI }, "OPENAI_API_KEY"},
		{"unknown provider", func(c *Config) { c.PhraseProvider = "claude" }, "PHRASE_PROVIDER"},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}
