package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		if old, ok := os.LookupEnv(key); ok {
			require.NoError(t, os.Unsetenv(key))
			t.Cleanup(func() { os.Setenv(key, old) })
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetenv(t, "PORT", "STORE_DRIVER", "LLM_PROVIDER", "GOOGLE_MODEL")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, LLMProviderGoogle, cfg.LLMProvider)
	assert.Equal(t, "gemini-2.5-flash", cfg.GoogleModel)
	assert.Equal(t, ":5000", cfg.Address())
}

func TestLoadRejectsBadNumber(t *testing.T) {
	t.Setenv("PORT", "five")
	_, err := Load()
	assert.Error(t, err)
}

func validConfig() Config {
	return Config{
		Port:         5000,
		StoreDriver:  StoreDriverFile,
		ClosetFile:   "closet.json",
		LLMProvider:  LLMProviderGoogle,
		GoogleAPIKey: "key",
		LLMMaxTokens: 2000,
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"postgres without url", func(c *Config) { c.StoreDriver = StoreDriverPostgres }, "DATABASE_URL"},
		{"unknown driver", func(c *Config) { c.StoreDriver = "sqlite" }, "STORE_DRIVER"},
		{"google without key", func(c *Config) { c.GoogleAPIKey = "" }, "GOOGLE_API_KEY"},
		{"openai without key", func(c *Config) { c.LLMProvider = LLMProviderOpenAI }, "OPENAI_API_KEY"},
		{"unknown provider", func(c *Config) { c.LLMProvider = "claude" }, "LLM_PROVIDER"},
		{"bad port", func(c *Config) { c.Port = 0 }, "PORT"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestStorageEnabled(t *testing.T) {
	cfg := validConfig()
	assert.False(t, cfg.StorageEnabled())
	cfg.R2AccountID, cfg.R2AccessKeyID, cfg.R2AccessKeySecret, cfg.R2BucketName = "a", "b", "c", "d"
	assert.True(t, cfg.StorageEnabled())
}
