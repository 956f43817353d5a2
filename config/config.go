package config

import (
	"fmt"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverFile     = "file"

	LLMProviderGoogle = "google"
	LLMProviderOpenAI = "openai"
)

type Config struct {
	Env  string `env:"ENV" envDefault:"local"`
	Port int    `env:"PORT" envDefault:"5000"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"`
	DatabaseURL string `env:"DATABASE_URL"`
	ClosetFile  string `env:"CLOSET_FILE" envDefault:"closet.json"`

	LLMProvider   string `env:"LLM_PROVIDER" envDefault:"google"`
	GoogleAPIKey  string `env:"GOOGLE_API_KEY"`
	GoogleModel   string `env:"GOOGLE_MODEL" envDefault:"gemini-2.5-flash"`
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	LLMMaxTokens  int    `env:"LLM_MAX_TOKENS" envDefault:"2000"`

	JWTSecret string `env:"JWT_SECRET"`
	SentryDSN string `env:"SENTRY_DSN"`

	R2AccountID       string `env:"R2_ACCOUNT_ID"`
	R2AccessKeyID     string `env:"R2_ACCESS_KEY_ID"`
	R2AccessKeySecret string `env:"R2_ACCESS_KEY_SECRET"`
	R2BucketName      string `env:"R2_BUCKET_NAME"`

	// redis address for asynq, empty disables auto labelling
	AsyncBrokerAddress string `env:"ASYNC_BROKER_ADDRESS"`

	// requests per second per client ip
	RateLimit float64 `env:"RATE_LIMIT" envDefault:"3"`
}

// Load loads .env (if present) and parses environment variables into Config.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate reports the first setting that would make the server unusable.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s store", c.StoreDriver)
		}
	case StoreDriverFile:
		if c.ClosetFile == "" {
			return fmt.Errorf("CLOSET_FILE is required for the %s store", c.StoreDriver)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.LLMProvider {
	case LLMProviderGoogle:
		if c.GoogleAPIKey == "" {
			return fmt.Errorf("GOOGLE_API_KEY is required for the %s provider", c.LLMProvider)
		}
	case LLMProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the %s provider", c.LLMProvider)
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.LLMMaxTokens <= 0 {
		return fmt.Errorf("LLM_MAX_TOKENS must be positive")
	}
	return nil
}

// StorageEnabled is true when every R2 setting is present.
func (c Config) StorageEnabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2AccessKeySecret != "" && c.R2BucketName != ""
}

func (c Config) Local() bool {
	return c.Env == "local"
}

func (c Config) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}
