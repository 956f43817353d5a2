package main

import (
	"context"
	"time"

	"closetapi/config"
	"closetapi/controllers"
	"closetapi/dbhelper"
	"closetapi/logging"
	"closetapi/metrics"
	"closetapi/services"
	"closetapi/store"
	"closetapi/stylist"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	log := logging.Setup("closetapi", cfg.Local())
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	err = sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Env,
		Release:          "closetapi@1.0.0",
		TracesSampleRate: 1.0,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("sentry init")
	}
	defer sentry.Recover()
	defer sentry.Flush(2 * time.Second)

	ctx := context.Background()
	closet, err := setupStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("setup store")
	}

	client, err := setupClient(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("provider", cfg.LLMProvider).Msg("setup recommendation client")
	}

	deps := controllers.Dependencies{
		Store:     closet,
		Stylist:   stylist.New(client, log),
		Metrics:   metrics.NewRegistry(),
		JWTSecret: cfg.JWTSecret,
		Log:       log,
	}
	if cfg.StorageEnabled() {
		awsService, err := services.NewAWSService(ctx, cfg.R2AccountID, cfg.R2AccessKeyID, cfg.R2AccessKeySecret, cfg.R2BucketName)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize AWS provider: S3")
		}
		deps.AWSService = awsService
	}
	if cfg.AsyncBrokerAddress != "" {
		asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.AsyncBrokerAddress})
		defer asynqClient.Close()
		deps.Queue = asynqClient
	}

	e := controllers.SetupServer(deps)
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimit))))
	e.Use(middleware.Recover())
	e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))

	log.Info().
		Str("addr", cfg.Address()).
		Str("store", closet.Describe()).
		Str("llm", cfg.LLMProvider).
		Bool("images", deps.AWSService != nil).
		Bool("autolabel", deps.Queue != nil).
		Msg("starting closet api")
	if err := e.Start(cfg.Address()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func setupStore(cfg config.Config) (store.GarmentStore, error) {
	labels := store.NewLabelLookup()
	if cfg.StoreDriver == config.StoreDriverFile {
		return store.NewFileGarmentStore(cfg.ClosetFile, labels)
	}
	db, err := dbhelper.SetupDB(cfg.DatabaseURL, cfg.Local())
	if err != nil {
		return nil, err
	}
	return store.NewGormGarmentStore(db, labels), nil
}

func setupClient(ctx context.Context, cfg config.Config) (stylist.RecommendationClient, error) {
	if cfg.LLMProvider == config.LLMProviderOpenAI {
		return services.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.LLMMaxTokens), nil
	}
	return services.NewGoogleLLMClient(ctx, cfg.GoogleAPIKey, cfg.GoogleModel, cfg.LLMMaxTokens)
}
