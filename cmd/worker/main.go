package main

import (
	"context"
	"time"

	"closetapi/config"
	"closetapi/dbhelper"
	"closetapi/logging"
	"closetapi/services"
	"closetapi/store"
	"closetapi/tasks"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
)

func main() {
	cfg, err := config.Load()
	log := logging.Setup("closetapi-worker", cfg.Local())
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	// the worker always labels with gemini
	cfg.LLMProvider = config.LLMProviderGoogle
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	if cfg.AsyncBrokerAddress == "" || !cfg.StorageEnabled() {
		log.Fatal().Msg("[Queue] ASYNC_BROKER_ADDRESS and R2 settings are required")
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.Env,
		Release:     "closetapi-worker@1.0.0",
	}); err != nil {
		log.Fatal().Err(err).Msg("sentry init")
	}
	defer sentry.Flush(2 * time.Second)

	ctx := context.Background()
	awsService, err := services.NewAWSService(ctx, cfg.R2AccountID, cfg.R2AccessKeyID, cfg.R2AccessKeySecret, cfg.R2BucketName)
	if err != nil {
		log.Fatal().Err(err).Msg("[Queue] failed to initialize AWS provider: S3")
	}
	tagger, err := services.NewGoogleLLMClient(ctx, cfg.GoogleAPIKey, cfg.GoogleModel, cfg.LLMMaxTokens)
	if err != nil {
		log.Fatal().Err(err).Msg("[Queue] failed to initialize gemini client")
	}

	labels := store.NewLabelLookup()
	var closet store.GarmentStore
	if cfg.StoreDriver == config.StoreDriverFile {
		closet, err = store.NewFileGarmentStore(cfg.ClosetFile, labels)
	} else {
		db, dbErr := dbhelper.SetupDB(cfg.DatabaseURL, cfg.Local())
		err = dbErr
		if err == nil {
			closet = store.NewGormGarmentStore(db, labels)
		}
	}
	if err != nil {
		log.Fatal().Err(err).Msg("[Queue] setup store")
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.AsyncBrokerAddress},
		asynq.Config{Concurrency: 4, Queues: map[string]int{
			tasks.QueueLabel: 1,
		}},
	)
	mux := asynq.NewServeMux()
	mux.Handle(tasks.TypeGarmentAutolabel, &tasks.AutolabelHandler{
		Store:   closet,
		Storage: awsService,
		Tagger:  tagger,
		Log:     log,
	})

	log.Info().Str("store", closet.Describe()).Msg("starting label worker")
	if err := srv.Run(mux); err != nil {
		log.Fatal().Err(err).Msg("worker stopped")
	}
}
