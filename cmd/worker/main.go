package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"sunogen/internal/generation"
	"sunogen/internal/infra"
	"sunogen/internal/jobs"
	"sunogen/internal/secrets"
	"sunogen/internal/storage"
	"sunogen/internal/suno"
)

const claimInterval = 2 * time.Second

type worker struct {
	ctx      context.Context
	repo     *jobs.Repo
	pipeline *generation.Pipeline
	logger   infra.Logger
}

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: db connection failed")
	}
	defer pool.Close()

	repo := jobs.NewRepo(pool, logger)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to ensure schema")
	}

	storagePath := cfg.StoragePath
	if !filepath.IsAbs(storagePath) {
		if abs, err := filepath.Abs(storagePath); err == nil {
			storagePath = abs
		}
	}
	store, err := storage.NewFileStore(storagePath, cfg.StorageBaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to configure storage")
	}

	apiKey := cfg.SunoAPIKey
	if apiKey == "" {
		if fromStore, ok := (secrets.EnvStore{}).Get(secrets.SunoAPIKey); ok {
			apiKey = fromStore
		}
	}
	if apiKey == "" {
		logger.Warn().Msg("worker: SUNO_API_KEY missing, runs will fail before submission")
	}

	client, err := suno.NewClient(suno.Options{
		APIKey:  apiKey,
		BaseURL: cfg.SunoBaseURL,
		Logger:  &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to configure suno client")
	}

	w := &worker{
		ctx:      ctx,
		repo:     repo,
		pipeline: generation.NewPipeline(client, store, logger, generation.Config{}),
		logger:   logger,
	}

	if err := w.run(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("worker: stopped with error")
	}
	logger.Info().Msg("worker: stopped")
}

func (w *worker) run() error {
	w.logger.Info().Msg("worker: started")
	for {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		job, err := w.repo.Claim(w.ctx)
		if err != nil {
			if errors.Is(err, jobs.ErrNoJob) {
				time.Sleep(claimInterval)
				continue
			}
			if w.ctx.Err() != nil {
				return w.ctx.Err()
			}
			w.logger.Error().Err(err).Msg("worker: failed to claim job")
			time.Sleep(claimInterval)
			continue
		}

		w.handle(job)
	}
}

func (w *worker) handle(job *jobs.Job) {
	w.logger.Info().Str("job_id", job.ID).Msg("worker: picked job")

	var spec generation.RequestSpec
	if err := json.Unmarshal(job.Request, &spec); err != nil {
		w.finish(job.ID, jobs.StatusFailed, nil, fmt.Sprintf("decode request: %v", err))
		return
	}

	w.pipeline.OnProgress(func(status string, attempt, maxAttempts int) {
		progress := fmt.Sprintf("Status: %s (%d/%d)", status, attempt, maxAttempts)
		if err := w.repo.SetProgress(w.ctx, job.ID, progress); err != nil {
			w.logger.Warn().Err(err).Str("job_id", job.ID).Msg("worker: record progress failed")
		}
	})

	outputs, runErr := w.pipeline.Run(w.ctx, spec.Request())

	encoded, err := json.Marshal(outputs)
	if err != nil {
		w.logger.Error().Err(err).Str("job_id", job.ID).Msg("worker: encode outputs failed")
	}

	if runErr != nil {
		w.finish(job.ID, jobs.StatusFailed, encoded, runErr.Error())
		return
	}

	if err := w.repo.SetTaskID(w.ctx, job.ID, outputs.TaskID); err != nil {
		w.logger.Warn().Err(err).Str("job_id", job.ID).Msg("worker: record task id failed")
	}
	w.finish(job.ID, jobs.StatusSucceeded, encoded, "")
}

func (w *worker) finish(jobID string, status jobs.Status, outputs []byte, errMsg string) {
	ctx := w.ctx
	if ctx.Err() != nil {
		// Still record the terminal state during shutdown.
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
	}
	if err := w.repo.Finish(ctx, jobID, status, outputs, errMsg); err != nil {
		w.logger.Error().Err(err).Str("job_id", jobID).Msg("worker: record result failed")
		return
	}
	w.logger.Info().Str("job_id", jobID).Str("status", string(status)).Msg("worker: job finished")
}
