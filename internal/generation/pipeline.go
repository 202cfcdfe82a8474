package generation

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"sunogen/internal/infra"
	"sunogen/internal/suno"
)

// Defaults for the pipeline configuration. The poll interval is the one
// recommended by the service; 36 attempts give a six minute ceiling for a
// generation that typically finishes in two to three.
const (
	DefaultPollInterval    = 10 * time.Second
	DefaultMaxPollAttempts = 36
	DefaultDownloadTimeout = 120 * time.Second
)

const nodeName = "suno-generate-music"

// StatusClient is the slice of the Suno client the pipeline depends on.
type StatusClient interface {
	HasCredentials() bool
	Submit(ctx context.Context, payload map[string]any) (string, error)
	RecordInfo(ctx context.Context, taskID string) (*suno.RecordInfo, error)
}

// Config tunes the pipeline's timing. Zero values fall back to the defaults
// above; tests shorten them.
type Config struct {
	PollInterval    time.Duration
	MaxPollAttempts int
	DownloadTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.MaxPollAttempts <= 0 {
		c.MaxPollAttempts = DefaultMaxPollAttempts
	}
	if c.DownloadTimeout <= 0 {
		c.DownloadTimeout = DefaultDownloadTimeout
	}
	return c
}

// Observer receives progress notifications from the poll loop while the task
// is still in flight.
type Observer func(status string, attempt, maxAttempts int)

// Pipeline runs one music generation end to end: submit, poll, extract,
// materialize, assemble. A Pipeline is stateless across runs; every run's
// task id, tracks and outputs are local to that invocation.
type Pipeline struct {
	client    StatusClient
	store     AssetStore
	logger    infra.Logger
	cfg       Config
	observer  Observer
	downloads *http.Client
	now       func() time.Time
}

// NewPipeline wires a pipeline from its collaborators.
func NewPipeline(client StatusClient, store AssetStore, logger infra.Logger, cfg Config) *Pipeline {
	cfg = cfg.withDefaults()
	return &Pipeline{
		client:    client,
		store:     store,
		logger:    logger,
		cfg:       cfg,
		downloads: &http.Client{Timeout: cfg.DownloadTimeout},
		now:       time.Now,
	}
}

// OnProgress registers an observer for in-flight poll statuses.
func (p *Pipeline) OnProgress(fn Observer) {
	p.observer = fn
}

// Run executes the full pipeline for one request. On any failure the returned
// Outputs are the explicit failure baseline with the error message in the
// summary; the error itself carries the node identity for traceability.
func (p *Pipeline) Run(ctx context.Context, req Request) (Outputs, error) {
	if !p.client.HasCredentials() {
		return p.fail(fmt.Errorf("missing SUNO_API_KEY: %w", suno.ErrMissingAPIKey))
	}

	if violations := req.Validate(); len(violations) > 0 {
		return p.fail(&ValidationError{Violations: violations})
	}

	taskID, err := p.client.Submit(ctx, req.Payload())
	if err != nil {
		return p.fail(fmt.Errorf("submit: %w", err))
	}
	p.logger.Info().Str("task_id", taskID).Msg("generation: task submitted, polling")

	info, err := p.poll(ctx, taskID)
	if err != nil {
		return p.fail(err)
	}

	tracks := extractTracks(info)
	if len(tracks) == 0 {
		return p.fail(ErrNoTracks)
	}
	p.logger.Info().Int("tracks", len(tracks)).Str("task_id", taskID).Msg("generation: extracting results")

	outputs := Outputs{
		Status: StatusComplete,
		TaskID: taskID,
	}

	primary := tracks[0]
	audio1 := p.materialize(ctx, primary.AudioURL, p.trackFilename(1))
	outputs.AudioTrack1 = &audio1
	if primary.ImageURL != "" {
		cover := p.materialize(ctx, primary.ImageURL, p.coverFilename())
		outputs.CoverImage = &cover
	}
	outputs.GeneratedTitle = generatedTitle(primary)
	outputs.Tags = primary.Tags
	outputs.Lyrics = primary.Prompt

	if len(tracks) >= 2 {
		audio2 := p.materialize(ctx, tracks[1].AudioURL, p.trackFilename(2))
		outputs.AudioTrack2 = &audio2
	}

	outputs.Summary = buildSummary(taskID, tracks)
	return outputs, nil
}

// fail resets every output to the safe baseline and prefixes the node identity
// onto the surfaced error.
func (p *Pipeline) fail(err error) (Outputs, error) {
	outputs := baselineOutputs()
	outputs.Summary = "ERROR: " + err.Error()
	p.logger.Error().Err(err).Msg("generation: run failed")
	return outputs, fmt.Errorf("%s: %w", nodeName, err)
}
