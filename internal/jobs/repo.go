// Package jobs is the Postgres-backed ledger of generation runs. The API
// enqueues a row per request; the worker claims rows, reports progress while
// polling, and records the final outputs or error.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sunogen/internal/infra"
)

// Status enumerates the job lifecycle states.
type Status string

const (
	StatusQueued    Status = "QUEUED"
	StatusRunning   Status = "RUNNING"
	StatusSucceeded Status = "SUCCEEDED"
	StatusFailed    Status = "FAILED"
)

// ErrNoJob indicates there is currently no queued job to claim.
var ErrNoJob = errors.New("jobs: no job available")

// Job is one generation run.
type Job struct {
	ID        string          `json:"id"`
	Status    Status          `json:"status"`
	Request   json.RawMessage `json:"request"`
	TaskID    string          `json:"task_id,omitempty"`
	Progress  string          `json:"progress,omitempty"`
	Outputs   json.RawMessage `json:"outputs,omitempty"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Repo persists jobs in Postgres.
type Repo struct {
	pool   *pgxpool.Pool
	logger infra.Logger
}

// NewRepo constructs a Repo on the given pool.
func NewRepo(pool *pgxpool.Pool, logger infra.Logger) *Repo {
	return &Repo{pool: pool, logger: logger}
}

const schema = `
create table if not exists generation_jobs (
    id uuid primary key,
    status text not null default 'QUEUED',
    request jsonb not null,
    task_id text not null default '',
    progress text not null default '',
    outputs jsonb,
    error text not null default '',
    created_at timestamptz not null default now(),
    updated_at timestamptz not null default now()
);
create index if not exists generation_jobs_status_idx on generation_jobs (status, created_at);
`

// EnsureSchema creates the jobs table when it does not exist yet.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("jobs: ensure schema: %w", err)
	}
	return nil
}

// Enqueue inserts a new queued job with the given request payload.
func (r *Repo) Enqueue(ctx context.Context, id string, request []byte) error {
	const q = `
insert into generation_jobs (id, status, request)
values ($1, $2, $3)
`
	if _, err := r.pool.Exec(ctx, q, id, StatusQueued, request); err != nil {
		return fmt.Errorf("jobs: enqueue: %w", err)
	}
	r.logger.Info().Str("job_id", id).Msg("jobs: enqueued")
	return nil
}

// Claim atomically picks the oldest queued job, marks it running and returns
// it. Concurrent workers skip rows each other already locked.
func (r *Repo) Claim(ctx context.Context) (*Job, error) {
	const q = `
with next_job as (
    select id
    from generation_jobs
    where status = 'QUEUED'
    order by created_at asc
    for update skip locked
    limit 1
),
updated as (
    update generation_jobs
    set status = 'RUNNING', updated_at = now()
    where id in (select id from next_job)
    returning id, status, request, created_at, updated_at
)
select * from updated
`
	var j Job
	err := r.pool.QueryRow(ctx, q).Scan(&j.ID, &j.Status, &j.Request, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoJob
		}
		return nil, fmt.Errorf("jobs: claim: %w", err)
	}
	// Ensure request bytes are not aliased.
	j.Request = append(json.RawMessage(nil), j.Request...)
	return &j, nil
}

// SetTaskID records the remote task id once submission succeeded.
func (r *Repo) SetTaskID(ctx context.Context, id, taskID string) error {
	const q = `
update generation_jobs set task_id = $2, updated_at = now() where id = $1
`
	if _, err := r.pool.Exec(ctx, q, id, taskID); err != nil {
		return fmt.Errorf("jobs: set task id: %w", err)
	}
	return nil
}

// SetProgress records the latest poll observation on a running job.
func (r *Repo) SetProgress(ctx context.Context, id, progress string) error {
	const q = `
update generation_jobs set progress = $2, updated_at = now() where id = $1
`
	if _, err := r.pool.Exec(ctx, q, id, progress); err != nil {
		return fmt.Errorf("jobs: set progress: %w", err)
	}
	return nil
}

// Finish records the terminal status together with the assembled outputs and,
// for failures, the error message.
func (r *Repo) Finish(ctx context.Context, id string, status Status, outputs []byte, errMsg string) error {
	const q = `
update generation_jobs
set status = $2, outputs = $3, error = $4, updated_at = now()
where id = $1
`
	if _, err := r.pool.Exec(ctx, q, id, status, outputs, errMsg); err != nil {
		return fmt.Errorf("jobs: finish: %w", err)
	}
	return nil
}

// Get loads one job by id.
func (r *Repo) Get(ctx context.Context, id string) (*Job, error) {
	const q = `
select id, status, request, task_id, progress, coalesce(outputs, 'null'::jsonb), error, created_at, updated_at
from generation_jobs
where id = $1
`
	var j Job
	err := r.pool.QueryRow(ctx, q, id).Scan(&j.ID, &j.Status, &j.Request, &j.TaskID, &j.Progress, &j.Outputs, &j.Error, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("jobs: get: %w", err)
	}
	return &j, nil
}
