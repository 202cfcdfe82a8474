package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"sunogen/internal/generation"
)

// EnqueueGeneration validates a generation request and queues it for the
// worker. Validation failures return every violated rule at once.
func (a *App) EnqueueGeneration(w http.ResponseWriter, r *http.Request) {
	var spec generation.RequestSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		a.json(w, http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		return
	}

	if violations := spec.Request().Validate(); len(violations) > 0 {
		msgs := make([]string, len(violations))
		for i, v := range violations {
			msgs[i] = v.Error()
		}
		a.json(w, http.StatusBadRequest, map[string]any{"errors": msgs})
		return
	}

	raw, err := json.Marshal(spec)
	if err != nil {
		a.json(w, http.StatusInternalServerError, map[string]any{"error": "encode request"})
		return
	}

	id := uuid.NewString()
	if err := a.Repo.Enqueue(r.Context(), id, raw); err != nil {
		a.Logger.Error().Err(err).Msg("api: enqueue failed")
		a.json(w, http.StatusInternalServerError, map[string]any{"error": "enqueue failed"})
		return
	}

	a.json(w, http.StatusAccepted, map[string]any{"id": id, "status": "QUEUED"})
}

// GetGeneration reports a job's lifecycle state, progress and, once finished,
// its outputs.
func (a *App) GetGeneration(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		a.json(w, http.StatusBadRequest, map[string]any{"error": "invalid id"})
		return
	}

	job, err := a.Repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			a.json(w, http.StatusNotFound, map[string]any{"error": "not found"})
			return
		}
		a.Logger.Error().Err(err).Str("job_id", id).Msg("api: load job failed")
		a.json(w, http.StatusInternalServerError, map[string]any{"error": "load failed"})
		return
	}

	a.json(w, http.StatusOK, job)
}
