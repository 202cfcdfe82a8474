package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"sunogen/internal/generation"
	"sunogen/internal/jobs"
	"sunogen/pkg/zip"
)

// ArchiveGeneration bundles every locally persisted asset of a finished job
// into one zip download. Assets that only passed through as remote URLs are
// not included; the per-asset URLs in the job outputs still cover those.
func (a *App) ArchiveGeneration(w http.ResponseWriter, r *http.Request) {
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
	if job.Status != jobs.StatusSucceeded {
		a.json(w, http.StatusConflict, map[string]any{"error": "generation not finished"})
		return
	}

	var outputs generation.Outputs
	if err := json.Unmarshal(job.Outputs, &outputs); err != nil {
		a.Logger.Error().Err(err).Str("job_id", id).Msg("api: decode outputs failed")
		a.json(w, http.StatusInternalServerError, map[string]any{"error": "decode outputs"})
		return
	}

	var entries []zip.Entry
	for _, asset := range []*generation.Asset{outputs.AudioTrack1, outputs.AudioTrack2, outputs.CoverImage} {
		if asset == nil || !asset.Persisted {
			continue
		}
		data, err := a.Store.Read(r.Context(), asset.Filename)
		if err != nil {
			a.Logger.Warn().Err(err).Str("filename", asset.Filename).Msg("api: archive skipping unreadable asset")
			continue
		}
		entries = append(entries, zip.Entry{Filename: asset.Filename, Data: data})
	}
	if len(entries) == 0 {
		a.json(w, http.StatusNotFound, map[string]any{"error": "no persisted assets"})
		return
	}

	archive, err := zip.Archive(entries)
	if err != nil {
		a.Logger.Error().Err(err).Str("job_id", id).Msg("api: build archive failed")
		a.json(w, http.StatusInternalServerError, map[string]any{"error": "build archive"})
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "generation_"+id+".zip"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}
