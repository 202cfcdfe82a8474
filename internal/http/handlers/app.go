package handlers

import (
	"encoding/json"
	"net/http"

	"sunogen/internal/infra"
	"sunogen/internal/jobs"
	"sunogen/internal/storage"
)

// App bundles the dependencies the HTTP handlers need.
type App struct {
	Repo   *jobs.Repo
	Store  *storage.FileStore
	Logger infra.Logger
}

// NewApp constructs the handler container.
func NewApp(repo *jobs.Repo, store *storage.FileStore, logger infra.Logger) *App {
	return &App{Repo: repo, Store: store, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
