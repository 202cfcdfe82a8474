package httpapi

import (
	"net/http"
	"time"

	"sunogen/internal/http/handlers"
	"sunogen/internal/infra"
	appmw "sunogen/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// NewRouter builds the API surface: health, generation enqueue/status/archive,
// and static serving of materialized assets.
func NewRouter(app *handlers.App, cfg *infra.Config, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		appmw.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		appmw.Logger(logger),
	)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(appmw.CORS(cfg.CORSAllowedOrigins))
	}

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/generations", func(r chi.Router) {
		r.With(appmw.RateLimit(cfg.EnqueueRatePerMinute, time.Minute)).Post("/", app.EnqueueGeneration)
		r.Get("/{id}", app.GetGeneration)
		r.Get("/{id}/archive", app.ArchiveGeneration)
	})

	if app.Store != nil {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.Dir(app.Store.BasePath())))
		r.Get("/static/*", fileServer.ServeHTTP)
	}

	return r
}
