package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"gitea.jw6.us/james/oxstream/internal/config"
	"gitea.jw6.us/james/oxstream/internal/http/ratelimit"
	"gitea.jw6.us/james/oxstream/internal/metrics"
	"gitea.jw6.us/james/oxstream/internal/store"
)

// NewRouter wires the event ingest endpoint and the operational endpoints.
func NewRouter(cfg *config.Config, st *store.Store, dispatcher EventHandler) http.Handler {
	r := chi.NewRouter()

	// Ingest: 50 events per second per source, burst of 100
	ingestRateLimiter := ratelimit.NewIPRateLimiter(rate.Limit(50), 100, 5*time.Minute, cfg.TrustedProxies)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := st.HealthCheck(ctx); err != nil {
			http.Error(w, "unready", http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if cfg.PrometheusEnabled {
		r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			metrics.Handler().ServeHTTP(w, r)
		})
	}

	r.Group(func(r chi.Router) {
		r.Use(ingestRateLimiter.Middleware())
		r.Method(http.MethodPost, "/events", &eventsHandler{dispatcher: dispatcher})
	})

	return r
}
