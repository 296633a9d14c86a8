package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"panchang-service/internal/handlers"
	"panchang-service/internal/metrics"
	"panchang-service/internal/middleware"
)

func SetupRouter(r *chi.Mux, baseLogger *zap.Logger, h *handlers.PanchangHandler) {

	r.Use(metrics.Middleware)

	// base middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)

	r.Use(middleware.LoggingContext(baseLogger))
	r.Use(middleware.Recoverer())
	// A cold-cache year search computes ~366 dates; give it headroom.
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.MaxBodySize(4 * 1024)) // warm body is two coordinates

	// routes
	r.Get("/panchang", h.GetPanchang)
	r.Post("/cache-year", h.WarmYear)
	r.Get("/cache-year/{jobID}", h.WarmJobStatus)
	r.Get("/search-tithi", h.SearchTithi)
	r.Get("/tithis", h.Tithis)
	r.Get("/cache-stats", h.CacheStats)
	r.Delete("/cache", h.ClearCache)

	// health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/metrics", metrics.Handler())
}
