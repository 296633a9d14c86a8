package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"panchang-service/internal/panchang"
	"panchang-service/pkg/logging"
)

// PanchangHandler holds dependencies for all almanac endpoints.
type PanchangHandler struct {
	Service *panchang.Service
	Warmer  *panchang.Warmer
}

func NewPanchangHandler(svc *panchang.Service, warmer *panchang.Warmer) *PanchangHandler {
	return &PanchangHandler{
		Service: svc,
		Warmer:  warmer,
	}
}

// GetPanchang handles GET /panchang?date=&lat=&lng=.
func (h *PanchangHandler) GetPanchang(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	date, lat, lng := r.URL.Query().Get("date"), r.URL.Query().Get("lat"), r.URL.Query().Get("lng")
	if name, ok := firstMissing("date", date, "lat", lat, "lng", lng); !ok {
		writeError(w, http.StatusBadRequest, "missing required parameter: "+name)
		return
	}

	rec, err := h.Service.Lookup(ctx, date, lat, lng)
	if err != nil {
		h.computationError(w, ctx, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

type warmRequest struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

// WarmYear handles POST /cache-year. It enqueues the job and responds
// before any caching work begins; progress is observable via the job
// endpoint or cache stats.
func (h *PanchangHandler) WarmYear(w http.ResponseWriter, r *http.Request) {
	var req warmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if name, ok := firstMissing("lat", req.Lat, "lng", req.Lng); !ok {
		writeError(w, http.StatusBadRequest, "missing required parameter: "+name)
		return
	}

	year := h.Service.Now().Year()
	receipt := h.Warmer.Warm(year, req.Lat, req.Lng)

	writeJSON(w, http.StatusAccepted, map[string]any{
		"message":    "year caching started",
		"jobId":      receipt.JobID,
		"totalDates": receipt.TotalDates,
		"location":   receipt.Location,
	})
}

// WarmJobStatus handles GET /cache-year/{jobID}.
func (h *PanchangHandler) WarmJobStatus(w http.ResponseWriter, r *http.Request) {
	job, ok := h.Warmer.Job(chi.URLParam(r, "jobID"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown job")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// SearchTithi handles GET /search-tithi?tithi=&lat=&lng=.
func (h *PanchangHandler) SearchTithi(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tithi, lat, lng := r.URL.Query().Get("tithi"), r.URL.Query().Get("lat"), r.URL.Query().Get("lng")
	if name, ok := firstMissing("tithi", tithi, "lat", lat, "lng", lng); !ok {
		writeError(w, http.StatusBadRequest, "missing required parameter: "+name)
		return
	}

	res, err := h.Service.SearchTithi(ctx, tithi, lat, lng)
	if err != nil {
		h.computationError(w, ctx, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// Tithis handles GET /tithis?lat=&lng=.
func (h *PanchangHandler) Tithis(w http.ResponseWriter, r *http.Request) {
	lat, lng := r.URL.Query().Get("lat"), r.URL.Query().Get("lng")
	if name, ok := firstMissing("lat", lat, "lng", lng); !ok {
		writeError(w, http.StatusBadRequest, "missing required parameter: "+name)
		return
	}

	tithis := h.Service.SampleTithis(r.Context(), lat, lng)

	writeJSON(w, http.StatusOK, map[string]any{
		"tithis":   tithis,
		"location": lat + "," + lng,
		"note":     "sampled every 15th date of the year; rare tithis may be missing",
	})
}

// CacheStats handles GET /cache-stats.
func (h *PanchangHandler) CacheStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resultSize, searchSize, err := h.Service.Stats(ctx)
	if err != nil {
		logging.L(ctx).Error("cache_stats_error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "cache stats unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"panchangCacheSize":    resultSize,
		"tithiSearchCacheSize": searchSize,
		"message":              "cache statistics",
	})
}

// ClearCache handles DELETE /cache. Both tiers are cleared together.
func (h *PanchangHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.Service.ClearAll(ctx); err != nil {
		logging.L(ctx).Error("cache_clear_error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "cache clear failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "all caches cleared",
	})
}

// computationError hides the failure detail from the client and logs it.
func (h *PanchangHandler) computationError(w http.ResponseWriter, ctx context.Context, err error) {
	logger := logging.L(ctx)
	if errors.Is(err, panchang.ErrComputation) {
		logger.Error("computation_error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "computation failed")
		return
	}
	logger.Error("internal_error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// firstMissing returns the name of the first empty value in (name, value)
// pairs, or ok=true when all are present.
func firstMissing(pairs ...string) (string, bool) {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return pairs[i], false
		}
	}
	return "", true
}

// writeJSON sends JSON responses consistently.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
