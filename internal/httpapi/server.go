package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"creditd/internal/credit"
	"creditd/internal/predictor"
	"creditd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Predict(ctx context.Context, rec credit.Record) (predictor.Result, error)
	Status() types.StatusResponse
	Fields() []types.FieldSpec
	FormatPercent(p float64) string
	Banner() string
	Ready() bool
}

type handlers struct {
	svc  Service
	mode Mode
}

// NewMux builds the router for mode. Health, readiness, status and metrics
// endpoints are served in every mode.
func NewMux(svc Service, mode Mode) http.Handler {
	h := &handlers{svc: svc, mode: mode}
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}
	r.Use(MetricsMiddleware)
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	switch mode {
	case ModeForm:
		r.Get("/", h.formPage)
		r.Post("/", h.formSubmit)
	case ModeBoth:
		r.Get("/", h.formPage)
		r.Post("/", h.formSubmit)
		r.Post("/predict", h.predictJSON)
	default:
		r.Get("/", h.banner)
		r.Post("/predict", h.predictJSON)
	}

	r.Get("/status", h.status)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

// banner godoc
// @Summary      Service banner
// @Description  Plain-text status line of the prediction API.
// @Tags         api
// @Produce      plain
// @Success      200  {string}  string
// @Router       / [get]
func (h *handlers) banner(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(h.svc.Banner()))
}

// status godoc
// @Summary      Service status
// @Description  Loaded model, clamp table and forced fields.
// @Tags         ops
// @Produce      json
// @Success      200  {object}  types.StatusResponse
// @Router       /status [get]
func (h *handlers) status(w http.ResponseWriter, r *http.Request) {
	st := h.svc.Status()
	st.Mode = string(h.mode)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(st); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
	}
}
