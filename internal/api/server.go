// Package api exposes the computation engine over a JSON HTTP surface.
// Handlers parse explicit request options, call the engine packages and map
// typed errors to status codes; no computation happens here.
package api

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"jyotish-engine/internal/chart"
	"jyotish-engine/internal/ephemeris"
	"jyotish-engine/internal/geocode"
	"jyotish-engine/internal/observability"
	"jyotish-engine/internal/storage"
)

// Options configures the API server.
type Options struct {
	Provider ephemeris.Provider
	Resolver geocode.Resolver

	ChartStore     storage.ChartStore
	PanchangaStore storage.PanchangaStore

	// TransitInterval is the websocket push cadence. Defaults to 10s.
	TransitInterval time.Duration

	Logger *log.Logger
	Now    func() time.Time // Injectable clock for deterministic output
}

// Server holds handler dependencies.
type Server struct {
	provider        ephemeris.Provider
	resolver        geocode.Resolver
	builder         *chart.Builder
	chartStore      storage.ChartStore
	panchangaStore  storage.PanchangaStore
	transitInterval time.Duration
	logger          *log.Logger
	now             func() time.Time
}

// NewServer creates an API server from options.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stdout, "[api] ", log.LstdFlags)
	}
	now := opts.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	interval := opts.TransitInterval
	if interval <= 0 {
		interval = 10 * time.Second
	}

	return &Server{
		provider:        opts.Provider,
		resolver:        opts.Resolver,
		builder:         chart.NewBuilder(opts.Provider),
		chartStore:      opts.ChartStore,
		panchangaStore:  opts.PanchangaStore,
		transitInterval: interval,
		logger:          logger,
		now:             now,
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestMetrics)

	r.Get("/healthz", s.handleHealthz)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/kundli", s.handleKundli)
		r.Get("/panchanga", s.handlePanchanga)
		r.Get("/dasha", s.handleDasha)
		r.Get("/kp", s.handleKP)
		r.Get("/varga", s.handleVarga)
		r.Get("/muhurta", s.handleMuhurta)
		r.Post("/match", s.handleMatch)

		r.Post("/charts", s.handleChartSave)
		r.Get("/charts", s.handleChartsByName)
		r.Get("/charts/{chartID}", s.handleChartByID)
	})

	r.Get("/ws/transits", s.handleTransitStream)

	return r
}

// requestMetrics records per-route request counts and latency. The route
// pattern is read after the handler runs so parameterized paths share one
// label.
func requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		observability.DefaultMetrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
		observability.DefaultMetrics.HTTPRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
