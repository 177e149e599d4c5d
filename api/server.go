// Package api provides the HTTP server for lightcharts.
//
// It exposes endpoints for chart rendering, dataset access, the HTML
// dashboard, and WebSocket streaming of dataset changes.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/huntiq/lightcharts/internal/chart"
	"github.com/huntiq/lightcharts/internal/config"
	"github.com/huntiq/lightcharts/internal/dataset"
	"github.com/huntiq/lightcharts/internal/infra"
	"github.com/huntiq/lightcharts/internal/report"
	"github.com/huntiq/lightcharts/pkg/models"
	"github.com/huntiq/lightcharts/web"
)

// Version is stamped at build time via ldflags.
var Version = "dev"

const renderCacheTTL = 30 * time.Second

// Server is the HTTP API server.
type Server struct {
	router  chi.Router
	cfg     *config.Config
	store   *dataset.Store
	cache   *infra.RenderCache
	limiter *infra.RateLimiter
	wsHub   *WSHub
	log     *zap.Logger
	serveUI bool // when true, serve the embedded demo UI at /
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config, store *dataset.Store, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	srv := &Server{
		cfg:     cfg,
		store:   store,
		cache:   infra.NewRenderCache(renderCacheTTL),
		limiter: infra.NewRateLimiter(60, time.Second),
		wsHub:   NewWSHub(log),
		log:     log,
		serveUI: true,
	}
	srv.router = srv.buildRouter()
	return srv
}

// SetServeUI controls whether the embedded demo UI is served.
// Must be called before ListenAndServe.
func (s *Server) SetServeUI(enabled bool) {
	s.serveUI = enabled
	s.router = s.buildRouter()
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown. It also
// runs the WebSocket hub and bridges dataset store events to it.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go s.wsHub.Run()
	stopBridge := s.bridgeStoreEvents()
	defer stopBridge()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		s.log.Info("server listening", zap.String("addr", addr))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-done
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// bridgeStoreEvents forwards dataset change notifications to WebSocket
// clients and drops stale rendered output from the cache.
func (s *Server) bridgeStoreEvents() (stop func()) {
	events, cancel := s.store.Subscribe()
	go func() {
		for ev := range events {
			s.cache.Flush()
			s.wsHub.Broadcast(WSMessage{
				Type: string(ev.Type),
				Data: map[string]string{"name": ev.Name},
			})
		}
	}()
	return cancel
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := []string{"*"}
	if len(s.cfg.Server.CORSOrigins) > 0 {
		origins = s.cfg.Server.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// Chart rendering
		r.With(s.rateLimit).Post("/charts/{type}", s.handleRenderChart)

		// Datasets
		r.Get("/datasets", s.handleListDatasets)
		r.Get("/datasets/{name}", s.handleGetDataset)
		r.Get("/datasets/{name}/chart", s.handleDatasetChart)

		// Palette
		r.Get("/palette", s.handlePalette)

		// Dashboard
		r.Get("/dashboard", s.handleDashboard)

		// WebSocket
		r.Get("/ws", s.handleWebSocket)
	})

	if s.serveUI {
		s.mountStatic(r, web.DistFS())
	}

	return r
}

// requestLogger logs one structured line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)),
		)
	})
}

// rateLimit rejects requests once the render token bucket is drained.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// mountStatic serves the embedded demo page. Unknown paths fall back to
// index.html.
func (s *Server) mountStatic(r chi.Router, distFS fs.FS) {
	fileServer := http.FileServer(http.FS(distFS))

	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		rPath := strings.TrimPrefix(req.URL.Path, "/")
		if rPath == "" {
			rPath = "index.html"
		}

		f, err := distFS.Open(rPath)
		if err != nil {
			serveIndexHTML(w, distFS)
			return
		}
		f.Close()

		if rPath == "index.html" || strings.HasSuffix(rPath, ".html") {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		}
		fileServer.ServeHTTP(w, req)
	})
}

func serveIndexHTML(w http.ResponseWriter, distFS fs.FS) {
	data, err := fs.ReadFile(distFS, "index.html")
	if err != nil {
		http.Error(w, "demo UI not available", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck
}

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RenderRequest is the body for POST /api/v1/charts/{type}.
type RenderRequest struct {
	Series  models.Series `json:"series"`
	Options ChartOptions  `json:"options"`
}

// ChartOptions is the flat union of per-renderer options accepted over
// the API. Zero values defer to the renderer defaults; boolean toggles
// are pointers so "absent" and "false" stay distinguishable.
type ChartOptions struct {
	Width       float64  `json:"width,omitempty"`
	Height      float64  `json:"height,omitempty"`
	Size        float64  `json:"size,omitempty"`
	Padding     float64  `json:"padding,omitempty"`
	Color       string   `json:"color,omitempty"`
	Colors      []string `json:"colors,omitempty"`
	InnerRadius float64  `json:"inner_radius,omitempty"`
	MaxValue    float64  `json:"max_value,omitempty"`
	ShowGrid    *bool    `json:"show_grid,omitempty"`
	ShowDots    *bool    `json:"show_dots,omitempty"`
	ShowLabels  *bool    `json:"show_labels,omitempty"`
	ShowTooltip *bool    `json:"show_tooltip,omitempty"`
	Horizontal  bool     `json:"horizontal,omitempty"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":   "ok",
			"version":  Version,
			"datasets": len(s.store.List()),
			"ws":       s.wsHub.ClientCount(),
		},
	})
}

func (s *Server) handleRenderChart(w http.ResponseWriter, r *http.Request) {
	chartType := models.ChartType(chi.URLParam(r, "type"))
	if !models.ValidChartType(chartType) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown chart type %q", chartType))
		return
	}

	var req RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Series) == 0 {
		writeError(w, http.StatusBadRequest, "series is required")
		return
	}

	ds := &models.Dataset{
		Name:     "inline",
		Chart:    chartType,
		Series:   req.Series,
		MaxValue: req.Options.MaxValue,
	}
	if err := ds.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// ?format=json returns the computed slice geometry instead of the
	// SVG document, for clients that draw the paths themselves.
	if r.URL.Query().Get("format") == "json" {
		if chartType != models.ChartPie && chartType != models.ChartDonut {
			writeError(w, http.StatusBadRequest, "format=json is only supported for pie and donut charts")
			return
		}
		size := req.Options.Size
		if size <= 0 {
			size = chart.DefaultPieOptions().Size
		}
		inner := req.Options.InnerRadius
		if inner <= 0 && chartType == models.ChartDonut {
			inner = 0.55
		}
		writeJSON(w, http.StatusOK, APIResponse{
			Success: true,
			Data:    chart.BuildPieSlices(req.Series, size, inner, req.Options.Colors),
		})
		return
	}

	writeSVG(w, s.render(ds, req.Options))
}

func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    s.store.List(),
	})
}

func (s *Server) handleGetDataset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ds, ok := s.store.Get(name)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("dataset %q not found", name))
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    ds,
	})
}

func (s *Server) handleDatasetChart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ds, ok := s.store.Get(name)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("dataset %q not found", name))
		return
	}

	cacheKey := "chart:" + name
	if svg, ok := s.cache.Get(cacheKey); ok {
		writeSVG(w, svg)
		return
	}

	svg := report.RenderDataset(ds, s.dashboardConfig())
	s.cache.Set(cacheKey, svg)
	writeSVG(w, svg)
}

func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	palette := s.cfg.Charts.Palette
	if len(palette) == 0 {
		palette = chart.DefaultPalette
	}
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    palette,
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	const cacheKey = "dashboard"
	if html, ok := s.cache.Get(cacheKey); ok {
		writeHTML(w, html)
		return
	}

	datasets := s.store.All()
	if len(datasets) == 0 {
		writeError(w, http.StatusNotFound, "no datasets loaded")
		return
	}

	html, err := report.GenerateDashboard(datasets, s.dashboardConfig())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.cache.Set(cacheKey, html)
	writeHTML(w, html)
}

// render dispatches an inline render request to the matching renderer,
// mapping the flat API options onto the renderer option structs.
func (s *Server) render(ds *models.Dataset, o ChartOptions) string {
	switch ds.Chart {
	case models.ChartPie, models.ChartDonut:
		opts := chart.DefaultPieOptions()
		if o.Size > 0 {
			opts.Size = o.Size
		}
		if len(o.Colors) > 0 {
			opts.Colors = o.Colors
		}
		if o.InnerRadius > 0 {
			opts.InnerRadius = o.InnerRadius
		} else if ds.Chart == models.ChartDonut {
			opts.InnerRadius = 0.55
		}
		setBool(&opts.ShowLabels, o.ShowLabels)
		setBool(&opts.ShowTooltip, o.ShowTooltip)
		return chart.PieChart(ds.Series, opts)

	case models.ChartLine, models.ChartArea:
		opts := chart.DefaultLineOptions()
		if o.Width > 0 {
			opts.Width = o.Width
		}
		if o.Height > 0 {
			opts.Height = o.Height
		}
		if o.Padding > 0 {
			opts.Padding = o.Padding
		}
		opts.Color = o.Color
		opts.ShowArea = ds.Chart == models.ChartArea
		setBool(&opts.ShowGrid, o.ShowGrid)
		setBool(&opts.ShowDots, o.ShowDots)
		return chart.LineChart(ds.Series, opts)

	case models.ChartBar:
		opts := chart.DefaultBarOptions()
		if o.Width > 0 {
			opts.Width = o.Width
		}
		if o.Height > 0 {
			opts.Height = o.Height
		}
		if o.Padding > 0 {
			opts.Padding = o.Padding
		}
		if len(o.Colors) > 0 {
			opts.Colors = o.Colors
		}
		opts.Horizontal = o.Horizontal
		setBool(&opts.ShowGrid, o.ShowGrid)
		return chart.BarChart(ds.Series, opts)

	case models.ChartRadar:
		opts := chart.DefaultRadarOptions()
		if o.Size > 0 {
			opts.Size = o.Size
		}
		if o.Color != "" {
			opts.Color = o.Color
		}
		if o.MaxValue > 0 {
			opts.MaxValue = o.MaxValue
		}
		setBool(&opts.ShowLabels, o.ShowLabels)
		return chart.RadarChart(ds.Series, opts)
	}
	return chart.LineChart(ds.Series, chart.DefaultLineOptions())
}

// dashboardConfig maps server configuration onto report settings.
func (s *Server) dashboardConfig() report.DashboardConfig {
	cfg := report.DefaultDashboardConfig()
	if s.cfg.Dashboard.Title != "" {
		cfg.Title = s.cfg.Dashboard.Title
	}
	if len(s.cfg.Charts.Palette) > 0 {
		cfg.Palette = s.cfg.Charts.Palette
	}
	if s.cfg.Charts.Width > 0 {
		cfg.Width = s.cfg.Charts.Width
	}
	if s.cfg.Charts.Height > 0 {
		cfg.Height = s.cfg.Charts.Height
	}
	if s.cfg.Charts.Size > 0 {
		cfg.Size = s.cfg.Charts.Size
	}
	if s.cfg.Charts.Padding > 0 {
		cfg.Padding = s.cfg.Charts.Padding
	}
	return cfg
}

// ============================================================
// Helpers
// ============================================================

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}

func writeSVG(w http.ResponseWriter, svg string) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(svg)) //nolint:errcheck
}

func writeHTML(w http.ResponseWriter, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html)) //nolint:errcheck
}
