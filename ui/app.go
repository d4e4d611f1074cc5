package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tablescope/internal/analyzer"
	"tablescope/internal/config"
)

// App represents the HTTP application around the analysis pipeline
type App struct {
	router   *chi.Mux
	analyzer *analyzer.Analyzer
	config   *config.Config
}

// NewApp wires the analyzer and routes from explicit configuration.
// Nothing here is process-global; two Apps with different configs can
// coexist in one process (the tests rely on that).
func NewApp(cfg *config.Config) *App {
	app := &App{
		router: chi.NewRouter(),
		analyzer: analyzer.New(&analyzer.Config{
			MaxFileSize: cfg.Limits.MaxFileSize,
			PreviewRows: cfg.Limits.PreviewRows,
		}),
		config: cfg,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(corsMiddleware(a.config.Server.AllowedOrigins))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Post("/api/analyze", a.handleAnalyze)
	a.router.Post("/api/analyze/report", a.handleAnalyzeReport)
	a.router.Get("/api/health", a.handleHealth)
}

// Router returns the HTTP handler for serving
func (a *App) Router() http.Handler {
	return a.router
}

// corsMiddleware allows cross-origin requests from the configured origins only
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); origin != "" && allowed[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
				w.Header().Set("Vary", "Origin")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
