package routes

import (
	"io/fs"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/templui/scheduletable/assets"
	"github.com/templui/scheduletable/internal/app"
	"github.com/templui/scheduletable/internal/handler"
	"github.com/templui/scheduletable/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	schedule := handler.NewScheduleHandler(app.ScheduleService, app.SnapshotService)
	api := handler.NewAPIHandler(app.ScheduleService)
	export := handler.NewExportHandler(app.ScheduleService, app.SnapshotService)
	live := handler.NewLiveHandler(app.ScheduleService, app.SnapshotService, app.Broker, app.Metrics, app.Cfg.LivePingInterval)
	webhook := handler.NewWebhookHandler(app.Webhooks)
	health := handler.NewHealthHandler(app.DB)

	// State-changing routes are rate limited per client IP
	rateLimiter := middleware.RateLimit(app.Cfg.RateLimitRPS, app.Cfg.RateLimitBurst)

	mux := http.NewServeMux()

	// ============================================================================
	// OPERATIONAL
	// ============================================================================

	sub, _ := fs.Sub(assets.AssetsFS, ".")
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(sub))))
	mux.HandleFunc("GET /healthz", health.Healthz)
	mux.Handle("GET /metrics", promhttp.HandlerFor(app.Registry, promhttp.HandlerOpts{}))

	// ============================================================================
	// HTML (HTMX)
	// ============================================================================

	mux.HandleFunc("GET /{$}", schedule.SchedulePage)
	mux.HandleFunc("GET /grid", schedule.Grid)
	mux.HandleFunc("GET /grid/live", live.Connect)
	mux.HandleFunc("POST /entries", rateLimiter(schedule.CreateEntry))
	mux.HandleFunc("DELETE /entries/{id}", rateLimiter(schedule.DeleteEntry))
	mux.HandleFunc("GET /export", export.Download)
	mux.HandleFunc("POST /snapshots", rateLimiter(export.Store))

	// ============================================================================
	// JSON API
	// ============================================================================

	mux.HandleFunc("GET /schedule", api.List)
	mux.HandleFunc("POST /schedule", rateLimiter(api.Create))
	mux.HandleFunc("GET /schedule/{id}", api.Get)
	mux.HandleFunc("PUT /schedule/{id}", rateLimiter(api.Update))
	mux.HandleFunc("DELETE /schedule/{id}", rateLimiter(api.Delete))

	// ============================================================================
	// WEBHOOKS
	// ============================================================================

	// Database change feed (Standard Webhooks signature)
	mux.HandleFunc("POST /webhooks/schedule-changes", webhook.ScheduleChanges)

	// ============================================================================
	// FALLBACK
	// ============================================================================

	// 404
	mux.HandleFunc("/{path...}", schedule.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg), // Config must be first (needed by SecurityHeaders for S3 endpoint)
		middleware.NonceMiddleware, // Generate CSP nonce for each request (must be before SecurityHeaders)
		middleware.SecurityHeaders,
		middleware.RequestLogging,
		middleware.CSRFProtection,
	)

	return handler
}
