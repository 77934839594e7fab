package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/adapter/http/handler"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/adapter/http/middleware"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler   *handler.AccountHandler
	JournalHandler   *handler.JournalHandler
	ImportHandler    *handler.ImportHandler
	LedgerHandler    *handler.LedgerHandler
	RuleHandler      *handler.RuleHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	RateLimiter      *middleware.RateLimiter
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
		})

		// Journal entries
		r.Route("/journal-entries", func(r chi.Router) {
			r.Post("/", cfg.JournalHandler.Create)
			r.Get("/", cfg.JournalHandler.List)
			r.Get("/{id}", cfg.JournalHandler.Get)
			r.Put("/{id}/lines", cfg.JournalHandler.ReplaceLines)
			r.Post("/{id}/approve", cfg.JournalHandler.Approve)
			r.Post("/{id}/cancel", cfg.JournalHandler.Cancel)
		})

		// Statement imports
		r.Route("/imports", func(r chi.Router) {
			r.Post("/preview", cfg.ImportHandler.Preview)
			r.Post("/commit", cfg.ImportHandler.Commit)
		})

		// Subsidiary ledgers
		r.Route("/ledger/{accountID}", func(r chi.Router) {
			r.Get("/", cfg.LedgerHandler.Get)
			r.Get("/aging", cfg.LedgerHandler.Aging)
			r.Get("/payment-schedule", cfg.LedgerHandler.PaymentSchedule)
		})

		// Import rules
		r.Route("/rules", func(r chi.Router) {
			r.Post("/", cfg.RuleHandler.Create)
			r.Get("/", cfg.RuleHandler.List)
			r.Delete("/{id}", cfg.RuleHandler.Delete)
		})
	})

	return r
}
