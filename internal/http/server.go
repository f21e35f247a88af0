package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"expensetracker/internal/core"
	"expensetracker/internal/kv"
	applog "expensetracker/internal/log"
	"expensetracker/internal/middleware/ratelimit"
	"expensetracker/internal/middleware/security"
	"expensetracker/internal/middleware/trace"
	"expensetracker/internal/services"
)

// ExpenseReader is the read side of the store the handlers render.
type ExpenseReader interface {
	Loading() bool
	Get(id string) (core.Expense, bool)
	Filter(f core.Filter) core.FilterResult
	Snapshot(now time.Time) core.Dashboard
	Stats() core.Profile
}

// Deps are the collaborators the server routes to. Backend is optional and
// only used for readiness pings.
type Deps struct {
	Reader   ExpenseReader
	Expenses *services.ExpenseService
	Exports  *services.ExportService
	Backend  kv.Store
	Logger   *applog.Logger

	// RequestTimeout bounds each API request. Zero disables it.
	RequestTimeout time.Duration
	RateLimit      ratelimit.Config
}

type Server struct {
	http.Server
	reader   ExpenseReader
	expenses *services.ExpenseService
	exports  *services.ExportService
	backend  kv.Store
	logger   *slog.Logger
	now      func() time.Time

	rateLimiter *ratelimit.Limiter
	detector    *security.Detector
	tracer      *trace.Middleware

	shutdownOnce sync.Once
}

// readyPingTimeout bounds the backend ping made by /readyz.
const readyPingTimeout = 2 * time.Second

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = applog.Discard()
	}
	httpLogger := logger.WithComponent(applog.ComponentHTTP)

	s := &Server{
		reader:      deps.Reader,
		expenses:    deps.Expenses,
		exports:     deps.Exports,
		backend:     deps.Backend,
		logger:      httpLogger.Logger,
		now:         time.Now,
		rateLimiter: ratelimit.NewLimiter(deps.RateLimit),
		detector:    security.NewDetector(),
		tracer:      trace.NewMiddleware(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	api := http.NewServeMux()
	api.HandleFunc("GET /api/categories", s.handleCategories)
	api.HandleFunc("GET /api/expenses", s.handleListExpenses)
	api.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	api.HandleFunc("DELETE /api/expenses", s.handleClearExpenses)
	api.HandleFunc("GET /api/expenses/{id}", s.handleGetExpense)
	api.HandleFunc("PATCH /api/expenses/{id}", s.handleUpdateExpense)
	api.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)
	api.HandleFunc("GET /api/dashboard", s.handleDashboard)
	api.HandleFunc("GET /api/profile", s.handleProfile)
	api.HandleFunc("GET /api/export", s.handleExport)
	api.HandleFunc("GET /api/export/targets", s.handleExportTargets)
	api.HandleFunc("POST /api/export/{target}", s.handleExportTo)

	mux.Handle("/api/", chain(api,
		s.rateLimiter.Middleware(s.detector.ExtractClientIP, func(w http.ResponseWriter, r *http.Request) {
			s.logger.WarnContext(r.Context(), "Rate limit exceeded",
				applog.FieldClientIP, s.detector.ExtractClientIP(r),
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			TooManyRequestsError().Write(w, r)
		}),
		withTimeout(deps.RequestTimeout),
	))

	s.Server = http.Server{
		Addr: addr,
		Handler: chain(mux,
			s.tracer.Middleware,
			applog.Middleware(httpLogger),
			applog.RequestIDMiddleware(trace.RequestID),
			applog.AccessLog(s.detector.ExtractClientIP),
			security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware,
			s.detector.Middleware(logger.WithComponent(applog.ComponentSecurity).Logger),
		),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Shutdown gracefully shuts down the server and the rate limiter cleanup.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// Metrics is a snapshot of the middleware counters.
type Metrics struct {
	Trace     trace.Metrics
	RateLimit ratelimit.Metrics
	Security  security.DetectionMetrics
}

func (s *Server) Metrics() Metrics {
	return Metrics{
		Trace:     s.tracer.GetMetrics(),
		RateLimit: s.rateLimiter.GetMetrics(),
		Security:  s.detector.GetMetrics(),
	}
}
