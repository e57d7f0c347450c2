package http

import (
	"context"
	"net/http"
	"time"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/middleware/ratelimit"
	"fintrack/internal/middleware/trace"
)

// FinanceAPI is the part of the finance service the HTTP adapter drives.
type FinanceAPI interface {
	AddTransaction(ctx context.Context, d core.TransactionDraft) (core.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	AddCategory(ctx context.Context, d core.CategoryDraft) (core.Category, error)
	UpsertBudget(ctx context.Context, d core.BudgetDraft) (core.Budget, error)
	DeleteBudget(ctx context.Context, id string) error

	Categories() []core.Category
	Budgets() []core.Budget
	FilterTransactions(f analytics.Filter) []core.Transaction
	Stats() core.FinanceStats
	CategoryBreakdown() []core.CategorySlice
	MonthlyTrend(months int) []core.MonthTrend
	BudgetStatuses() []core.BudgetStatus
}

type Server struct {
	http.Server
	finance FinanceAPI
	logger  *log.Logger
	records *log.StructuredLogger
	tracer  *trace.Middleware
	limiter *ratelimit.Limiter
}

// Option configures a Server.
type Option func(*serverOptions)

type serverOptions struct {
	writesPerMinute int
}

// WithWriteLimit caps mutating requests per client per minute. Zero or
// less leaves writes unlimited.
func WithWriteLimit(perMinute int) Option {
	return func(o *serverOptions) { o.writesPerMinute = perMinute }
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, finance FinanceAPI, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentHTTP)

	var o serverOptions
	for _, opt := range opts {
		opt(&o)
	}

	s := &Server{
		finance: finance,
		logger:  logger,
		records: log.NewStructuredLogger(logger),
		tracer:  trace.NewMiddleware(extractClientIP),
	}
	if o.writesPerMinute > 0 {
		s.limiter = ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: o.writesPerMinute})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/categories", s.handleCreateCategory)

	mux.HandleFunc("GET /api/budgets", s.handleListBudgets)
	mux.HandleFunc("PUT /api/budgets", s.handleUpsertBudget)
	mux.HandleFunc("DELETE /api/budgets/{id}", s.handleDeleteBudget)
	mux.HandleFunc("GET /api/budgets/status", s.handleBudgetStatuses)

	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /api/breakdown", s.handleBreakdown)
	mux.HandleFunc("GET /api/trend", s.handleTrend)

	var handler http.Handler = mux
	if s.limiter != nil {
		handler = s.limiter.Middleware(extractClientIP, s.handleRateLimited)(handler)
	}
	handler = log.RequestIDMiddleware(func(r *http.Request) string {
		return trace.GetRequestID(r.Context())
	})(handler)
	handler = log.Middleware(logger)(handler)
	handler = s.tracer.Middleware(handler)
	handler = withSecurityHeaders(handler)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Shutdown stops the write limiter and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.limiter != nil {
		s.limiter.Stop()
	}
	return s.Server.Shutdown(ctx)
}

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	log.FromContext(r.Context()).WarnContext(r.Context(), "Write rate limit exceeded",
		log.FieldClientIP, extractClientIP(r), log.FieldMethod, r.Method, log.FieldPath, r.URL.Path)
	ErrorResponse(http.StatusTooManyRequests, "rate limit exceeded").Write(w)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.finance == nil {
		ErrorResponse(http.StatusServiceUnavailable, "finance service not initialized").Write(w)
		return
	}
	body := map[string]any{
		"status":   "ready",
		"requests": s.tracer.TotalRequests(),
	}
	if s.limiter != nil {
		body["rateLimited"] = s.limiter.Rejected()
	}
	NewJSONResponse().JSON(body).Write(w)
}
