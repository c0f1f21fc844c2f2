package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"lifelog/internal/cache"
	"lifelog/internal/core"
	"lifelog/internal/log"
)

// RecordCreator is the write surface behind the POST endpoints.
type RecordCreator interface {
	CreateExpense(ctx context.Context, rec core.ExpenseRecord) (int64, error)
	CreateSleep(ctx context.Context, rec core.SleepRecord) (int64, error)
	CreateStudy(ctx context.Context, rec core.StudyRecord) (int64, error)
	CreateHabit(ctx context.Context, rec core.HabitRecord) (int64, error)
}

// RecordSource is the read surface behind the stats endpoints.
type RecordSource interface {
	ExpensesBetween(ctx context.Context, from, to core.Date) ([]core.ExpenseRecord, error)
	SleepByMonth(ctx context.Context, year, month int) ([]core.SleepRecord, error)
	StudyBetween(ctx context.Context, from, to core.Date) ([]core.StudyRecord, error)
	HabitsBetween(ctx context.Context, from, to core.Date) ([]core.HabitRecord, error)
}

type Server struct {
	http.Server

	creator RecordCreator
	source  RecordSource
	logger  *log.Logger
	httpLog *log.StructuredLogger

	rateLimiter *rateLimiter
	metrics     *securityMetrics
	startedAt   time.Time

	// Stats responses are cached per endpoint+parameters. Fresh writes may
	// lag in the stats output by up to the TTL.
	expenseStats *cache.LRUCache[expenseStatsResponse]
	sleepStats   *cache.LRUCache[sleepStatsResponse]
	studyStats   *cache.LRUCache[studyStatsResponse]
	habitStats   *cache.LRUCache[habitStatsResponse]
	caches       *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
// statsTTL bounds how stale a cached stats response may be.
func NewServer(addr string, creator RecordCreator, source RecordSource, logger *log.Logger, statsTTL time.Duration) *Server {
	mux := http.NewServeMux()

	s := &Server{
		creator:      creator,
		source:       source,
		logger:       logger.WithComponent(log.ComponentHTTP),
		rateLimiter:  newRateLimiter(),
		metrics:      &securityMetrics{},
		startedAt:    time.Now(),
		expenseStats: cache.NewLRUCache[expenseStatsResponse](50, statsTTL),
		sleepStats:   cache.NewLRUCache[sleepStatsResponse](50, statsTTL),
		studyStats:   cache.NewLRUCache[studyStatsResponse](50, statsTTL),
		habitStats:   cache.NewLRUCache[habitStatsResponse](50, statsTTL),
		caches:       cache.NewManager(),
	}
	s.httpLog = log.NewStructuredLogger(s.logger)

	s.caches.Register(s.expenseStats)
	s.caches.Register(s.sleepStats)
	s.caches.Register(s.studyStats)
	s.caches.Register(s.habitStats)
	s.caches.StartCleanup(10 * time.Minute)

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	mux.HandleFunc("/api/expenses", s.withSecurityHeaders(s.handleCreateExpense))
	mux.HandleFunc("/api/sleep", s.withSecurityHeaders(s.handleCreateSleep))
	mux.HandleFunc("/api/study", s.withSecurityHeaders(s.handleCreateStudy))
	mux.HandleFunc("/api/habits", s.withSecurityHeaders(s.handleCreateHabit))

	mux.HandleFunc("/api/stats/expenses", s.withSecurityHeaders(s.handleExpenseStats))
	mux.HandleFunc("/api/stats/sleep", s.withSecurityHeaders(s.handleSleepStats))
	mux.HandleFunc("/api/stats/study", s.withSecurityHeaders(s.handleStudyStats))
	mux.HandleFunc("/api/stats/habits", s.withSecurityHeaders(s.handleHabitStats))

	handler := log.Middleware(logger)(log.RequestIDMiddleware(requestIDFrom)(mux))

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

// Shutdown stops the cleanup goroutines before draining the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.caches.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and request
// logging to a handler.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)

		if detectSuspiciousRequest(r, s.metrics) {
			s.logger.WarnContext(r.Context(), "Suspicious request pattern",
				log.FieldClientIP, clientIP,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path)
		}

		s.httpLog.LogHTTPStart(r.Context(), r, clientIP)

		// Rate limiting applies to writes only; stats reads are cached anyway.
		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP, s.metrics) {
			s.logger.WarnContext(r.Context(), "Rate limit exceeded",
				log.FieldClientIP, clientIP, log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'none'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.httpLog.LogHTTPEnd(r.Context(), r, rw.statusCode, time.Since(start).Milliseconds(), clientIP)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
