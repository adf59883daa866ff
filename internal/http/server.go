// Package http exposes the ledger over a JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"finanzas/internal/cache"
	"finanzas/internal/core"
)

// TransactionAPI is the slice of the service layer the handlers use.
type TransactionAPI interface {
	Create(ctx context.Context, e core.Entry) (core.Transaction, error)
	List(ctx context.Context, ownerID string) ([]core.Transaction, error)
	Settle(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type Server struct {
	http.Server
	api          TransactionAPI
	defaultOwner string
	rateLimiter  *rateLimiter

	// Aggregations are memoized per owner and invalidated on any
	// mutation by that owner.
	dashCache *cache.LRUCache[dashboardResponse]
	cashCache *cache.LRUCache[cashResponse]

	shutdownOnce sync.Once
}

// NewServer configures routes and returns a ready-to-run server.
func NewServer(addr string, api TransactionAPI, defaultOwner string) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		api:          api,
		defaultOwner: defaultOwner,
		rateLimiter:  newRateLimiter(),
		dashCache:    cache.NewLRUCache[dashboardResponse](100, 5*time.Minute),
		cashCache:    cache.NewLRUCache[cashResponse](200, 5*time.Minute),
	}

	mux.HandleFunc("POST /transactions", s.withMiddleware(s.handleCreateTransaction))
	mux.HandleFunc("GET /transactions", s.withMiddleware(s.handleListTransactions))
	mux.HandleFunc("POST /transactions/{id}/settle", s.withMiddleware(s.handleSettleTransaction))
	mux.HandleFunc("DELETE /transactions/{id}", s.withMiddleware(s.handleDeleteTransaction))
	mux.HandleFunc("GET /dashboard", s.withMiddleware(s.handleDashboard))
	mux.HandleFunc("GET /cash", s.withMiddleware(s.handleDailyCash))
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	return s
}

// withMiddleware adds security headers, rate limiting on mutations,
// and request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP)

		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				"client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			respondError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

// responseWriter captures the status code for the completion log.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// rateLimiter allows up to 60 mutating requests per client per minute.
type rateLimiter struct {
	mu           sync.Mutex
	clients      map[string]*clientInfo
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		clients:     make(map[string]*clientInfo),
		stopCleanup: make(chan struct{}),
	}
	go rl.startCleanup()
	return rl
}

func (rl *rateLimiter) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupStaleEntries()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *rateLimiter) cleanupStaleEntries() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, client := range rl.clients {
		if client.lastRequest.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]
	if !exists {
		rl.clients[clientIP] = &clientInfo{lastRequest: now, requests: 1}
		return true
	}

	if now.Sub(client.lastRequest) > time.Minute {
		client.requests = 1
		client.lastRequest = now
		return true
	}

	client.requests++
	client.lastRequest = now
	return client.requests <= 60
}

func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		if rl.stopCleanup != nil {
			close(rl.stopCleanup)
		}
	})
}
