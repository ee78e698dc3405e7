package middleware

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type contextKey string

// RequestIDKey is the context key under which the request ID is stored.
const RequestIDKey contextKey = "request_id"

func Chain(handler http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i] != nil {
			handler = middlewares[i](handler)
		}
	}
	return handler
}

// RequestID attaches a request ID to the context and response headers.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.New().String()
			}

			ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
			w.Header().Set("X-Request-ID", requestID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Recovery converts panics into a 500 response instead of tearing down the
// connection.
func Recovery(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.WithFields(logrus.Fields{
						"error":      err,
						"stack":      string(debug.Stack()),
						"request_id": r.Context().Value(RequestIDKey),
					}).Error("Panic recovered")

					http.Error(w, "Internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Logging logs request start and completion with status, duration and size.
func Logging(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lrw := newLoggingResponseWriter(w)

			entry := logger.WithFields(logrus.Fields{
				"request_id": r.Context().Value(RequestIDKey),
				"method":     r.Method,
				"path":       r.URL.Path,
				"remote_ip":  r.RemoteAddr,
			})

			entry.Info("Request started")

			next.ServeHTTP(lrw, r)

			entry.WithFields(logrus.Fields{
				"status":   lrw.statusCode,
				"duration": time.Since(start),
				"size":     lrw.size,
			}).Info("Request completed")
		})
	}
}

// Helper type for logging response details
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int64
}

func newLoggingResponseWriter(w http.ResponseWriter) *loggingResponseWriter {
	// Default status is 200 OK
	return &loggingResponseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	size, err := lrw.ResponseWriter.Write(b)
	lrw.size += int64(size)
	return size, err
}

// RateLimiter interface for rate limiting middleware
type RateLimiter interface {
	Allow() bool
	Middleware(http.Handler) http.Handler
}

// rateLimiter implements token bucket algorithm
type rateLimiter struct {
	limiter *rate.Limiter
}

func NewRateLimiter(requestsPerMinute int, burst int) RateLimiter {
	return &rateLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerMinute)/60, burst),
	}
}

func (rl *rateLimiter) Allow() bool {
	return rl.limiter.Allow()
}

func (rl *rateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow() {
			http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Timeout bounds request handling with a context deadline.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
