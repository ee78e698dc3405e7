package handlers

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/JAS0NN/youtube-summary/config"
	"github.com/JAS0NN/youtube-summary/middleware"
	"github.com/JAS0NN/youtube-summary/services/summarize"
)

type Server struct {
	web    *WebHandler
	config *config.Config
	logger *logrus.Logger
	server *http.Server
}

// NewServer builds the HTTP server around the summarization service.
func NewServer(cfg *config.Config, svc summarize.Service, logger *logrus.Logger) (*Server, error) {
	web, err := NewWebHandler(svc, cfg.Credentials, logger)
	if err != nil {
		return nil, err
	}

	s := &Server{
		web:    web,
		config: cfg,
		logger: logger,
	}

	s.server = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      s.routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s, nil
}

func (s *Server) Start() error {
	s.logger.WithField("port", s.config.ServerPort).Info("Starting server")
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.web.HandleIndex)
	mux.HandleFunc("POST /summarize", s.web.HandleSummarize)
	mux.HandleFunc("GET /health", s.web.HandleHealth)

	return s.middleware(mux)
}

func (s *Server) middleware(handler http.Handler) http.Handler {
	var rateLimiter middleware.RateLimiter
	if s.config.RateLimit.Enabled {
		rateLimiter = middleware.NewRateLimiter(
			s.config.RateLimit.RequestsPerMinute,
			s.config.RateLimit.BurstSize,
		)
	}

	middlewares := []func(http.Handler) http.Handler{
		middleware.Recovery(s.logger),
		middleware.RequestID(),
		middleware.Logging(s.logger),
		middleware.Timeout(s.config.RequestTimeout),
	}

	if rateLimiter != nil {
		middlewares = append(middlewares, rateLimiter.Middleware)
	}

	return middleware.Chain(handler, middlewares...)
}
