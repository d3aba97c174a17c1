package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/thisisjab/exprzilla/interp"
	"github.com/thisisjab/exprzilla/token"
)

// Evaluator is the contract the server needs from the interpreter.
type Evaluator interface {
	Run(ctx context.Context, src string) (interp.Result, error)
	Tokenize(src string) ([]token.Token, error)
}

// Version is reported by the healthcheck endpoint.
const Version = "0.1.0"

type Server struct {
	cfg       Config
	logger    *slog.Logger
	evaluator Evaluator

	startedAt time.Time
	evals     atomic.Int64
	faults    atomic.Int64
}

func NewServer(cfg Config, evaluator Evaluator, logger *slog.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if evaluator == nil {
		return nil, errors.New("no evaluator is configured")
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Server{
		cfg:       cfg,
		logger:    logger,
		evaluator: evaluator,
		startedAt: time.Now(),
	}, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/healthcheck", s.healthCheckHandler)
	mux.HandleFunc("POST /api/eval", s.evalHandler)
	mux.HandleFunc("POST /api/tokens", s.tokensHandler)

	return s.recoverPanicMiddleware(s.requestLoggerMiddleware(s.corsMiddleware(mux)))
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.routes()
}

func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down server", "addr", s.cfg.Addr)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("failed to shutdown server", "addr", s.cfg.Addr, "error", err)
		}
	}()

	var serverErr error
	if s.cfg.CertFile != "" && s.cfg.KeyFile != "" {
		s.logger.Info("starting server with TLS", "addr", s.cfg.Addr)
		serverErr = srv.ListenAndServeTLS(s.cfg.CertFile, s.cfg.KeyFile)
	} else {
		s.logger.Info("starting server without TLS", "addr", s.cfg.Addr)
		serverErr = srv.ListenAndServe()
	}

	if serverErr != nil && !errors.Is(serverErr, http.ErrServerClosed) {
		return serverErr
	}

	return nil
}
