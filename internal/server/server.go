package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/abhisek/promptcheck/internal/api"
)

// EvaluatePath is the route of the evaluation endpoint.
const EvaluatePath = "/api/evaluate"

// maxBodyBytes caps request bodies well above the longest valid prompt.
const maxBodyBytes = 64 << 10

// Options configures the HTTP server.
type Options struct {
	Addr string
	// RequestTimeout bounds each evaluation. Zero disables the limit.
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Server serves the evaluate endpoint over HTTP.
type Server struct {
	opts    Options
	handler *api.Handler
	logger  zerolog.Logger
	engine  *gin.Engine
}

// New builds the gin engine. Call gin.SetMode before New to pick the mode.
func New(opts Options, handler *api.Handler, logger zerolog.Logger) *Server {
	s := &Server{
		opts:    opts,
		handler: handler,
		logger:  logger,
	}

	engine := gin.New()
	engine.Use(responseHeaders(), requestID(), accessLog(logger), recovery(logger))

	engine.Any(EvaluatePath, s.evaluate)
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.engine = engine
	return s
}

// Handler exposes the engine, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) evaluate(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		// Oversized or broken bodies are evaluated as empty, which the
		// handler rejects as an invalid prompt.
		s.logger.Warn().Err(err).Str("request_id", c.GetString(requestIDKey)).Msg("read request body")
		body = nil
	}

	ctx := c.Request.Context()
	if s.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.RequestTimeout)
		defer cancel()
	}

	resp := s.handler.Handle(ctx, c.Request.Method, body)
	if len(resp.Body) == 0 {
		c.Status(resp.Status)
		return
	}
	c.Data(resp.Status, api.Headers["Content-Type"], resp.Body)
}

// Run listens until ctx is cancelled, then shuts down gracefully within
// ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.opts.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()

	s.logger.Info().Msg("shutting down http server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
