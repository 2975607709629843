// Package server runs the HTTP API and the background purge job until the
// process is asked to stop.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/slugkit/internal/config"
)

// PurgeFunc removes expired holds and reports how many went away.
type PurgeFunc func(ctx context.Context) (int, error)

// Server owns the HTTP server, the cron scheduler and the shutdown hooks.
type Server struct {
	http            *http.Server
	cron            *cron.Cron
	logger          *slog.Logger
	shutdownTimeout time.Duration
	hooks           []func(context.Context) error
}

// New prepares a server for handler. Nothing starts until Run or Serve.
func New(handler http.Handler, cfg config.HTTP, opts ...Option) (*Server, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	s := &Server{
		http: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			ErrorLog:          slog.NewLogLogger(o.logger.Handler(), slog.LevelWarn),
		},
		logger:          o.logger,
		shutdownTimeout: cfg.ShutdownTimeout,
		hooks:           o.hooks,
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = 30 * time.Second
	}

	clog := cronLogger{o.logger}
	s.cron = cron.New(
		cron.WithLogger(clog),
		cron.WithChain(cron.Recover(clog), cron.SkipIfStillRunning(clog)),
	)
	if o.purgeSchedule != "" && o.purge != nil {
		if _, err := s.cron.AddFunc(o.purgeSchedule, s.purgeJob(o.purge)); err != nil {
			return nil, errors.Join(ErrInvalidSchedule, err)
		}
	}

	return s, nil
}

// Run listens on the configured address and serves until SIGINT, SIGTERM or
// ctx cancellation.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down: the HTTP
// server drains, the scheduler waits for a running purge, and the hooks run in
// order. All failures are joined into the returned error.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.cron.Start()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case serveErr = <-errCh:
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	errs := []error{serveErr}
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}

	select {
	case <-s.cron.Stop().Done():
	case <-shutdownCtx.Done():
		errs = append(errs, errors.Join(errors.New("server: purge job still running"), shutdownCtx.Err()))
	}

	for _, hook := range s.hooks {
		if err := hook(shutdownCtx); err != nil {
			s.logger.Error("shutdown hook failed", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		s.logger.Error("shutdown completed with errors")
		return err
	}
	s.logger.Info("shutdown completed")
	return nil
}

func (s *Server) purgeJob(purge PurgeFunc) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		n, err := purge(ctx)
		if err != nil {
			s.logger.Error("purge failed", slog.String("error", err.Error()))
			return
		}
		s.logger.Debug("purge finished", slog.Int("removed", n))
	}
}
