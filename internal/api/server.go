package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"

	"github.com/durabrake/financial-dashboard/internal/api/handler"
	"github.com/durabrake/financial-dashboard/internal/api/handler/router"
	"github.com/durabrake/financial-dashboard/internal/api/web"
	"github.com/durabrake/financial-dashboard/internal/config"
	"github.com/durabrake/financial-dashboard/internal/metrics"
	"github.com/durabrake/financial-dashboard/internal/usecases/authenticating"
	"github.com/durabrake/financial-dashboard/internal/usecases/presenting"
	"github.com/durabrake/financial-dashboard/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
	onShutdown []func()
}

// Dependencies are the services the HTTP layer drives.
type Dependencies struct {
	Presenter      presenting.Presenter
	Documents      handler.DocumentReader
	Authenticator  authenticating.Authenticator
	Generation     handler.GenerationTrigger
	Metrics        *metrics.Metrics
	AllowedOrigins []string // may call the JSON API from a browser
}

func New(config *config.Config, deps Dependencies) (*Server, error) {
	if deps.AllowedOrigins == nil {
		deps.AllowedOrigins = config.Server.AllowedOrigins
	}

	h, err := NewHandler(deps)
	if err != nil {
		return nil, err
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           h,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// NewHandler wires every route behind the common middleware chain.
func NewHandler(deps Dependencies) (http.Handler, error) {
	pages, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}

	configs := []router.ConfigRouter{
		router.WithNotFound(handler.NotFound()),
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Session(deps.Authenticator, pages)...),
		router.WithRoutes(handler.DashboardPages(deps.Presenter, pages)...),
		router.WithRoutes(handler.Periods(deps.Presenter, deps.Documents)...),
	}
	if deps.Generation != nil {
		configs = append(configs, router.WithRoutes(handler.Generation(deps.Generation)...))
	}

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
	}
	if deps.Metrics != nil {
		configs = append(configs, router.WithRoutes(handler.Metrics(deps.Metrics.Handler())...))
		middlewares = append(middlewares, middleware.MetricsMiddleware(deps.Metrics))
	}
	if len(deps.AllowedOrigins) > 0 {
		middlewares = append(middlewares, middleware.Cors(deps.AllowedOrigins))
	}
	middlewares = append(middlewares, middleware.AuthMiddleware(deps.Authenticator))

	return alice.New(middlewares...).Then(router.New(configs...)), nil
}

// OnShutdown registers cleanup that runs after the listener is closed.
func (s *Server) OnShutdown(fn func()) {
	s.onShutdown = append(s.onShutdown, fn)
}

func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("server starting")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("server stopped unexpectedly")
			errCh <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		logrus.Info("interrupt received")
	case <-ctx.Done():
		logrus.Info("application context cancelled")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": shutdownTimeout.String(),
	}).Info("shutting down gracefully")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("shutdown failed")
		return err
	}

	logrus.Info("server stopped")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	for _, fn := range s.onShutdown {
		fn()
	}

	logrus.Info("HTTP server shut down")
	return nil
}
