package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/braxton0054/eavisystem/internal/bootstrap"
	"github.com/braxton0054/eavisystem/internal/config"
	"github.com/braxton0054/eavisystem/internal/pkg/helpers"
	"github.com/braxton0054/eavisystem/internal/pkg/logger"
)

// Server holds the state for the HTTP server.
type Server struct {
	config   *config.Config
	router   *gin.Engine
	deps     *bootstrap.Dependencies
	reporter *logger.RollbarReporter
	logger   zerolog.Logger
	http     *http.Server
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer(ctx context.Context) (*Server, error) {
	cfg, lgr, reporter, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	registry, err := bootstrap.SetupDatabase(ctx, cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, registry, lgr)
	if err != nil {
		registry.Close()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	if err := bootstrap.SeedDefaults(ctx, cfg, deps, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	router, err := bootstrap.SetupRouter(cfg, deps, lgr)
	if err != nil {
		registry.Close()
		return nil, err
	}

	return &Server{
		config:   cfg,
		router:   router,
		deps:     deps,
		reporter: reporter,
		logger:   lgr,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown.
func (s *Server) Run() error {
	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  helpers.ParseDuration(s.config.Server.ReadTimeout, 15*time.Second),
		WriteTimeout: helpers.ParseDuration(s.config.Server.WriteTimeout, 60*time.Second),
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(osSignals)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	return s.Shutdown(context.Background())
}

// Shutdown stops accepting requests, lets pending admission emails finish
// and closes the campus pools.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, helpers.ParseDuration(s.config.Server.ShutdownTimeout, 10*time.Second))
	defer cancel()

	var shutdownErr error
	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownErr = err
		}
	}

	emailsDone := make(chan struct{})
	go func() {
		s.deps.RegistrationService.Wait()
		close(emailsDone)
	}()
	select {
	case <-emailsDone:
	case <-ctx.Done():
		s.logger.Warn().Msg("Shutdown timed out waiting for admission emails")
	}

	s.deps.Registry.Close()
	s.logger.Info().Msg("Campus database pools closed.")

	if s.reporter != nil {
		s.reporter.Flush()
	}

	if shutdownErr != nil {
		return fmt.Errorf("server shutdown completed with errors: %w", shutdownErr)
	}
	s.logger.Info().Msg("Server shutdown process complete.")
	return nil
}
