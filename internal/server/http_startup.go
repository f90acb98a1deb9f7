package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skillfit/internal/observability"
	"skillfit/internal/store"
)

const shutdownTimeout = 30 * time.Second

// Start initializes observability and persistence, configures TLS and
// runs the HTTP server until a shutdown signal arrives
func (s *Server) Start() error {
	ctx := context.Background()

	obsConfig := observability.GetObservabilityConfig(s.AppConfig, s.Version)
	om, err := observability.NewObservabilityManager(obsConfig, s.AppConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}

	if s.AppConfig.Store.Enabled {
		st, err := store.New(ctx, s.AppConfig.Store, s.Logger)
		if err != nil {
			return fmt.Errorf("failed to connect to store: %w", err)
		}
		s.Store = st
	}

	httpServer, err := s.setupHTTPServer(om)
	if err != nil {
		return err
	}

	s.displayServerInfo(httpServer.TLSConfig != nil)
	return s.startWithGracefulShutdown(httpServer, om)
}

// setupHTTPServer builds the http.Server with routes, otel middleware
// and TLS configuration
func (s *Server) setupHTTPServer(om *observability.ObservabilityManager) (*http.Server, error) {
	mux := s.setupRoutes(om)
	handler := om.HTTPMiddleware()(mux)

	tlsConfig, err := s.configureTLS(om)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:              net.JoinHostPort(s.Host, s.Port),
		Handler:           handler,
		TLSConfig:         tlsConfig,
		ReadTimeout:       s.ReadTimeout,
		WriteTimeout:      s.WriteTimeout,
		IdleTimeout:       s.IdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// displayServerInfo logs the effective server configuration at startup
func (s *Server) displayServerInfo(tlsEnabled bool) {
	scheme := "http"
	if tlsEnabled {
		scheme = "https"
	}

	s.Logger.Info("starting skillfit server",
		"address", fmt.Sprintf("%s://%s", scheme, net.JoinHostPort(s.Host, s.Port)),
		"version", s.Version,
		"tls_mode", s.TLSConfig.Mode,
		"auth_enabled", len(s.APIKeys) > 0,
		"rate_limit_enabled", s.RateLimiter != nil,
		"store_enabled", s.Store != nil,
		"assisted_parsing", s.AppConfig.AI.Enabled)
}

// startWithGracefulShutdown runs the listener and drains in-flight
// requests on SIGINT or SIGTERM
func (s *Server) startWithGracefulShutdown(httpServer *http.Server, om *observability.ObservabilityManager) error {
	serverErrors := make(chan error, 1)
	go func() {
		if httpServer.TLSConfig != nil {
			// Certificates come from the cert store via GetCertificate
			serverErrors <- httpServer.ListenAndServeTLS("", "")
		} else {
			serverErrors <- httpServer.ListenAndServe()
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.cleanup(om)
			return fmt.Errorf("server error: %w", err)
		}
		s.cleanup(om)
		return nil

	case sig := <-shutdown:
		s.Logger.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := httpServer.Shutdown(ctx)
		s.cleanup(om)
		if err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}

		s.Logger.Info("server stopped")
		return nil
	}
}

// cleanup releases background resources held by the server
func (s *Server) cleanup(om *observability.ObservabilityManager) {
	if s.certWatcher != nil {
		if err := s.certWatcher.Stop(); err != nil {
			s.Logger.Warn("failed to stop certificate watcher", "error", err.Error())
		}
	}
	if s.RateLimiter != nil {
		s.RateLimiter.Close()
	}
	if s.Store != nil {
		s.Store.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := om.Shutdown(ctx); err != nil {
		s.Logger.Warn("observability shutdown failed", "error", err.Error())
	}
}
