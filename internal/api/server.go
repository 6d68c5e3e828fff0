// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/conveyor-labs/conveyor/internal/config"
	"github.com/conveyor-labs/conveyor/internal/logging"
)

// Server runs the HTTP listener as a supervised service. It implements
// suture.Service: Serve blocks until the context is canceled, then
// shuts the listener down gracefully within the configured timeout.
type Server struct {
	handler http.Handler
	cfg     *config.ServerConfig
	name    string
}

// NewServer creates a supervised HTTP server around the router.
func NewServer(handler http.Handler, cfg *config.ServerConfig) *Server {
	return &Server{
		handler: handler,
		cfg:     cfg,
		name:    "http-server",
	}
}

// Serve implements suture.Service.
func (s *Server) Serve(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprintf("%d", s.cfg.Port))
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", addr).Msg("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Warn().Err(err).Msg("Graceful shutdown failed, closing listener")
			_ = srv.Close()
		}
		logging.Info().Msg("HTTP server stopped")
		return ctx.Err()
	}
}

// String implements fmt.Stringer for supervisor logging.
func (s *Server) String() string {
	return s.name
}
