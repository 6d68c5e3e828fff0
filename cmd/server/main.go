// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

// Package main is the entry point for the Conveyor gateway.
//
// Conveyor is a REST controller for a logistics demo: it proxies CRUD
// for demos, users, retailers, distribution centers, shipments, and
// products to an upstream ERP, wrapping the ERP's opaque session token
// in a signed envelope and translating upstream failures into a closed
// error taxonomy.
//
// Startup order:
//
//  1. Configuration: koanf layering of defaults, config.yaml, and
//     CONVEYOR_* environment variables
//  2. Logging: zerolog global logger
//  3. Clients: ERP client (circuit breaker), session manager, RBAC guard
//  4. Supervision: suture tree running the HTTP server and, when
//     enabled, the service-registry heartbeater
//
// The process shuts down gracefully on SIGINT and SIGTERM.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/conveyor-labs/conveyor/internal/api"
	"github.com/conveyor-labs/conveyor/internal/authz"
	"github.com/conveyor-labs/conveyor/internal/config"
	"github.com/conveyor-labs/conveyor/internal/erp"
	"github.com/conveyor-labs/conveyor/internal/logging"
	"github.com/conveyor-labs/conveyor/internal/registry"
	"github.com/conveyor-labs/conveyor/internal/session"
	"github.com/conveyor-labs/conveyor/internal/supervisor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	logging.Info().
		Str("environment", cfg.Environment).
		Str("erp_url", cfg.ERP.URL).
		Msg("Starting Conveyor gateway")

	sessions, err := session.NewManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize session manager")
	}

	guard, err := authz.NewGuard()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize authorization guard")
	}

	erpClient := erp.NewClient(&cfg.ERP)
	router := api.NewRouter(cfg, erpClient, sessions, guard)

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})

	tree.Add(api.NewServer(router.Setup(), &cfg.Server))

	if cfg.Registry.Enabled {
		registryClient := registry.NewClient(&cfg.Registry)
		tree.Add(registry.NewHeartbeater(registryClient, &cfg.Registry))
		logging.Info().
			Str("registry_url", cfg.Registry.URL).
			Str("service_name", cfg.Registry.ServiceName).
			Msg("Service registry heartbeater added to supervisor tree")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := tree.Serve(ctx); err != nil && ctx.Err() == nil {
		logging.Fatal().Err(err).Msg("Supervisor tree failed")
	}

	logging.Info().Msg("Conveyor gateway stopped")
}
