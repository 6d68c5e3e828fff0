// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/conveyor-labs/conveyor/internal/authz"
	"github.com/conveyor-labs/conveyor/internal/config"
	"github.com/conveyor-labs/conveyor/internal/erp"
	"github.com/conveyor-labs/conveyor/internal/middleware"
	"github.com/conveyor-labs/conveyor/internal/session"
)

// Router wires handlers to their dependencies.
type Router struct {
	cfg      *config.Config
	erp      *erp.Client
	sessions *session.Manager
	guard    *authz.Guard
	logins   *loginLimiter
}

// NewRouter creates the gateway's router.
func NewRouter(cfg *config.Config, erpClient *erp.Client, sessions *session.Manager, guard *authz.Guard) *Router {
	return &Router{
		cfg:      cfg,
		erp:      erpClient,
		sessions: sessions,
		guard:    guard,
		logins:   newLoginLimiter(cfg.Security.LoginAttempts, cfg.Security.LoginWindow),
	}
}

// Setup assembles the full HTTP handler: global middleware, the
// /api/v1 surface, and the Prometheus endpoint.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitByIP(rt.cfg.Server.RateLimitReqs, rt.cfg.Server.RateLimitWindow))
		r.Use(middleware.Metrics)

		r.Get("/", rt.Health)

		// Authentication. Login gets its own stricter limiter.
		r.With(rt.logins.middleware).Post("/auth", rt.Login)
		r.With(rt.Authenticate).Delete("/auth/{token}", rt.Logout)
		r.Post("/auth/password-reset", rt.PasswordReset)
		r.Post("/auth/password-reset/confirm", rt.PasswordResetConfirm)

		// Demo lifecycle is unauthenticated: the GUID is the secret.
		r.Route("/demos", func(r chi.Router) {
			r.Post("/", rt.CreateDemo)
			r.Get("/{guid}", rt.GetDemo)
			r.Delete("/{guid}", rt.DeleteDemo)
			r.Get("/{guid}/retailers", rt.ListDemoRetailers)
			r.Post("/{guid}/users", rt.CreateDemoUser)
			r.Get("/{guid}/users/{userID}", rt.GetDemoUser)
			r.With(rt.logins.middleware).Post("/{guid}/login", rt.DemoLogin)
		})

		// Everything below requires a valid session envelope.
		r.Group(func(r chi.Router) {
			r.Use(rt.Authenticate)

			r.Post("/users", rt.CreateUser)
			r.Get("/users", rt.ListUsers)
			r.Get("/users/{userID}", rt.GetUser)
			r.Put("/users/{userID}", rt.UpdateUser)

			r.Get("/retailers", rt.ListRetailers)
			r.Get("/retailers/{retailerID}", rt.GetRetailer)

			r.Get("/distribution-centers", rt.ListDistributionCenters)
			r.Get("/distribution-centers/{dcID}", rt.GetDistributionCenter)
			r.Get("/distribution-centers/{dcID}/inventory", rt.GetDistributionCenterInventory)

			r.Get("/shipments", rt.ListShipments)
			r.Post("/shipments", rt.CreateShipment)
			r.Get("/shipments/{shipmentID}", rt.GetShipment)
			r.Put("/shipments/{shipmentID}", rt.UpdateShipment)
			r.Delete("/shipments/{shipmentID}", rt.DeleteShipment)

			r.Get("/products", rt.ListProducts)

			r.Get("/admin/data", rt.AdminData)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
