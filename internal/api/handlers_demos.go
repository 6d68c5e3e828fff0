// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/conveyor-labs/conveyor/internal/metrics"
	"github.com/conveyor-labs/conveyor/internal/models"
)

// CreateDemo provisions a new demo environment.
//
//	POST /api/v1/demos {"name": "...", "email": "..."}
func (rt *Router) CreateDemo(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDemoRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	body, err := rt.erp.CreateDemo(r.Context(), req.Name, req.Email)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondRaw(w, http.StatusCreated, body)
}

// GetDemo fetches a demo by GUID.
//
//	GET /api/v1/demos/{guid}
func (rt *Router) GetDemo(w http.ResponseWriter, r *http.Request) {
	body, err := rt.erp.GetDemo(r.Context(), chi.URLParam(r, "guid"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondRaw(w, http.StatusOK, body)
}

// DeleteDemo tears a demo down.
//
//	DELETE /api/v1/demos/{guid}
func (rt *Router) DeleteDemo(w http.ResponseWriter, r *http.Request) {
	if err := rt.erp.DeleteDemo(r.Context(), chi.URLParam(r, "guid")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListDemoRetailers lists the retailers seeded into a demo.
//
//	GET /api/v1/demos/{guid}/retailers
func (rt *Router) ListDemoRetailers(w http.ResponseWriter, r *http.Request) {
	body, err := rt.erp.ListDemoRetailers(r.Context(), chi.URLParam(r, "guid"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondRaw(w, http.StatusOK, body)
}

// CreateDemoUser adds a retailer-scoped user to a demo.
//
//	POST /api/v1/demos/{guid}/users {"retailerId": "..."}
func (rt *Router) CreateDemoUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDemoUserRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	body, err := rt.erp.CreateDemoUser(r.Context(), chi.URLParam(r, "guid"), req.RetailerID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondRaw(w, http.StatusCreated, body)
}

// GetDemoUser fetches one of a demo's generated users.
//
//	GET /api/v1/demos/{guid}/users/{userID}
func (rt *Router) GetDemoUser(w http.ResponseWriter, r *http.Request) {
	body, err := rt.erp.GetDemoUser(r.Context(), chi.URLParam(r, "guid"), chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondRaw(w, http.StatusOK, body)
}

// DemoLogin logs in as one of a demo's generated users. Demo envelopes
// get the long TTL so a shared demo link keeps working.
//
//	POST /api/v1/demos/{guid}/login {"userId": "..."}
func (rt *Router) DemoLogin(w http.ResponseWriter, r *http.Request) {
	var req models.DemoLoginRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	result, err := rt.erp.LoginDemoUser(r.Context(), chi.URLParam(r, "guid"), req.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	token, err := rt.sessions.IssueDemo(models.AuthSession{
		LoopbackToken: result.Token.ID,
		User:          result.User,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	metrics.SessionsIssued.WithLabelValues("demo").Inc()
	rt.setAuthCookie(w, token, rt.cfg.Security.DemoSessionTTL)
	respondJSON(w, http.StatusOK, &models.TokenResponse{Token: token})
}
