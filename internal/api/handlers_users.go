// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/conveyor-labs/conveyor/internal/models"
)

// CreateUser creates a user directly in the ERP. Gated on the user
// administration permission.
//
//	POST /api/v1/users
func (rt *Router) CreateUser(w http.ResponseWriter, r *http.Request) {
	if err := rt.requireRole(r, "/users", "create"); err != nil {
		respondError(w, r, err)
		return
	}

	var req models.CreateUserRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	auth := sessionFromContext(r.Context())
	body, err := rt.erp.CreateUser(r.Context(), auth.LoopbackToken, &req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondRaw(w, http.StatusCreated, body)
}

// ListUsers lists all users. Gated on the user administration
// permission.
//
//	GET /api/v1/users
func (rt *Router) ListUsers(w http.ResponseWriter, r *http.Request) {
	if err := rt.requireRole(r, "/users", "list"); err != nil {
		respondError(w, r, err)
		return
	}

	auth := sessionFromContext(r.Context())
	body, err := rt.erp.ListUsers(r.Context(), auth.LoopbackToken)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondRaw(w, http.StatusOK, body)
}

// GetUser fetches a user by ID.
//
//	GET /api/v1/users/{userID}
func (rt *Router) GetUser(w http.ResponseWriter, r *http.Request) {
	auth := sessionFromContext(r.Context())
	body, err := rt.erp.GetUser(r.Context(), auth.LoopbackToken, chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondRaw(w, http.StatusOK, body)
}

// UpdateUser updates a user's mutable fields. Gated on the user
// administration permission.
//
//	PUT /api/v1/users/{userID}
func (rt *Router) UpdateUser(w http.ResponseWriter, r *http.Request) {
	if err := rt.requireRole(r, "/users/"+chi.URLParam(r, "userID"), "update"); err != nil {
		respondError(w, r, err)
		return
	}

	var req models.UpdateUserRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	auth := sessionFromContext(r.Context())
	body, err := rt.erp.UpdateUser(r.Context(), auth.LoopbackToken, chi.URLParam(r, "userID"), &req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondRaw(w, http.StatusOK, body)
}
