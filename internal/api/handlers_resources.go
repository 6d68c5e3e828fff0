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

// Health answers the root health check.
//
//	GET /api/v1/
func (rt *Router) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.HealthResponse{Status: "OK"})
}

// ListRetailers lists all retailers.
//
//	GET /api/v1/retailers
func (rt *Router) ListRetailers(w http.ResponseWriter, r *http.Request) {
	auth := sessionFromContext(r.Context())
	body, err := rt.erp.ListRetailers(r.Context(), auth.LoopbackToken)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondRaw(w, http.StatusOK, body)
}

// GetRetailer fetches a retailer by ID.
//
//	GET /api/v1/retailers/{retailerID}
func (rt *Router) GetRetailer(w http.ResponseWriter, r *http.Request) {
	auth := sessionFromContext(r.Context())
	body, err := rt.erp.GetRetailer(r.Context(), auth.LoopbackToken, chi.URLParam(r, "retailerID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondRaw(w, http.StatusOK, body)
}

// ListDistributionCenters lists all distribution centers.
//
//	GET /api/v1/distribution-centers
func (rt *Router) ListDistributionCenters(w http.ResponseWriter, r *http.Request) {
	auth := sessionFromContext(r.Context())
	body, err := rt.erp.ListDistributionCenters(r.Context(), auth.LoopbackToken)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondRaw(w, http.StatusOK, body)
}

// GetDistributionCenter fetches a distribution center by ID.
//
//	GET /api/v1/distribution-centers/{dcID}
func (rt *Router) GetDistributionCenter(w http.ResponseWriter, r *http.Request) {
	auth := sessionFromContext(r.Context())
	body, err := rt.erp.GetDistributionCenter(r.Context(), auth.LoopbackToken, chi.URLParam(r, "dcID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondRaw(w, http.StatusOK, body)
}

// GetDistributionCenterInventory fetches the stock at a distribution
// center.
//
//	GET /api/v1/distribution-centers/{dcID}/inventory
func (rt *Router) GetDistributionCenterInventory(w http.ResponseWriter, r *http.Request) {
	auth := sessionFromContext(r.Context())
	body, err := rt.erp.GetDistributionCenterInventory(r.Context(), auth.LoopbackToken, chi.URLParam(r, "dcID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondRaw(w, http.StatusOK, body)
}

// ListProducts lists the product catalog.
//
//	GET /api/v1/products
func (rt *Router) ListProducts(w http.ResponseWriter, r *http.Request) {
	auth := sessionFromContext(r.Context())
	body, err := rt.erp.ListProducts(r.Context(), auth.LoopbackToken)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondRaw(w, http.StatusOK, body)
}
