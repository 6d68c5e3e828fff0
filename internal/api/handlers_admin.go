// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

package api

import (
	"net/http"
	"sync"

	"github.com/conveyor-labs/conveyor/internal/erp"
	"github.com/conveyor-labs/conveyor/internal/models"
)

// AdminData aggregates the dashboard payload: shipments, retailers,
// and distribution centers fetched from the ERP in parallel. Every
// branch runs to completion (no cooperative cancellation of in-flight
// branches), and any branch failing fails the whole request.
//
//	GET /api/v1/admin/data
func (rt *Router) AdminData(w http.ResponseWriter, r *http.Request) {
	if err := rt.requireRole(r, "/admin/data", "read"); err != nil {
		respondError(w, r, err)
		return
	}

	auth := sessionFromContext(r.Context())
	token := auth.LoopbackToken

	var (
		wg   sync.WaitGroup
		data models.AdminData
		errs [3]error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		data.Shipments, errs[0] = rt.erp.ListShipments(r.Context(), token, erp.ShipmentFilter{})
	}()
	go func() {
		defer wg.Done()
		data.Retailers, errs[1] = rt.erp.ListRetailers(r.Context(), token)
	}()
	go func() {
		defer wg.Done()
		data.DistributionCenters, errs[2] = rt.erp.ListDistributionCenters(r.Context(), token)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			respondError(w, r, err)
			return
		}
	}

	respondJSON(w, http.StatusOK, &data)
}
