// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

package api

import (
	"io"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/conveyor-labs/conveyor/internal/apierr"
	"github.com/conveyor-labs/conveyor/internal/erp"
	"github.com/conveyor-labs/conveyor/internal/models"
)

// ListShipments lists shipments, optionally narrowed by status, did
// (originating distribution center), and rid (destination retailer).
//
//	GET /api/v1/shipments?status=SHIPPED&did=D1&rid=R1
func (rt *Router) ListShipments(w http.ResponseWriter, r *http.Request) {
	auth := sessionFromContext(r.Context())

	filter := erp.ShipmentFilter{
		Status: r.URL.Query().Get("status"),
		FromID: r.URL.Query().Get("did"),
		ToID:   r.URL.Query().Get("rid"),
	}

	body, err := rt.erp.ListShipments(r.Context(), auth.LoopbackToken, filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondRaw(w, http.StatusOK, body)
}

// GetShipment fetches a shipment. With include_items set, the shipment
// record and its line items are fetched concurrently and merged; both
// branches run to completion, and either branch failing fails the whole
// request.
//
//	GET /api/v1/shipments/{shipmentID}?include_items=1
func (rt *Router) GetShipment(w http.ResponseWriter, r *http.Request) {
	auth := sessionFromContext(r.Context())
	shipmentID := chi.URLParam(r, "shipmentID")

	includeItems := r.URL.Query().Get("include_items")
	if includeItems == "" || includeItems == "0" || includeItems == "false" {
		body, err := rt.erp.GetShipment(r.Context(), auth.LoopbackToken, shipmentID)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondRaw(w, http.StatusOK, body)
		return
	}

	var (
		wg           sync.WaitGroup
		shipmentBody json.RawMessage
		itemsBody    json.RawMessage
		shipmentErr  error
		itemsErr     error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		shipmentBody, shipmentErr = rt.erp.GetShipment(r.Context(), auth.LoopbackToken, shipmentID)
	}()
	go func() {
		defer wg.Done()
		itemsBody, itemsErr = rt.erp.GetShipmentItems(r.Context(), auth.LoopbackToken, shipmentID)
	}()
	wg.Wait()

	if shipmentErr != nil {
		respondError(w, r, shipmentErr)
		return
	}
	if itemsErr != nil {
		respondError(w, r, itemsErr)
		return
	}

	merged, err := mergeShipmentItems(shipmentBody, itemsBody)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondRaw(w, http.StatusOK, merged)
}

// mergeShipmentItems grafts the items payload onto the shipment record.
// The shipment body stays otherwise untouched, unknown fields included.
func mergeShipmentItems(shipment, items json.RawMessage) (json.RawMessage, error) {
	var record map[string]json.RawMessage
	if err := json.Unmarshal(shipment, &record); err != nil {
		return nil, apierr.Server("Server Error").WithCause(err)
	}
	record["items"] = items

	merged, err := json.Marshal(record)
	if err != nil {
		return nil, apierr.Server("Server Error").WithCause(err)
	}
	return merged, nil
}

// CreateShipment creates a shipment. The ERP answers 422 for
// referentially invalid fromId/toId, which passes through as
// UNPROCESSABLE_ENTITY.
//
//	POST /api/v1/shipments
func (rt *Router) CreateShipment(w http.ResponseWriter, r *http.Request) {
	var req models.CreateShipmentRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	auth := sessionFromContext(r.Context())
	body, err := rt.erp.CreateShipment(r.Context(), auth.LoopbackToken, &req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondRaw(w, http.StatusCreated, body)
}

// UpdateShipment forwards a shipment update to the ERP verbatim.
//
//	PUT /api/v1/shipments/{shipmentID}
func (rt *Router) UpdateShipment(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil || len(payload) == 0 {
		respondError(w, r, apierr.Validation("Request body is required."))
		return
	}
	if !json.Valid(payload) {
		respondError(w, r, apierr.Validation("Request body is not valid JSON."))
		return
	}

	auth := sessionFromContext(r.Context())
	body, err := rt.erp.UpdateShipment(r.Context(), auth.LoopbackToken, chi.URLParam(r, "shipmentID"), payload)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondRaw(w, http.StatusOK, body)
}

// DeleteShipment deletes a shipment.
//
//	DELETE /api/v1/shipments/{shipmentID}
func (rt *Router) DeleteShipment(w http.ResponseWriter, r *http.Request) {
	auth := sessionFromContext(r.Context())
	if err := rt.erp.DeleteShipment(r.Context(), auth.LoopbackToken, chi.URLParam(r, "shipmentID")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
