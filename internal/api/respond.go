// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

// Package api implements the gateway's HTTP surface: the chi router,
// the authentication middleware, and the handlers that proxy each
// resource to the upstream ERP.
package api

import (
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/conveyor-labs/conveyor/internal/apierr"
	"github.com/conveyor-labs/conveyor/internal/logging"
	"github.com/conveyor-labs/conveyor/internal/middleware"
	"github.com/conveyor-labs/conveyor/internal/validation"
)

// errorResponse is the wire shape of every failure:
// {"code": 404, "message": "Resource does not exist.", "user_details": "..."}.
type errorResponse struct {
	Code        int    `json:"code"`
	Message     string `json:"message"`
	UserDetails string `json:"user_details,omitempty"`
}

// respondJSON sends a JSON response with proper headers.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondRaw passes an upstream body through verbatim.
func respondRaw(w http.ResponseWriter, status int, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError normalizes err into the taxonomy and serializes it. The
// full error, including any internal cause, is logged here; only the
// client-safe fields leave the process.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := apierr.From(err)

	event := logging.Warn()
	if apiErr.Status >= 500 {
		event = logging.Error()
	}
	event.
		Str("kind", string(apiErr.Kind)).
		Str("request_id", middleware.GetRequestID(r.Context())).
		Str("path", r.URL.Path).
		Err(apiErr).
		Msg("Request failed")

	respondJSON(w, apiErr.Status, &errorResponse{
		Code:        apiErr.Status,
		Message:     apiErr.Message,
		UserDetails: apiErr.UserDetails,
	})
}

// decodeBody reads and validates a JSON request body into v.
func decodeBody(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return apierr.Validation("Bad request.").WithCause(err)
	}
	if len(body) == 0 {
		return apierr.Validation("Request body is required.")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return apierr.Validation("Request body is not valid JSON.").WithCause(err)
	}
	if verr := validation.ValidateStruct(v); verr != nil {
		return verr.ToAPIError()
	}
	return nil
}
