// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

// Package erp is the typed client for the upstream ERP REST API. Every
// call translates the upstream outcome into the gateway's error taxonomy
// at the point of detection:
//
//	400 -> VALIDATION_ERROR
//	401 -> AUTHENTICATION_ERROR
//	404 -> NOT_FOUND
//	422 -> UNPROCESSABLE_ENTITY
//	transport failure or open breaker -> DEPENDENCY_ERROR
//	anything else unexpected -> SERVER_ERROR
//
// Response bodies are passed through as json.RawMessage wherever the
// gateway does not need to inspect them, so the ERP's wire shapes reach
// clients untouched.
package erp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/conveyor-labs/conveyor/internal/apierr"
	"github.com/conveyor-labs/conveyor/internal/config"
	"github.com/conveyor-labs/conveyor/internal/logging"
	"github.com/conveyor-labs/conveyor/internal/metrics"
)

// upstreamResponse is the raw outcome of one upstream call before status
// translation.
type upstreamResponse struct {
	status int
	body   []byte
}

// Client calls the upstream ERP. All methods are safe for concurrent
// use. A single circuit breaker guards the whole upstream: the ERP is
// one system, and when it is down every resource is down.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker[*upstreamResponse]
}

// NewClient creates an ERP client from configuration.
//
// Breaker semantics: only transport-level failures count against the
// breaker. An upstream 4xx/5xx means the ERP answered, so those flow
// through as breaker successes and are translated afterwards.
func NewClient(cfg *config.ERPConfig) *Client {
	cbName := "erp-api"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[*upstreamResponse](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.BreakerMinRequests {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= cfg.BreakerFailureRatio

			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit to ERP")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &Client{
		baseURL: cfg.URL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cb: cb,
	}
}

func stateToString(s gobreaker.State) string {
	switch s {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// do performs one upstream call and returns the translated body.
// token is the opaque ERP session token, forwarded in the Authorization
// header; empty for unauthenticated calls (login, demo creation).
func (c *Client) do(ctx context.Context, operation, method, path, token string, payload interface{}) (json.RawMessage, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, apierr.Server("Server Error").WithCause(fmt.Errorf("failed to encode request body: %w", err))
		}
		reqBody = bytes.NewReader(encoded)
	}

	start := time.Now()
	resp, err := c.cb.Execute(func() (*upstreamResponse, error) {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if token != "" {
			req.Header.Set("Authorization", token)
		}

		httpResp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}
		defer func() { _ = httpResp.Body.Close() }()

		body, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}

		return &upstreamResponse{status: httpResp.StatusCode, body: body}, nil
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(c.cb.Name(), "rejected").Inc()
			logging.Warn().Str("operation", operation).Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(c.cb.Name(), "failure").Inc()
		}
		metrics.ERPRequestErrors.WithLabelValues(operation, string(apierr.KindDependency)).Inc()
		return nil, apierr.Dependency("ERP service is unavailable.").WithCause(err)
	}

	metrics.CircuitBreakerRequests.WithLabelValues(c.cb.Name(), "success").Inc()
	metrics.RecordERPRequest(operation, resp.status, time.Since(start))

	if resp.status >= 200 && resp.status < 300 {
		return resp.body, nil
	}

	apiErr := translateStatus(resp.status, resp.body)
	metrics.ERPRequestErrors.WithLabelValues(operation, string(apiErr.Kind)).Inc()
	logging.Debug().
		Str("operation", operation).
		Int("status", resp.status).
		Str("kind", string(apiErr.Kind)).
		Msg("ERP call failed")
	return nil, apiErr
}

// upstreamError is the Loopback-style error envelope the ERP answers
// with on failures: {"error": {"message": "..."}}.
type upstreamError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// translateStatus maps a non-2xx upstream status into the taxonomy.
// The upstream error message, when present, becomes user_details so the
// client sees what the ERP objected to.
func translateStatus(status int, body []byte) *apierr.Error {
	var apiErr *apierr.Error
	switch status {
	case http.StatusBadRequest:
		apiErr = apierr.Validation("Bad request.")
	case http.StatusUnauthorized:
		apiErr = apierr.Authentication("Authentication required.")
	case http.StatusNotFound:
		apiErr = apierr.NotFound("")
	case http.StatusUnprocessableEntity:
		apiErr = apierr.Unprocessable("Unprocessable entity.")
	default:
		apiErr = apierr.Server("Server Error").
			WithCause(fmt.Errorf("unexpected ERP status %d", status))
	}

	var ue upstreamError
	if err := json.Unmarshal(body, &ue); err == nil && ue.Error.Message != "" {
		apiErr = apiErr.WithUserDetails(ue.Error.Message)
	}

	return apiErr
}
