// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

package api

import (
	"net/http"
	"time"

	"github.com/conveyor-labs/conveyor/internal/logging"
	"github.com/conveyor-labs/conveyor/internal/metrics"
	"github.com/conveyor-labs/conveyor/internal/models"
)

// Login authenticates a user against the ERP and answers with a signed
// session envelope wrapping the upstream session token and the user
// snapshot. The envelope is also set as an HttpOnly cookie for browser
// clients.
//
//	POST /api/v1/auth {"user_id": "...", "password": "..."}
func (rt *Router) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	result, err := rt.erp.Login(r.Context(), req.UserID, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	token, err := rt.sessions.Issue(models.AuthSession{
		LoopbackToken: result.Token.ID,
		User:          result.User,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	metrics.SessionsIssued.WithLabelValues("login").Inc()
	rt.setAuthCookie(w, token, rt.cfg.Security.SessionTTL)
	respondJSON(w, http.StatusOK, &models.TokenResponse{Token: token})
}

// Logout invalidates the upstream ERP session. Invalidation is best
// effort: the envelope itself stays decodable until it expires, so a
// failed upstream call still answers 200 and the client simply drops
// its copy of the token.
//
//	DELETE /api/v1/auth/{token}
func (rt *Router) Logout(w http.ResponseWriter, r *http.Request) {
	auth := sessionFromContext(r.Context())

	if err := rt.erp.Logout(r.Context(), auth.LoopbackToken); err != nil {
		logging.Warn().Err(err).Msg("Upstream session invalidation failed")
	}

	rt.clearAuthCookie(w)
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// PasswordReset issues a short-lived single-purpose reset token for a
// user. Delivery of the token (e.g. by email) is outside the gateway;
// the token is returned to the caller.
//
//	POST /api/v1/auth/password-reset {"user_id": "..."}
func (rt *Router) PasswordReset(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordResetRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	token, err := rt.sessions.IssueReset(models.User{ID: req.UserID})
	if err != nil {
		respondError(w, r, err)
		return
	}

	metrics.SessionsIssued.WithLabelValues("reset").Inc()
	respondJSON(w, http.StatusOK, &models.TokenResponse{Token: token})
}

// PasswordResetConfirm consumes a reset token and proxies the password
// change to the ERP. Session envelopes presented here are rejected as
// TOKEN_ERROR by the purpose check.
//
//	POST /api/v1/auth/password-reset/confirm {"token": "...", "new_password": "..."}
func (rt *Router) PasswordResetConfirm(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordResetConfirm
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := rt.sessions.DecodeReset(req.Token)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := rt.erp.SetPassword(r.Context(), "", user.ID, req.NewPassword); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}

func (rt *Router) setAuthCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     authTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   rt.cfg.Environment == "prod",
	})
}

func (rt *Router) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     authTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
