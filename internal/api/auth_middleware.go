// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/conveyor-labs/conveyor/internal/apierr"
	"github.com/conveyor-labs/conveyor/internal/metrics"
	"github.com/conveyor-labs/conveyor/internal/models"
)

type sessionContextKey struct{}

// authTokenCookie is the HttpOnly cookie set on login so browser
// clients authenticate without managing the Authorization header.
const authTokenCookie = "auth_token"

// Authenticate decodes the session envelope from the Authorization
// header (Bearer scheme) or the auth_token cookie, whichever is
// present, and rejects the request before any upstream call when
// neither yields a valid session.
func (rt *Router) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			metrics.AuthFailures.WithLabelValues("missing_token").Inc()
			respondError(w, r, apierr.Authentication("Authorization required."))
			return
		}

		auth, err := rt.sessions.Decode(token)
		if err != nil {
			metrics.AuthFailures.WithLabelValues("invalid_token").Inc()
			respondError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey{}, auth)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken pulls the envelope from the Bearer header, falling back
// to the auth_token cookie.
func extractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if after, ok := strings.CutPrefix(header, "Bearer "); ok {
			return after
		}
		return header
	}
	if cookie, err := r.Cookie(authTokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// sessionFromContext returns the authenticated session stored by
// Authenticate. Handlers behind the middleware can rely on it being
// present.
func sessionFromContext(ctx context.Context) *models.AuthSession {
	if auth, ok := ctx.Value(sessionContextKey{}).(*models.AuthSession); ok {
		return auth
	}
	return &models.AuthSession{}
}

// requireRole consults the RBAC guard with the role claim from the
// session envelope.
func (rt *Router) requireRole(r *http.Request, object, action string) error {
	auth := sessionFromContext(r.Context())
	err := rt.guard.Require(auth.User.Role, object, action)
	if err != nil && apierr.IsKind(err, apierr.KindAuthorization) {
		metrics.AuthFailures.WithLabelValues("forbidden").Inc()
	}
	return err
}
