// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

// Package session implements the signed session envelope that carries an
// ERP session token plus a user snapshot between the gateway and its
// clients. Envelopes are JWTs signed with HMAC-SHA256; the gateway keeps
// no server-side session state, so possession of a valid envelope is the
// only credential a client needs.
package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/conveyor-labs/conveyor/internal/apierr"
	"github.com/conveyor-labs/conveyor/internal/config"
	"github.com/conveyor-labs/conveyor/internal/models"
)

// Purpose values for single-purpose tokens. Session envelopes carry no
// purpose claim; a purpose token presented as a session (or vice versa)
// is rejected.
const (
	PurposePasswordReset = "password_reset"
)

// Claims is the envelope payload: the opaque ERP token and the user
// snapshot captured at login time. The snapshot is trusted for the
// lifetime of the envelope and never re-fetched.
type Claims struct {
	LoopbackToken string      `json:"loopback_token,omitempty"`
	User          models.User `json:"user,omitempty"`
	Purpose       string      `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// Manager creates and validates session envelopes. The manager uses
// HMAC-SHA256 signing; rotating the secret invalidates every
// outstanding envelope at once.
type Manager struct {
	secret   []byte
	ttl      time.Duration
	demoTTL  time.Duration
	resetTTL time.Duration
}

// NewManager creates a session envelope manager from the security
// configuration. The secret is stored as []byte to avoid string
// interning of key material.
func NewManager(cfg *config.SecurityConfig) (*Manager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("session secret is required but was empty")
	}

	return &Manager{
		secret:   []byte(cfg.Secret),
		ttl:      cfg.SessionTTL,
		demoTTL:  cfg.DemoSessionTTL,
		resetTTL: cfg.ResetTokenTTL,
	}, nil
}

// Issue signs a session envelope for a direct login.
func (m *Manager) Issue(auth models.AuthSession) (string, error) {
	return m.issue(auth, "", m.ttl)
}

// IssueDemo signs a session envelope for a demo login. Demo envelopes
// live longer so a shared demo link keeps working for its audience.
func (m *Manager) IssueDemo(auth models.AuthSession) (string, error) {
	return m.issue(auth, "", m.demoTTL)
}

// IssueReset signs a short-lived password-reset token for a user. Reset
// tokens carry no ERP session and cannot authenticate API calls.
func (m *Manager) IssueReset(user models.User) (string, error) {
	return m.issue(models.AuthSession{User: user}, PurposePasswordReset, m.resetTTL)
}

func (m *Manager) issue(auth models.AuthSession, purpose string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		LoopbackToken: auth.LoopbackToken,
		User:          auth.User,
		Purpose:       purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session envelope: %w", err)
	}

	return signedToken, nil
}

// Decode validates a session envelope and returns the session it
// carries. Every failure mode, whether the token is expired, tampered
// with, malformed, signed with the wrong algorithm, or a purpose token
// presented as a session, collapses into the same 400 TOKEN_ERROR so
// clients cannot distinguish why a token was rejected.
func (m *Manager) Decode(tokenString string) (*models.AuthSession, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != "" {
		return nil, apierr.Token("Invalid token.")
	}

	return &models.AuthSession{
		LoopbackToken: claims.LoopbackToken,
		User:          claims.User,
	}, nil
}

// DecodeReset validates a password-reset token and returns the user it
// was issued for. Session envelopes are rejected here the same way
// reset tokens are rejected by Decode.
func (m *Manager) DecodeReset(tokenString string) (*models.User, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != PurposePasswordReset {
		return nil, apierr.Token("Invalid token.")
	}

	user := claims.User
	return &user, nil
}

func (m *Manager) parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, apierr.Token("Invalid token.").WithCause(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apierr.Token("Invalid token.")
	}

	return claims, nil
}
