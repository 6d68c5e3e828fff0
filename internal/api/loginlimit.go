// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

package api

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/conveyor-labs/conveyor/internal/logging"
)

// loginLimiter throttles login attempts per client IP to slow down
// credential stuffing. Separate from the global httprate limit, which
// is far too permissive for an authentication endpoint.
type loginLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitorLimiter
	limit    rate.Limit
	burst    int
}

type visitorLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// newLoginLimiter allows attempts login attempts per window for each
// client IP.
func newLoginLimiter(attempts int, window time.Duration) *loginLimiter {
	l := &loginLimiter{
		visitors: make(map[string]*visitorLimiter),
		limit:    rate.Every(window / time.Duration(attempts)),
		burst:    attempts,
	}
	go l.cleanupLoop(window)
	return l
}

func (l *loginLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitorLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = time.Now()

	return v.limiter.Allow()
}

// cleanupLoop drops idle visitors so the map does not grow without
// bound.
func (l *loginLimiter) cleanupLoop(window time.Duration) {
	ticker := time.NewTicker(window)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-3 * window)
		l.mu.Lock()
		for ip, v := range l.visitors {
			if v.lastSeen.Before(cutoff) {
				delete(l.visitors, ip)
			}
		}
		l.mu.Unlock()
	}
}

// middleware rejects over-limit login attempts with 429 before the
// handler touches the ERP.
func (l *loginLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !l.allow(ip) {
			logging.Warn().Str("ip", ip).Msg("Login rate limit exceeded")
			respondJSON(w, http.StatusTooManyRequests, &errorResponse{
				Code:    http.StatusTooManyRequests,
				Message: "Too many login attempts. Try again later.",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
