// Package gate implements the shared access-code check that hides or
// reveals the dashboard.
//
// A Gate is a low-assurance lock, not an account system: there is one
// configured code and every visitor who types it sees everything. Each
// browser session owns its own Gate (see internal/session), so one
// visitor's login never unlocks another's.
//
// State machine:
//
//	Unauthenticated --Attempt(match)----> Authenticated
//	Unauthenticated --Attempt(mismatch)-> Unauthenticated
//	Authenticated   --Reset()-----------> Unauthenticated
//
// There is no expiry. A mismatching Attempt on an authenticated gate does
// not lock it again.
package gate

import (
	"crypto/subtle"
	"sync/atomic"

	"github.com/fyrsmithlabs/socialintel/internal/config"
)

// Result is the outcome of an access attempt.
type Result int

const (
	// Denied means the candidate did not match, or no code is configured.
	Denied Result = iota
	// Granted means the candidate matched the configured code exactly.
	Granted
)

// String returns "granted" or "denied" for logs and metric attributes.
func (r Result) String() string {
	if r == Granted {
		return "granted"
	}
	return "denied"
}

// Gate holds the authenticated flag for one session.
type Gate struct {
	secret        config.Secret
	authenticated atomic.Bool
}

// New returns an unauthenticated gate guarding secret. An unset secret
// produces a gate that denies every attempt.
func New(secret config.Secret) *Gate {
	return &Gate{secret: secret}
}

// IsAuthenticated reports whether a matching code has been submitted since
// construction or the last Reset.
func (g *Gate) IsAuthenticated() bool {
	return g.authenticated.Load()
}

// Attempt compares candidate with the configured code byte for byte.
// No trimming, case folding or normalisation is applied. A match marks the
// gate authenticated; a mismatch leaves the state unchanged.
func (g *Gate) Attempt(candidate string) Result {
	if !g.secret.IsSet() {
		return Denied
	}
	if subtle.ConstantTimeCompare([]byte(candidate), []byte(g.secret.Value())) != 1 {
		return Denied
	}
	g.authenticated.Store(true)
	return Granted
}

// Reset returns the gate to the unauthenticated state.
func (g *Gate) Reset() {
	g.authenticated.Store(false)
}
