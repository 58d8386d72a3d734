// internal/domain/session/context.go
package session

import "strings"

// Context is the explicit session context threaded through the checkout
// pipeline. It replaces ambient global auth state: handlers build it
// (from a verified ID token or a bare session header) and pass it down,
// so usecases and their tests never depend on global initialization.
type Context struct {
	// SessionID scopes the cart and the session asset tiers.
	SessionID string

	// Verified is true when the context was built from a verified
	// ID token. An unverified context can still browse; order
	// submission policy for unverified sessions sits with the caller.
	Verified bool

	CustomerEmail string
	CustomerName  string
}

// Valid reports whether the context can scope session state.
func (c Context) Valid() bool {
	return strings.TrimSpace(c.SessionID) != ""
}
