package identity

import (
	"context"
	"net"
	"net/http"
	"strings"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Identity.
	Key ContextKey = "identity"
)

// Identity represents the authenticated caller of a request.
type Identity struct {
	// Operator is true for callers holding the master API token, and for
	// every caller when authentication is disabled.
	Operator bool
	// ProfileScope is the only profile a scoped token may modify.
	ProfileScope string

	RemoteIP net.IP
}

// Operator returns the identity of a master-token holder.
func Operator() *Identity {
	return &Identity{Operator: true}
}

// Profile returns the identity of a profile-scoped token holder.
func Profile(profile string) *Identity {
	return &Identity{ProfileScope: profile}
}

// WithRemoteIP sets the remote IP address.
func (i *Identity) WithRemoteIP(ip net.IP) *Identity {
	i.RemoteIP = ip
	return i
}

// CanAccessProfile reports whether the caller may modify a profile.
func (i *Identity) CanAccessProfile(profile string) bool {
	return i.Operator || i.ProfileScope == profile
}

// Name is used in audit messages.
func (i *Identity) Name() string {
	if i.Operator {
		return "operator"
	}
	return "profile:" + i.ProfileScope
}

// ClientIP returns the address of the client that sent r.
func ClientIP(r *http.Request) net.IP {
	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return net.ParseIP(strings.TrimSpace(host))
}

// Get retrieves Identity from context.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(Key).(*Identity)
	return id, ok
}

// Set stores Identity in context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, Key, id)
}
