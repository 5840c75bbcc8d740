// Package identity carries the authenticated caller of a request.
//
// An Identity is either the operator, authenticated with the configured API
// token (or anonymous when no token is configured), or a study profile
// authenticated with a profile-scoped token.
//
//	ctx = identity.Set(ctx, identity.Profile("alice"))
//	id, ok := identity.Get(ctx)
//	if ok && id.CanAccessProfile("alice") { ... }
package identity
