package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"regexp"

	"github.com/gorilla/mux"

	"github.com/recallkit/recallkit/pkg/audit"
	"github.com/recallkit/recallkit/pkg/identity"
	"github.com/recallkit/recallkit/pkg/token"
)

var bearerRegex = regexp.MustCompile(`^(?i:Bearer)\s+(\S+)\s*$`)

// ErrUnauthorized is returned when a request carries no acceptable token
var ErrUnauthorized = errors.New("invalid or missing token")

// BearerAuthenticator guards mutating routes with the configured API token.
// With an empty token every request is let through as the operator.
type BearerAuthenticator struct {
	Token string
}

// NewBearerAuthenticator creates a BearerAuthenticator
func NewBearerAuthenticator(apiToken string) *BearerAuthenticator {
	return &BearerAuthenticator{Token: apiToken}
}

// Enabled reports whether requests must authenticate
func (a *BearerAuthenticator) Enabled() bool {
	return a.Token != ""
}

// Authenticate resolves the identity of a request. The bearer value may be
// the API token itself or a profile-scoped token signed with it.
func (a *BearerAuthenticator) Authenticate(r *http.Request) (*identity.Identity, error) {
	ip := identity.ClientIP(r)
	if !a.Enabled() {
		return identity.Operator().WithRemoteIP(ip), nil
	}

	m := bearerRegex.FindStringSubmatch(r.Header.Get("Authorization"))
	if m == nil {
		return nil, ErrUnauthorized
	}
	presented := m[1]

	if subtle.ConstantTimeCompare([]byte(presented), []byte(a.Token)) == 1 {
		return identity.Operator().WithRemoteIP(ip), nil
	}
	profile, err := token.Verify(a.Token, presented)
	if err != nil {
		return nil, ErrUnauthorized
	}
	return identity.Profile(profile).WithRemoteIP(ip), nil
}

// RequireOperator only admits the operator.
func (a *BearerAuthenticator) RequireOperator(next http.Handler) http.Handler {
	return a.require(next, func(id *identity.Identity, r *http.Request) bool {
		return id.Operator
	})
}

// RequireProfile admits the operator and tokens scoped to the {profile}
// route variable.
func (a *BearerAuthenticator) RequireProfile(next http.Handler) http.Handler {
	return a.require(next, func(id *identity.Identity, r *http.Request) bool {
		return id.CanAccessProfile(mux.Vars(r)["profile"])
	})
}

func (a *BearerAuthenticator) require(next http.Handler, allowed func(*identity.Identity, *http.Request) bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := a.Authenticate(r)
		if err != nil {
			clientIP := identity.ClientIP(r).String()
			log.Printf("Auth failed: invalid/missing token from %s", clientIP)
			audit.Log(audit.AuthFailureEvent{
				ClientIP: clientIP,
				Path:     r.URL.Path,
				Reason:   err.Error(),
			})
			writeError(w, http.StatusUnauthorized, "Invalid or missing token")
			return
		}
		if !allowed(id, r) {
			log.Printf("Auth failed: %s may not access %s", id.Name(), r.URL.Path)
			writeError(w, http.StatusForbidden, "Token does not grant access to this resource")
			return
		}

		next.ServeHTTP(w, r.WithContext(identity.Set(r.Context(), id)))
	})
}

// Identify attaches the caller's identity when one can be resolved, without
// rejecting anything. The study page uses it to decide whether to embed a
// profile token.
func (a *BearerAuthenticator) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, err := a.Authenticate(r); err == nil {
			r = r.WithContext(identity.Set(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, code int, message string) {
	body, _ := json.Marshal(map[string]string{"error": message})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}
