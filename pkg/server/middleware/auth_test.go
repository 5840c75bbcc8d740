package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recallkit/recallkit/pkg/audit"
	"github.com/recallkit/recallkit/pkg/identity"
	"github.com/recallkit/recallkit/pkg/token"
)

func newRouter(auth *BearerAuthenticator) *mux.Router {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, found := identity.Get(r.Context())
		if !found {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(id.Name()))
	})

	r := mux.NewRouter()
	r.Handle("/progress/{profile}", auth.RequireProfile(ok)).Methods("PUT")
	r.Handle("/topics/{topic}", auth.RequireOperator(ok)).Methods("DELETE")
	return r
}

func do(router http.Handler, method, path, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestBearerAuthenticator_Disabled(t *testing.T) {
	router := newRouter(NewBearerAuthenticator(""))

	w := do(router, "PUT", "/progress/alice", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "operator", w.Body.String())

	w = do(router, "DELETE", "/topics/python", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBearerAuthenticator_Enabled(t *testing.T) {
	auth := NewBearerAuthenticator("s3cret")
	router := newRouter(auth)

	scoped, err := token.Issue("s3cret", "alice", time.Hour)
	require.NoError(t, err)
	forged, err := token.Issue("other", "alice", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name     string
		method   string
		path     string
		authz    string
		wantCode int
		wantBody string
	}{
		{"missing header", "PUT", "/progress/alice", "", http.StatusUnauthorized, `{"error":"Invalid or missing token"}`},
		{"wrong token", "PUT", "/progress/alice", "Bearer nope", http.StatusUnauthorized, ""},
		{"wrong scheme", "PUT", "/progress/alice", "Token s3cret", http.StatusUnauthorized, ""},
		{"master token", "PUT", "/progress/alice", "Bearer s3cret", http.StatusOK, "operator"},
		{"lowercase scheme", "PUT", "/progress/alice", "bearer s3cret", http.StatusOK, "operator"},
		{"scoped token own profile", "PUT", "/progress/alice", "Bearer " + scoped, http.StatusOK, "profile:alice"},
		{"scoped token other profile", "PUT", "/progress/bob", "Bearer " + scoped, http.StatusForbidden, ""},
		{"scoped token on topics", "DELETE", "/topics/python", "Bearer " + scoped, http.StatusForbidden, ""},
		{"forged scoped token", "PUT", "/progress/alice", "Bearer " + forged, http.StatusUnauthorized, ""},
		{"master token on topics", "DELETE", "/topics/python", "Bearer s3cret", http.StatusOK, "operator"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, tt.method, tt.path, tt.authz)
			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestIdentify(t *testing.T) {
	auth := NewBearerAuthenticator("s3cret")
	var got *identity.Identity
	h := auth.Identify(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = identity.Get(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, got)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, got)
	assert.True(t, got.Operator)
}

func TestRequire_AuditsClientIP(t *testing.T) {
	var buf bytes.Buffer
	wasEnabled := audit.IsEnabled()
	audit.SetEnabled(true)
	audit.DefaultLogger.SetWriter(&buf)
	defer func() {
		audit.SetEnabled(wasEnabled)
		audit.DefaultLogger.SetWriter(os.Stdout)
	}()

	req := httptest.NewRequest("PUT", "/progress/alice", nil)
	req.RemoteAddr = "192.0.2.10:4242"
	w := httptest.NewRecorder()
	newRouter(NewBearerAuthenticator("s3cret")).ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, buf.String(), `ip="192.0.2.10"`)
	assert.NotContains(t, buf.String(), "4242")
}
