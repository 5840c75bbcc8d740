package endpoints

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recallkit/recallkit/pkg/token"
)

func TestProgressEndpoints(t *testing.T) {
	srv := newTestServer(t, "")

	t.Run("missing profile is an empty object", func(t *testing.T) {
		w := doRequest(srv, httptest.NewRequest("GET", "/api/progress/alice", nil), "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{}`, w.Body.String())
	})

	t.Run("put then get", func(t *testing.T) {
		body := `{"seen":["a","b"],"streak":3}`
		w := doRequest(srv, httptest.NewRequest("PUT", "/api/progress/alice", strings.NewReader(body)), "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())

		w = doRequest(srv, httptest.NewRequest("GET", "/api/progress/alice", nil), "")
		assert.JSONEq(t, body, w.Body.String())
	})

	t.Run("body must be an object", func(t *testing.T) {
		for _, body := range []string{`[1,2]`, `"x"`, `null`, `{broken`} {
			w := doRequest(srv, httptest.NewRequest("PUT", "/api/progress/alice", strings.NewReader(body)), "")
			assert.Equal(t, http.StatusBadRequest, w.Code, body)
		}
	})

	t.Run("invalid profile", func(t *testing.T) {
		w := doRequest(srv, httptest.NewRequest("GET", "/api/progress/bad%20name", nil), "")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = doRequest(srv, httptest.NewRequest("PUT", "/api/progress/bad%20name", strings.NewReader(`{}`)), "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("corrupt stored document", func(t *testing.T) {
		path := filepath.Join(srv.Config.DataDir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		w := doRequest(srv, httptest.NewRequest("GET", "/api/progress/broken", nil), "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w := doRequest(srv, httptest.NewRequest("DELETE", "/api/progress/alice", nil), "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"deleted":true}`, w.Body.String())

		w = doRequest(srv, httptest.NewRequest("GET", "/api/progress/alice", nil), "")
		assert.JSONEq(t, `{}`, w.Body.String())

		w = doRequest(srv, httptest.NewRequest("DELETE", "/api/progress/nobody", nil), "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestProgressEndpoints_Auth(t *testing.T) {
	srv := newTestServer(t, "s3cret")
	scoped, err := token.Issue("s3cret", "alice", time.Hour)
	require.NoError(t, err)

	put := func(profile, tok string) int {
		req := httptest.NewRequest("PUT", "/api/progress/"+profile, strings.NewReader(`{"a":1}`))
		return doRequest(srv, req, tok).Code
	}

	assert.Equal(t, http.StatusUnauthorized, put("alice", ""))
	assert.Equal(t, http.StatusOK, put("alice", "s3cret"))
	assert.Equal(t, http.StatusOK, put("alice", scoped))
	assert.Equal(t, http.StatusForbidden, put("bob", scoped))

	// reads stay public
	w := doRequest(srv, httptest.NewRequest("GET", "/api/progress/alice", nil), "")
	assert.JSONEq(t, `{"a":1}`, w.Body.String())
}

func TestProgressEndpoints_CORSPreflight(t *testing.T) {
	srv := newTestServer(t, "secret")

	tests := []struct {
		name      string
		requested string
		expected  []string
	}{
		{"standard headers", "authorization, content-type", []string{"Authorization", "Content-Type"}},
		{"custom header", "content-type, x-client-version", []string{"Content-Type", "X-Client-Version"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("OPTIONS", "/api/progress/alice", nil)
			req.Header.Set("Origin", "http://notes.example")
			req.Header.Set("Access-Control-Request-Method", "PUT")
			req.Header.Set("Access-Control-Request-Headers", tc.requested)
			w := doRequest(srv, req, "")

			require.Equal(t, http.StatusOK, w.Code)
			assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
			for _, h := range tc.expected {
				assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), h)
			}
		})
	}

	t.Run("simple requests still carry CORS headers", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/progress/alice", nil)
		req.Header.Set("Origin", "http://notes.example")
		w := doRequest(srv, req, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}
