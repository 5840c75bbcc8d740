package endpoints

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/recallkit/recallkit/pkg/audit"
	"github.com/recallkit/recallkit/pkg/config"
	"github.com/recallkit/recallkit/pkg/deck"
	"github.com/recallkit/recallkit/pkg/server"
	"github.com/recallkit/recallkit/pkg/server/store/file"
)

const goNotes = `# Go notes

## Flashcard 1: Slices
- **Question**: What does append return?
- **Answer**:
The **updated** slice.

## Flashcard 2: Maps
- **Question**: Is map iteration ordered?
- **Answer**:
No.
`

func init() {
	audit.SetEnabled(false)
}

func newTestServer(t *testing.T, apiToken string, opts ...func(*config.RecallKitConfig)) *server.Server {
	t.Helper()
	root := t.TempDir()

	cfg := &config.RecallKitConfig{
		DataDir:        filepath.Join(root, "progress"),
		BuildDir:       filepath.Join(root, "build"),
		APIToken:       apiToken,
		APIBase:        "http://localhost:8502/api",
		MaxUploadBytes: config.DefaultMaxUploadBytes,
		ReviewLimit:    config.DefaultReviewLimit,
		BoxIntervals:   []string{"0s", "24h", "72h", "168h"},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	progress, err := file.NewProgressStore(cfg.DataDir)
	require.NoError(t, err)

	srv, err := server.NewServer(cfg, deck.NewLibrary(cfg.BuildDir), progress, progress, "127.0.0.1", "0")
	require.NoError(t, err)
	RegisterAll(srv)
	return srv
}

type upload struct {
	name string
	body string
}

func multipartBody(t *testing.T, files ...upload) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := mw.CreateFormFile(UploadField, f.name)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.body))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func doRequest(srv *server.Server, req *http.Request, apiToken string) *httptest.ResponseRecorder {
	if apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+apiToken)
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func uploadTopic(t *testing.T, srv *server.Server, topic, apiToken string, files ...upload) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, files...)
	req := httptest.NewRequest("POST", "/api/topics/"+topic, body)
	req.Header.Set("Content-Type", contentType)
	return doRequest(srv, req, apiToken)
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
