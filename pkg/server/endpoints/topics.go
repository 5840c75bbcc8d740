package endpoints

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"github.com/recallkit/recallkit/pkg/audit"
	"github.com/recallkit/recallkit/pkg/deck"
	"github.com/recallkit/recallkit/pkg/flashcard"
	"github.com/recallkit/recallkit/pkg/identity"
	"github.com/recallkit/recallkit/pkg/server"
)

// UploadField is the multipart field carrying markdown notes
const UploadField = "files"

var errNoFiles = errors.New("no .md files uploaded")

// TopicsResponse represents the response from GET /api/topics
type TopicsResponse struct {
	Topics []string `json:"topics"`
}

// UploadResponse represents the response from POST /api/topics/{topic}
type UploadResponse struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// RegisterTopicsEndpoints registers the topic set endpoints
func RegisterTopicsEndpoints(s *server.Server) {
	s.Router.HandleFunc("/api/topics", handleListTopics(s.Library)).Methods("GET")
	s.Router.HandleFunc("/api/topics/{topic}", handleGetTopic(s.Library)).Methods("GET")
	s.Router.Handle("/api/topics/{topic}", s.Auth.RequireOperator(handleUploadTopic(s.Library, s.Config.MaxUploadBytes))).Methods("POST")
	s.Router.Handle("/api/topics/{topic}", s.Auth.RequireOperator(handleDeleteTopic(s.Library))).Methods("DELETE")
}

func handleListTopics(library *deck.Library) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topics, err := library.List()
		if err != nil {
			respondWithStoreError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, TopicsResponse{Topics: topics})
	}
}

func handleGetTopic(library *deck.Library) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topic := mux.Vars(r)["topic"]

		if r.URL.Query().Get("format") == "tsv" {
			data, err := library.LoadTSV(topic)
			if err != nil {
				respondWithStoreError(w, r, err)
				return
			}
			w.Header().Set("Content-Type", "text/tab-separated-values; charset=utf-8")
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", topic+".tsv"))
			_, _ = w.Write(data)
			return
		}

		data, err := library.LoadJSON(topic)
		if err != nil {
			respondWithStoreError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	}
}

func handleUploadTopic(library *deck.Library, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topic := mux.Vars(r)["topic"]
		event := audit.TopicUploadEvent{
			Actor:    actor(r),
			ClientIP: identity.ClientIP(r).String(),
			Topic:    topic,
		}

		if err := deck.ValidateTopic(topic); err != nil {
			event.ErrorMessage = err.Error()
			audit.Log(event)
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		sources, err := readUpload(w, r, maxBytes)
		if err != nil {
			event.ErrorMessage = err.Error()
			audit.Log(event)
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", maxBytes))
				return
			}
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		event.Files = len(sources)

		out, err := flashcard.BuildOutputs(sources)
		if err == nil {
			event.Cards, err = library.Save(topic, out)
		}
		event.Success = err == nil
		event.ErrorMessage = errorMessage(err)
		audit.Log(event)
		if err != nil {
			respondWithStoreError(w, r, err)
			return
		}

		respondWithJSON(w, http.StatusOK, UploadResponse{Topic: topic, Count: event.Cards})
	}
}

// readUpload collects the markdown files of a multipart upload
func readUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) ([]flashcard.Source, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("invalid multipart upload: %w", err)
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	headers := r.MultipartForm.File[UploadField]
	sources := make([]flashcard.Source, 0, len(headers))
	for _, fh := range headers {
		if !strings.EqualFold(filepath.Ext(fh.Filename), ".md") {
			return nil, fmt.Errorf("only .md files are accepted: %s", fh.Filename)
		}
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
		}
		sources = append(sources, flashcard.Source{Name: filepath.Base(fh.Filename), Text: string(data)})
	}
	if len(sources) == 0 {
		return nil, errNoFiles
	}
	return sources, nil
}

func handleDeleteTopic(library *deck.Library) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topic := mux.Vars(r)["topic"]

		err := library.Delete(topic)
		audit.Log(audit.TopicDeleteEvent{
			Actor:        actor(r),
			ClientIP:     identity.ClientIP(r).String(),
			Topic:        topic,
			Success:      err == nil,
			ErrorMessage: errorMessage(err),
		})
		if err != nil {
			respondWithStoreError(w, r, err)
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]bool{"deleted": true})
	}
}
