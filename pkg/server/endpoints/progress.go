package endpoints

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/recallkit/recallkit/pkg/audit"
	"github.com/recallkit/recallkit/pkg/identity"
	"github.com/recallkit/recallkit/pkg/server"
	"github.com/recallkit/recallkit/pkg/server/store"
)

// RegisterProgressEndpoints registers the progress document endpoints
func RegisterProgressEndpoints(s *server.Server) {
	progressStore := s.ProgressStore
	maxBytes := s.Config.MaxUploadBytes

	s.Router.HandleFunc("/api/progress/{profile}", handleGetProgress(progressStore)).Methods("GET")
	s.Router.Handle("/api/progress/{profile}", s.Auth.RequireProfile(handlePutProgress(progressStore, maxBytes))).Methods("PUT")
	s.Router.Handle("/api/progress/{profile}", s.Auth.RequireProfile(handleDeleteProgress(progressStore))).Methods("DELETE")
}

func handleGetProgress(progressStore store.ProgressStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := progressStore.GetProgress(mux.Vars(r)["profile"])
		if err != nil {
			respondWithStoreError(w, r, err)
			return
		}
		if doc == nil {
			doc = store.Document{}
		}
		respondWithJSON(w, http.StatusOK, doc)
	}
}

func handlePutProgress(progressStore store.ProgressStore, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile := mux.Vars(r)["profile"]
		event := audit.ProgressEvent{
			Actor:     actor(r),
			ClientIP:  identity.ClientIP(r).String(),
			Profile:   profile,
			Operation: "update",
		}

		err := store.ValidateProfile(profile)
		if err == nil {
			var doc store.Document
			doc, err = readDocument(w, r, maxBytes)
			if err == nil {
				err = progressStore.PutProgress(profile, doc)
			}
		}
		event.Success = err == nil
		event.ErrorMessage = errorMessage(err)
		audit.Log(event)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("body exceeds %d bytes", maxBytes))
				return
			}
			respondWithStoreError(w, r, err)
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func readDocument(w http.ResponseWriter, r *http.Request, maxBytes int64) (store.Document, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBytes))
	if err != nil {
		return nil, err
	}
	return store.DecodeDocument(body)
}

func handleDeleteProgress(progressStore store.ProgressStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile := mux.Vars(r)["profile"]

		err := progressStore.DeleteProgress(profile)
		audit.Log(audit.ProgressEvent{
			Actor:        actor(r),
			ClientIP:     identity.ClientIP(r).String(),
			Profile:      profile,
			Operation:    "delete",
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
