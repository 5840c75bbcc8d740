package endpoints

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/recallkit/recallkit/pkg/deck"
	"github.com/recallkit/recallkit/pkg/identity"
	"github.com/recallkit/recallkit/pkg/server/store"
	"github.com/recallkit/recallkit/pkg/study"
)

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrInvalidProfile),
		errors.Is(err, store.ErrNotAnObject),
		errors.Is(err, deck.ErrInvalidTopic):
		return http.StatusBadRequest
	case errors.Is(err, deck.ErrTopicNotFound),
		errors.Is(err, study.ErrCardNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondWithStoreError writes err with the status statusFor picks. Server
// side failures are logged.
func respondWithStoreError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	}
	respondWithError(w, code, err.Error())
}

// actor names the caller for audit records
func actor(r *http.Request) string {
	if id, ok := identity.Get(r.Context()); ok {
		return id.Name()
	}
	return "anonymous"
}

func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
