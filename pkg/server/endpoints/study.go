package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/recallkit/recallkit/pkg/audit"
	"github.com/recallkit/recallkit/pkg/identity"
	"github.com/recallkit/recallkit/pkg/leitner"
	"github.com/recallkit/recallkit/pkg/server"
	"github.com/recallkit/recallkit/pkg/server/store"
	"github.com/recallkit/recallkit/pkg/study"
)

// DueResponse represents the response from GET /api/study/{profile}/due
type DueResponse struct {
	Profile string          `json:"profile"`
	Topic   string          `json:"topic,omitempty"`
	Cards   []study.DueCard `json:"cards"`
}

// MaxReviewBodyBytes caps the body of a review request
const MaxReviewBodyBytes = 64 << 10

// ReviewRequest is the body of POST /api/study/{profile}/review
type ReviewRequest struct {
	CardID  string `json:"card_id"`
	Correct *bool  `json:"correct"`
}

// ReviewResponse represents the response from POST /api/study/{profile}/review
type ReviewResponse struct {
	CardID string            `json:"card_id"`
	State  leitner.CardState `json:"state"`
}

// RegisterStudyEndpoints registers the Leitner review endpoints
func RegisterStudyEndpoints(s *server.Server) {
	svc := s.Study
	defaultLimit := s.Config.ReviewLimit

	s.Router.HandleFunc("/api/study/{profile}/due", handleDue(svc, defaultLimit)).Methods("GET")
	s.Router.HandleFunc("/api/study/{profile}/stats", handleStats(svc)).Methods("GET")
	s.Router.Handle("/api/study/{profile}/review", s.Auth.RequireProfile(handleReview(svc))).Methods("POST")
	s.Router.Handle("/api/study/{profile}/cards/{card_id}", s.Auth.RequireProfile(handleResetCard(svc))).Methods("DELETE")
}

func handleDue(svc *study.Service, defaultLimit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile := mux.Vars(r)["profile"]
		topic := r.URL.Query().Get("topic")

		limit := defaultLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				respondWithError(w, http.StatusBadRequest, "limit must be a non-negative integer")
				return
			}
			limit = n
		}

		if err := store.ValidateProfile(profile); err != nil {
			respondWithStoreError(w, r, err)
			return
		}
		cards, err := svc.Due(profile, topic, limit)
		if err != nil {
			respondWithStoreError(w, r, err)
			return
		}

		respondWithJSON(w, http.StatusOK, DueResponse{Profile: profile, Topic: topic, Cards: cards})
	}
}

func handleStats(svc *study.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile := mux.Vars(r)["profile"]
		if err := store.ValidateProfile(profile); err != nil {
			respondWithStoreError(w, r, err)
			return
		}

		stats, err := svc.Stats(profile, r.URL.Query().Get("topic"))
		if err != nil {
			respondWithStoreError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, stats)
	}
}

func handleReview(svc *study.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile := mux.Vars(r)["profile"]

		var req ReviewRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxReviewBodyBytes)).Decode(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("body exceeds %d bytes", MaxReviewBodyBytes))
				return
			}
			respondWithError(w, http.StatusBadRequest, "invalid review body: "+err.Error())
			return
		}
		if req.CardID == "" || req.Correct == nil {
			respondWithError(w, http.StatusBadRequest, "card_id and correct are required")
			return
		}

		st, err := svc.Review(profile, req.CardID, *req.Correct)
		event := audit.ReviewEvent{
			Actor:        actor(r),
			ClientIP:     identity.ClientIP(r).String(),
			Profile:      profile,
			CardID:       req.CardID,
			Correct:      *req.Correct,
			Success:      err == nil,
			ErrorMessage: errorMessage(err),
		}
		if err == nil {
			event.Box = st.Box.String()
		}
		audit.Log(event)
		if err != nil {
			respondWithStoreError(w, r, err)
			return
		}

		respondWithJSON(w, http.StatusOK, ReviewResponse{CardID: req.CardID, State: st})
	}
}

func handleResetCard(svc *study.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		profile := vars["profile"]

		existed, err := svc.ResetCard(profile, vars["card_id"])
		if err != nil {
			respondWithStoreError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]bool{"deleted": existed})
	}
}
