package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/recallkit/recallkit/pkg/config"
	"github.com/recallkit/recallkit/pkg/deck"
	"github.com/recallkit/recallkit/pkg/leitner"
	"github.com/recallkit/recallkit/pkg/server/middleware"
	"github.com/recallkit/recallkit/pkg/server/store"
	"github.com/recallkit/recallkit/pkg/study"
)

type Server struct {
	Config        *config.RecallKitConfig
	Library       *deck.Library
	ProgressStore store.ProgressStore
	HealthStore   store.HealthStore
	Study         *study.Service
	Auth          *middleware.BearerAuthenticator
	Router        *mux.Router
	srv           *http.Server
}

func NewServer(
	cfg *config.RecallKitConfig,
	library *deck.Library,
	progressStore store.ProgressStore,
	healthStore store.HealthStore,
	host string,
	port string,
) (*Server, error) {
	intervals, err := cfg.Intervals()
	if err != nil {
		return nil, err
	}
	scheduler, err := leitner.NewScheduler().WithIntervals(intervals)
	if err != nil {
		return nil, fmt.Errorf("invalid box intervals: %w", err)
	}

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler:      handlers.LoggingHandler(os.Stdout, corsHandler(cfg.AllowedOrigins(), router)),
		Addr:         host + ":" + port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Config:        cfg,
		Library:       library,
		ProgressStore: progressStore,
		HealthStore:   healthStore,
		Study:         study.NewService(library, progressStore, scheduler),
		Auth:          middleware.NewBearerAuthenticator(cfg.APIToken),
		Router:        router,
		srv:           srv,
	}, nil
}

// corsHandler applies the CORS policy. Every header a preflight asks for is
// allowed, so the allowed list is rebuilt from Access-Control-Request-Headers
// for that request.
func corsHandler(origins []string, next http.Handler) http.Handler {
	options := []handlers.CORSOption{
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type", "Accept", "Origin", "X-Requested-With"}),
		handlers.AllowCredentials(),
	}
	base := handlers.CORS(options...)(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested := r.Header.Get("Access-Control-Request-Headers")
		if r.Method != http.MethodOptions || requested == "" {
			base.ServeHTTP(w, r)
			return
		}
		perRequest := make([]handlers.CORSOption, 0, len(options)+1)
		perRequest = append(perRequest, options...)
		perRequest = append(perRequest, handlers.AllowedHeaders(strings.Split(requested, ",")))
		handlers.CORS(perRequest...)(next).ServeHTTP(w, r)
	})
}

// Handler returns the fully wrapped handler (access log, CORS, router).
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *Server) Addr() string {
	return s.srv.Addr
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
