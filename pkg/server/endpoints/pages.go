package endpoints

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/recallkit/recallkit/pkg/config"
	"github.com/recallkit/recallkit/pkg/deck"
	"github.com/recallkit/recallkit/pkg/flashcard"
	"github.com/recallkit/recallkit/pkg/identity"
	"github.com/recallkit/recallkit/pkg/server"
	"github.com/recallkit/recallkit/pkg/server/store"
	"github.com/recallkit/recallkit/pkg/token"
)

// DefaultProfile is studied when /study is opened without ?profile=
const DefaultProfile = "default"

// StudyTokenTTL bounds the scoped token handed to the study page
const StudyTokenTTL = 12 * time.Hour

//go:embed templates/*.html
var templateFiles embed.FS

var pages = template.Must(template.ParseFS(templateFiles, "templates/*.html"))

type managePage struct {
	Topics      []string
	AuthEnabled bool
	MaxUpload   int64
}

type studyPage struct {
	Profile     string
	Cards       []flashcard.Card
	APIBase     string
	AuthEnabled bool
	Token       string
}

// RegisterPages registers the browser pages
func RegisterPages(s *server.Server) {
	s.Router.HandleFunc("/", handleManagePage(s.Library, s.Config)).Methods("GET")
	s.Router.Handle("/study", s.Auth.Identify(handleStudyPage(s.Library, s.Config))).Methods("GET")
}

func handleManagePage(library *deck.Library, cfg *config.RecallKitConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topics, err := library.List()
		if err != nil {
			log.Printf("Failed to list topics: %v", err)
			http.Error(w, "failed to list topics", http.StatusInternalServerError)
			return
		}
		renderPage(w, "manage.html", managePage{
			Topics:      topics,
			AuthEnabled: cfg.AuthEnabled(),
			MaxUpload:   cfg.MaxUploadBytes,
		})
	}
}

func handleStudyPage(library *deck.Library, cfg *config.RecallKitConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile := r.URL.Query().Get("profile")
		if profile == "" {
			profile = DefaultProfile
		}
		if err := store.ValidateProfile(profile); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		cards, err := library.LoadAll()
		if err != nil {
			log.Printf("Failed to load cards: %v", err)
			http.Error(w, "failed to load cards", http.StatusInternalServerError)
			return
		}

		page := studyPage{Profile: profile, Cards: cards, APIBase: cfg.APIBase, AuthEnabled: cfg.AuthEnabled()}
		// a token is only handed out to callers already allowed to write the profile
		if id, ok := identity.Get(r.Context()); ok && page.AuthEnabled && id.CanAccessProfile(profile) {
			page.Token, err = token.Issue(cfg.APIToken, profile, StudyTokenTTL)
			if err != nil {
				log.Printf("Failed to issue study token: %v", err)
				http.Error(w, "failed to issue token", http.StatusInternalServerError)
				return
			}
		}
		renderPage(w, "study.html", page)
	}
}

func renderPage(w http.ResponseWriter, name string, data interface{}) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("Failed to render %s: %v", name, err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
