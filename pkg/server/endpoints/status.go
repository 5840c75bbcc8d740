package endpoints

import (
	"net/http"
	"os"

	"github.com/recallkit/recallkit/pkg/server"
	"github.com/recallkit/recallkit/pkg/server/store"
)

// Version is reported by /status. Overridden at build time with
// -ldflags "-X github.com/recallkit/recallkit/pkg/server/endpoints.Version=..."
var Version = "0.1.0"

// StatusResponse represents the response from /status
type StatusResponse struct {
	Version string `json:"version"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

// RegisterStatusEndpoints registers the status endpoint
func RegisterStatusEndpoints(s *server.Server) {
	s.Router.HandleFunc("/status", handleStatus(s.HealthStore)).Methods("GET")
}

func handleStatus(healthStore store.HealthStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := os.Getenv("RECALLKIT_VERSION_DISPLAY")
		if version == "" {
			version = Version
		}

		if healthStore != nil {
			if err := healthStore.CheckConnectivity(); err != nil {
				respondWithJSON(w, http.StatusServiceUnavailable, StatusResponse{
					Version: version,
					Status:  "error",
					Error:   "progress store connectivity check failed",
				})
				return
			}
		}

		respondWithJSON(w, http.StatusOK, StatusResponse{Version: version, Status: "ok"})
	}
}
