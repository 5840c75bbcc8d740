// Package server provides the HTTP server for the RecallKit API.
//
// The server uses gorilla/mux for routing, and wraps the router with
// gorilla/handlers for CORS and access logging.
//
// # Server Setup
//
//	srv, err := server.NewServer(cfg, library, progressStore, healthStore, "0.0.0.0", "8502")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	endpoints.RegisterAll(srv)
//	log.Fatal(srv.Start())
//
// # Components
//
// The Server struct holds:
//
//   - Library: topic sets on disk
//   - ProgressStore: per-profile progress documents (file or postgres)
//   - Study: the Leitner review service
//   - Auth: bearer token checks for mutating routes
//   - Router: HTTP request router
//
// Endpoints are registered via the endpoints subpackage.
package server
