package endpoints

import (
	"github.com/recallkit/recallkit/pkg/server"
)

// RegisterAll registers all endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterStatusEndpoints(srv)
	RegisterTopicsEndpoints(srv)
	RegisterProgressEndpoints(srv)
	RegisterStudyEndpoints(srv)
	RegisterPages(srv)

	// Static files
	RegisterStaticFiles(srv)
}
