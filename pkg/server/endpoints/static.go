package endpoints

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/recallkit/recallkit/pkg/server"
)

//go:embed static/css static/js
var staticFiles embed.FS

// RegisterStaticFiles registers static file serving for the pages' CSS and
// scripts. Static files are embedded in the binary.
func RegisterStaticFiles(srv *server.Server) {
	staticFS, _ := fs.Sub(staticFiles, "static")

	cssFS, _ := fs.Sub(staticFS, "css")
	srv.Router.PathPrefix("/css/").Handler(
		http.StripPrefix("/css/", http.FileServer(http.FS(cssFS))),
	)

	jsFS, _ := fs.Sub(staticFS, "js")
	srv.Router.PathPrefix("/js/").Handler(
		http.StripPrefix("/js/", http.FileServer(http.FS(jsFS))),
	)

	srv.Router.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
}
