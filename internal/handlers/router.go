package handlers

import (
	"context"
	"encoding/json"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/xelth-com/siigozoho/internal/buildinfo"
	"github.com/xelth-com/siigozoho/internal/middleware"
	"github.com/xelth-com/siigozoho/internal/sync"
)

// Syncer runs one Siigo to Zoho sync
type Syncer interface {
	Run(ctx context.Context, req sync.Request) (*sync.Result, error)
}

// Router wraps the mux router and its dependencies
type Router struct {
	*mux.Router
	syncer Syncer
	pages  map[string]*template.Template
	log    zerolog.Logger
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(syncer Syncer, pages map[string]*template.Template, static fs.FS, log zerolog.Logger) *Router {
	r := &Router{
		Router: mux.NewRouter(),
		syncer: syncer,
		pages:  pages,
		log:    log.With().Str("component", "http").Logger(),
	}

	// Health check endpoint
	r.HandleFunc("/ping", r.ping).Methods("GET")

	// Sync trigger (Power Automate form)
	r.HandleFunc("/sync", r.runSync).Methods("POST")

	// OAuth redirect landing
	r.HandleFunc("/code", r.showCode).Methods("GET")
	r.HandleFunc("/code/qr.png", r.codeQR).Methods("GET")

	// Static pages
	r.HandleFunc("/", r.page("index", "Inicio")).Methods("GET")
	r.HandleFunc("/leads", r.page("leads", "Leads")).Methods("GET")
	r.HandleFunc("/casos", r.page("casos", "Casos")).Methods("GET")
	r.HandleFunc("/proveedores", r.page("proveedores", "Proveedores")).Methods("GET")
	r.HandleFunc("/exito", r.page("exito", "Exito")).Methods("GET")

	if static != nil {
		r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	}

	return r
}

// Handler returns the router wrapped in request logging and path folding
func (r *Router) Handler() http.Handler {
	var h http.Handler = r.Router
	h = middleware.CaseInsensitiveMiddleware("/static/")(h)
	return middleware.RequestLogger(r.log)(h)
}

// ping returns liveness and build info
func (r *Router) ping(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message":    "pong",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"commit":     buildinfo.Commit(),
		"started_at": buildinfo.StartTime.Format(time.RFC3339),
		"uptime":     buildinfo.Uptime().String(),
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
