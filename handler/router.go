package handler

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"lockin/config"
	"lockin/manager"
	"lockin/prompt"
)

// NewRouter wires every route of the service.
func NewRouter(cfg *config.Config, gen Generator, monitor *manager.TrafficMonitor) http.Handler {
	r := mux.NewRouter()

	relay := NewProcessTextHandler(gen, prompt.New(cfg.SystemPrompt), cfg.HasAPIKey(), cfg.MaxBodyBytes, monitor)
	r.Handle("/api/process-text", relay).Methods(http.MethodPost)
	r.Handle("/api/health", NewHealthHandler(cfg.HasAPIKey())).Methods(http.MethodGet, http.MethodHead)

	static := NewStaticHandler(cfg.StaticDir, cfg.IndexFile)
	r.HandleFunc("/", static.Index).Methods(http.MethodGet, http.MethodHead)
	r.PathPrefix("/").Handler(static.Files()).Methods(http.MethodGet, http.MethodHead)

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	// accessLog sits outermost so panics and unmatched routes are logged too.
	return accessLog(recoverPanic(cors(r)))
}
