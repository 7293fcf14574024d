package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"webapp-template/internal/config"
	"webapp-template/internal/handler"
	"webapp-template/internal/metrics"
	"webapp-template/internal/middleware"
	"webapp-template/internal/service"
	"webapp-template/internal/storage"
	"webapp-template/pkg/response"
)

const (
	staticPrefix = "/static/"
	mediaPrefix  = "/media/"
)

type Dependencies struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Notes   *service.NoteService
	Info    *service.InfoService
	Health  *service.HealthService
	Admin   *service.AdminService
	Storage storage.Storage
}

// New builds the route table and wraps it in the request middleware chain.
func New(deps Dependencies) http.Handler {
	cfg := deps.Config

	infoHandler := handler.NewInfoHandler(deps.Info)
	noteHandler := handler.NewNoteHandler(deps.Notes)
	healthHandler := handler.NewHealthHandler(deps.Health)
	adminHandler := handler.NewAdminHandler(deps.Admin, deps.Notes, !cfg.Security.Debug)
	mediaHandler := handler.NewMediaHandler(deps.Storage, mediaPrefix)

	r := mux.NewRouter().StrictSlash(true)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w)
	})

	r.Use(metrics.InstrumentHandler)

	r.HandleFunc("/", infoHandler.Get)
	r.Handle("/api/notes/", noteHandler)
	r.HandleFunc("/health/", healthHandler.Check).Methods("GET", "HEAD")

	admin := r.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/login/", adminHandler.Login).Methods("POST")
	admin.HandleFunc("/logout/", adminHandler.Logout).Methods("POST")

	protected := admin.PathPrefix("").Subrouter()
	protected.Use(middleware.AdminAuthMiddleware(deps.Admin))

	protected.HandleFunc("/", adminHandler.Index).Methods("GET")
	protected.HandleFunc("/notes/", adminHandler.ListNotes).Methods("GET")
	protected.HandleFunc("/notes/{id:[0-9]+}/", adminHandler.GetNote).Methods("GET")
	protected.HandleFunc("/notes/{id:[0-9]+}/", adminHandler.UpdateNote).Methods("PUT")
	protected.HandleFunc("/notes/{id:[0-9]+}/", adminHandler.DeleteNote).Methods("DELETE")

	r.PathPrefix(staticPrefix).Handler(handler.NewStaticHandler(cfg.Server.StaticRoot, staticPrefix)).Methods("GET", "HEAD")
	r.PathPrefix(mediaPrefix).HandlerFunc(mediaHandler.Serve).Methods("GET", "HEAD")

	r.Handle("/metrics", metrics.Handler()).Methods("GET")

	var h http.Handler = r
	h = middleware.SecurityMiddleware(cfg.Security.Debug)(h)
	h = middleware.AllowedHostsMiddleware(cfg.Security.AllowedHosts)(h)
	h = middleware.RecoverMiddleware()(h)
	h = middleware.LoggerMiddleware(deps.Logger)(h)
	return h
}
