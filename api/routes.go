package api

import (
	"net/http"

	"backoffice-access/api/routegroups"
	"github.com/go-chi/chi/v5"
)

func (s *Server) registerRoutes() {
	s.router.Use(s.recoverMiddleware)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.securityHeadersMiddleware)
	if len(s.cfg.CORS.AllowedOrigins) > 0 {
		s.router.Use(s.corsMiddleware())
	}

	s.registerObservabilityRoutes()

	apiRouter := chi.NewRouter()
	apiRouter.Use(s.jsonMiddleware)
	routegroups.RegisterAccess(apiRouter, s.accessHandler)
	apiRouter.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSONPlain(w, http.StatusNotFound, map[string]string{"error": "not found"})
	})
	s.router.Mount("/api", apiRouter)
}
