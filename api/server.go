package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"backoffice-access/api/handlers"
	"backoffice-access/config"
	"backoffice-access/core/catalog"
	"backoffice-access/core/links"
	"backoffice-access/core/rbac"
	"backoffice-access/core/utils"
	"github.com/go-chi/chi/v5"
)

type Server struct {
	cfg           *config.AppConfig
	router        chi.Router
	httpServer    *http.Server
	logger        *utils.Logger
	catalog       *catalog.Registry
	policy        *rbac.Policy
	linksSvc      *links.Service
	accessHandler *handlers.AccessHandler
}

// ServerDeps lets callers swap the catalog and the persistence collaborator.
type ServerDeps struct {
	Catalog *catalog.Registry
	Saver   links.Saver
}

func NewServer(cfg *config.AppConfig, logger *utils.Logger, deps ServerDeps) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}
	reg := deps.Catalog
	if reg == nil {
		loaded, err := catalog.Load(cfg.Catalog.Path)
		if err != nil {
			return nil, err
		}
		reg = loaded
	}
	reg = reg.Scoped(cfg.Catalog.AvailableModules)
	saver := deps.Saver
	if saver == nil {
		saver = links.NewLogSaver(logger)
	}
	policy, err := rbac.NewPolicy()
	if err != nil {
		return nil, err
	}
	linksSvc := links.NewService(reg, saver, policy)
	s := &Server{
		cfg:           cfg,
		router:        chi.NewRouter(),
		logger:        logger,
		catalog:       reg,
		policy:        policy,
		linksSvc:      linksSvc,
		accessHandler: handlers.NewAccessHandler(reg, linksSvc, policy, logger),
	}
	if err := s.bootstrapProfiles(); err != nil {
		return nil, err
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	s.logger.Printf("listening on %s modules=%d", s.cfg.ListenAddr, len(s.catalog.Modules()))
	if s.cfg.TLSEnabled {
		return s.httpServer.ListenAndServeTLS(s.cfg.TLSCert, s.cfg.TLSKey)
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the router, mainly for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) bootstrapProfiles() error {
	return rbac.EnsureBuiltIn(s.policy, s.catalog.Modules())
}
