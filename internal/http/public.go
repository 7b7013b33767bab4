// Package http exposes the public rendering surface: one route per published
// page, addressed by project and page slugs. Anything that cannot be served
// redirects to the configured landing URL rather than a bare 404.
package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/pagehaven/go-builder/internal/blocks"
	"github.com/pagehaven/go-builder/internal/logging"
	"github.com/pagehaven/go-builder/internal/pages"
	"github.com/pagehaven/go-builder/internal/projects"
	"github.com/pagehaven/go-builder/internal/render"
	"github.com/pagehaven/go-builder/internal/themes"
	"github.com/pagehaven/go-builder/pkg/interfaces"
)

// PublicServer serves rendered pages.
type PublicServer struct {
	projects   projects.Service
	pages      pages.Service
	blocks     blocks.Service
	themes     themes.Service
	renderer   *render.Renderer
	landingURL string
	logger     interfaces.Logger
}

// Option configures server behaviour.
type Option func(*PublicServer)

// WithLoggerProvider attaches the module logger.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(s *PublicServer) {
		s.logger = logging.HTTPLogger(provider)
	}
}

// NewPublicServer wires the services behind the public routes. landingURL is
// where unservable requests are redirected.
func NewPublicServer(
	projectSvc projects.Service,
	pageSvc pages.Service,
	blockSvc blocks.Service,
	themeSvc themes.Service,
	renderer *render.Renderer,
	landingURL string,
	opts ...Option,
) *PublicServer {
	s := &PublicServer{
		projects:   projectSvc,
		pages:      pageSvc,
		blocks:     blockSvc,
		themes:     themeSvc,
		renderer:   renderer,
		landingURL: landingURL,
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes builds the chi router for the public surface.
func (s *PublicServer) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/{projectSlug}/{pageSlug}", s.handlePage)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		s.redirectLanding(w, req)
	})
	return r
}

func (s *PublicServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *PublicServer) handlePage(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	projectSlug := chi.URLParam(req, "projectSlug")
	pageSlug := chi.URLParam(req, "pageSlug")

	project, err := s.projects.GetBySlug(ctx, projectSlug)
	if err != nil {
		s.handleLookupError(w, req, err, "project", projectSlug)
		return
	}

	page, err := s.pages.GetBySlug(ctx, project.ID, pageSlug)
	if err != nil {
		s.handleLookupError(w, req, err, "page", pageSlug)
		return
	}
	if !page.IsPublished {
		s.redirectLanding(w, req)
		return
	}

	records, err := s.blocks.ListPageBlocks(ctx, page.ID)
	if err != nil {
		s.logger.Error("list blocks failed", "page_id", page.ID.String(), "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	cfg, err := s.effectiveConfig(req, page, project.DefaultThemeID)
	if err != nil {
		s.logger.Error("theme resolution failed", "page_id", page.ID.String(), "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	html, err := s.renderer.RenderPage(page.SEOTitle(), page.Description, records, cfg, render.SurfacePublic)
	if err != nil {
		s.logger.Error("render failed", "page_id", page.ID.String(), "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

// effectiveConfig resolves the page's rendering config: page theme first,
// then page-local overrides, then the project default theme, then the system
// default. A dangling theme reference falls through rather than failing the
// request.
func (s *PublicServer) effectiveConfig(req *http.Request, page *pages.Page, projectThemeID *uuid.UUID) (themes.EffectiveConfig, error) {
	ctx := req.Context()

	var pageTheme, projectDefault *themes.PageConfig
	if page.ThemeID != nil {
		theme, err := s.themes.Get(ctx, *page.ThemeID)
		if err == nil {
			pageTheme = &theme.Config
		} else if !isNotFound(err) {
			return themes.EffectiveConfig{}, err
		}
	}
	if projectThemeID != nil {
		theme, err := s.themes.Get(ctx, *projectThemeID)
		if err == nil {
			projectDefault = &theme.Config
		} else if !isNotFound(err) {
			return themes.EffectiveConfig{}, err
		}
	}

	return themes.ResolveForPage(pageTheme, &page.Config, projectDefault, themes.DefaultConfig()), nil
}

func (s *PublicServer) handleLookupError(w http.ResponseWriter, req *http.Request, err error, resource, key string) {
	if isNotFound(err) {
		s.logger.Debug("public lookup miss", "resource", resource, "key", key)
		s.redirectLanding(w, req)
		return
	}
	s.logger.Error("public lookup failed", "resource", resource, "key", key, "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (s *PublicServer) redirectLanding(w http.ResponseWriter, req *http.Request) {
	http.Redirect(w, req, s.landingURL, http.StatusFound)
}

func isNotFound(err error) bool {
	var projectNF *projects.NotFoundError
	var pageNF *pages.NotFoundError
	var themeNF *themes.NotFoundError
	return errors.As(err, &projectNF) || errors.As(err, &pageNF) || errors.As(err, &themeNF)
}
