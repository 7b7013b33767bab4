// Package builder is the top level façade for the page builder module: a
// multi-tenant block-based page product with projects, reusable themes, a
// block editor session, media uploads, and a public rendering surface.
package builder

import (
	"context"

	"github.com/google/uuid"

	"github.com/pagehaven/go-builder/internal/blocks"
	"github.com/pagehaven/go-builder/internal/di"
	"github.com/pagehaven/go-builder/internal/editor"
	"github.com/pagehaven/go-builder/internal/media"
	"github.com/pagehaven/go-builder/internal/pages"
	"github.com/pagehaven/go-builder/internal/projects"
	"github.com/pagehaven/go-builder/internal/render"
	"github.com/pagehaven/go-builder/internal/themes"
)

// ProjectService exports the project service contract.
type ProjectService = projects.Service

// PageService exports the page service contract.
type PageService = pages.Service

// BlockService exports the block service contract.
type BlockService = blocks.Service

// ThemeService exports the theme service contract.
type ThemeService = themes.Service

// MediaService exports the media helper contract.
type MediaService = media.Service

// EditorSession exports the block editing session.
type EditorSession = editor.Session

// Module represents the top level builder runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a builder module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Projects returns the configured project service.
func (m *Module) Projects() ProjectService {
	return m.container.ProjectService()
}

// Pages returns the configured page service.
func (m *Module) Pages() PageService {
	return m.container.PageService()
}

// Blocks returns the configured block service.
func (m *Module) Blocks() BlockService {
	return m.container.BlockService()
}

// Themes returns the configured theme service.
func (m *Module) Themes() ThemeService {
	return m.container.ThemeService()
}

// Media returns the media helper used by the module.
func (m *Module) Media() MediaService {
	return m.container.MediaService()
}

// SystemTheme returns the built-in fallback theme applied when neither the
// page nor its project carries any styling.
func (m *Module) SystemTheme() *themes.Theme {
	return m.container.SystemTheme()
}

// Renderer returns the block renderer shared by the editor preview and the
// public surface.
func (m *Module) Renderer() *render.Renderer {
	return m.container.Renderer()
}

// NewEditorSession opens an editing session over a page's current blocks.
// The session holds a local working copy; SaveAll persists the whole array.
func (m *Module) NewEditorSession(ctx context.Context, pageID uuid.UUID) (*EditorSession, error) {
	current, err := m.Blocks().ListPageBlocks(ctx, pageID)
	if err != nil {
		return nil, err
	}
	return editor.NewSession(pageID, current, m.Blocks(),
		editor.WithLoggerProvider(m.container.LoggerProvider()))
}

// DeletePage removes a page together with its blocks.
func (m *Module) DeletePage(ctx context.Context, pageID uuid.UUID) error {
	if err := m.Blocks().DeletePageBlocks(ctx, pageID); err != nil {
		return err
	}
	return m.Pages().Delete(ctx, pageID)
}
