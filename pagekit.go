package pagekit

import (
	"context"
	"io/fs"
	"net/http"

	"github.com/goliatone/go-pagekit/internal/blocks"
	"github.com/goliatone/go-pagekit/internal/di"
	"github.com/goliatone/go-pagekit/internal/editor"
	"github.com/goliatone/go-pagekit/internal/markdown"
	"github.com/goliatone/go-pagekit/internal/render"
	"github.com/goliatone/go-pagekit/pages"
)

// Option customises the dependency container behind a Module.
type Option = di.Option

var (
	WithLoggerProvider = di.WithLoggerProvider
	WithBunDB          = di.WithBunDB
	WithCache          = di.WithCache
	WithPageRepository = di.WithPageRepository
	WithRegistry       = di.WithRegistry
	WithProfiles       = di.WithProfiles
	WithAuth           = di.WithAuth
)

// Module is the top level facade over pages, rendering and editing.
type Module struct {
	container *di.Container
}

// New constructs a module using cfg and optional container overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
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

// Migrate prepares storage for pages.
func (m *Module) Migrate(ctx context.Context) error {
	return m.container.Migrate(ctx)
}

// Pages returns the configured page service.
func (m *Module) Pages() pages.Service {
	return m.container.PageService()
}

// Registry returns the block registry.
func (m *Module) Registry() *blocks.Registry {
	return m.container.Registry()
}

// Renderer returns the page renderer.
func (m *Module) Renderer() *render.Renderer {
	return m.container.Renderer()
}

// Editor returns the editor operations.
func (m *Module) Editor() *editor.Editor {
	return m.container.Editor()
}

// Sessions returns the editor session store.
func (m *Module) Sessions() *editor.SessionStore {
	return m.container.Sessions()
}

// Handler returns the HTTP handler serving the JSON API and public pages.
func (m *Module) Handler() (http.Handler, error) {
	return m.container.API().Handler()
}

// Importer returns a markdown importer reading from filesystem.
func (m *Module) Importer(filesystem fs.FS) *markdown.Importer {
	return m.container.Importer(filesystem)
}

// Close releases storage owned by the module.
func (m *Module) Close() error {
	return m.container.Close()
}
