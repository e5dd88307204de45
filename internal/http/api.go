package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-pagekit/internal/blocks"
	pagescmd "github.com/goliatone/go-pagekit/internal/commands/pages"
	"github.com/goliatone/go-pagekit/internal/editor"
	"github.com/goliatone/go-pagekit/internal/logging"
	"github.com/goliatone/go-pagekit/internal/pages"
	"github.com/goliatone/go-pagekit/internal/render"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
)

// API registers the page, catalog, editor and public routes.
type API struct {
	basePath string
	pages    pages.Service
	registry *blocks.Registry
	sessions *editor.SessionStore
	renderer *render.Renderer
	cache    *render.HTMLCache
	commands *pagescmd.HandlerSet
	auth     interfaces.AuthProvider
	logger   interfaces.Logger
}

// Option mutates the API configuration.
type Option func(*API)

// NewAPI constructs an API instance.
func NewAPI(service pages.Service, opts ...Option) *API {
	api := &API{
		basePath: "/api",
		pages:    service,
		registry: blocks.Default(),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/api").
func WithBasePath(path string) Option {
	return func(api *API) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithRegistry sets the registry used for the block catalog.
func WithRegistry(registry *blocks.Registry) Option {
	return func(api *API) {
		if registry != nil {
			api.registry = registry
		}
	}
}

// WithSessions enables the editor session routes.
func WithSessions(store *editor.SessionStore) Option {
	return func(api *API) {
		api.sessions = store
	}
}

// WithRenderer enables the public page route.
func WithRenderer(renderer *render.Renderer) Option {
	return func(api *API) {
		api.renderer = renderer
	}
}

// WithHTMLCache caches rendered public pages.
func WithHTMLCache(cache *render.HTMLCache) Option {
	return func(api *API) {
		api.cache = cache
	}
}

// WithCommands routes publish requests through the page command handlers.
func WithCommands(set *pagescmd.HandlerSet) Option {
	return func(api *API) {
		api.commands = set
	}
}

// WithAuth sets the provider consulted for pages that require authentication.
func WithAuth(provider interfaces.AuthProvider) Option {
	return func(api *API) {
		api.auth = provider
	}
}

// WithLogger sets the request logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// Register mounts every enabled route on mux.
func (api *API) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: api is nil")
	}
	if api.pages == nil {
		return fmt.Errorf("http: page service is required")
	}

	base := joinPath(api.basePath, "cms")

	api.registerPageRoutes(mux, base)
	api.registerCatalogRoutes(mux, base)
	if api.sessions != nil {
		api.registerEditorRoutes(mux, base)
	}
	if api.renderer != nil {
		api.registerPublicRoutes(mux)
	}
	return nil
}

// Handler returns a mux with every route registered.
func (api *API) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		return nil, err
	}
	return mux, nil
}
