package di

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"

	repocache "github.com/goliatone/go-repository-cache/cache"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-pagekit/internal/blocks"
	pagescmd "github.com/goliatone/go-pagekit/internal/commands/pages"
	"github.com/goliatone/go-pagekit/internal/editor"
	pkhttp "github.com/goliatone/go-pagekit/internal/http"
	"github.com/goliatone/go-pagekit/internal/logging"
	"github.com/goliatone/go-pagekit/internal/logging/console"
	"github.com/goliatone/go-pagekit/internal/logging/gologger"
	"github.com/goliatone/go-pagekit/internal/markdown"
	"github.com/goliatone/go-pagekit/internal/pages"
	"github.com/goliatone/go-pagekit/internal/profiles"
	"github.com/goliatone/go-pagekit/internal/render"
	"github.com/goliatone/go-pagekit/internal/runtimeconfig"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
)

// Container wires module dependencies from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	auth           interfaces.AuthProvider
	profiles       profiles.Provider
	registry       *blocks.Registry

	bunDB         *bun.DB
	ownsDB        bool
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	pageRepo pages.PageRepository
	pageSvc  pages.Service

	markdownParser *markdown.Parser
	htmlCache      *render.HTMLCache
	renderer       *render.Renderer
	editor         *editor.Editor
	sessions       *editor.SessionStore
	commands       *pagescmd.HandlerSet
	unsubscribe    func()
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the configured logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB supplies an open database instead of the configured DSN.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default repository cache.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithPageRepository overrides the page store.
func WithPageRepository(repo pages.PageRepository) Option {
	return func(c *Container) {
		c.pageRepo = repo
	}
}

// WithRegistry overrides the block type registry.
func WithRegistry(registry *blocks.Registry) Option {
	return func(c *Container) {
		c.registry = registry
	}
}

// WithProfiles sets the profile source for profile blocks.
func WithProfiles(provider profiles.Provider) Option {
	return func(c *Container) {
		c.profiles = provider
	}
}

// WithAuth sets the provider consulted for pages that require authentication.
func WithAuth(provider interfaces.AuthProvider) Option {
	return func(c *Container) {
		c.auth = provider
	}
}

// NewContainer validates cfg and builds every module.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureServices()
	if err := c.configureCommands(); err != nil {
		c.Close()
		return nil, err
	}
	c.configureSessions()

	logging.ModuleLogger(c.loggerProvider, "pagekit.di").Info("container.configured",
		"storage", c.storageName(),
		"cache", c.cacheService != nil,
		"html_cache_ttl", cfg.Render.HTMLCacheTTL.String(),
		"commands", c.commands != nil,
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.Config.Features.Logger {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return fmt.Errorf("di: configure go-logger: %w", err)
		}
		c.loggerProvider = provider
	default:
		opts := console.Options{}
		if level, ok := console.ParseLevel(c.Config.Logging.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

func (c *Container) configureStorage() error {
	if c.pageRepo != nil || c.bunDB != nil {
		return nil
	}
	provider := strings.ToLower(strings.TrimSpace(c.Config.Storage.Provider))
	switch provider {
	case "sqlite":
		sqlDB, err := sql.Open("sqlite3", c.Config.Storage.DSN)
		if err != nil {
			return fmt.Errorf("di: open sqlite: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
		c.bunDB = bun.NewDB(sqlDB, sqlitedialect.New())
	case "postgres":
		sqlDB, err := sql.Open("postgres", c.Config.Storage.DSN)
		if err != nil {
			return fmt.Errorf("di: open postgres: %w", err)
		}
		c.bunDB = bun.NewDB(sqlDB, pgdialect.New())
	default:
		return nil
	}
	c.ownsDB = true
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled || c.bunDB == nil {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.Config.Cache.TTL > 0 {
			cfg.TTL = c.Config.Cache.TTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.pageRepo != nil {
		return
	}
	if c.bunDB != nil {
		c.pageRepo = pages.NewBunPageRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		return
	}
	c.pageRepo = pages.NewMemoryPageRepository()
}

func (c *Container) configureServices() {
	cfg := c.Config
	if c.registry == nil {
		c.registry = blocks.Default()
	}
	if c.profiles == nil {
		c.profiles = profiles.None()
	}

	c.htmlCache = render.NewHTMLCache(cfg.Render.HTMLCacheTTL)
	c.pageSvc = pages.NewService(c.pageRepo,
		pages.WithRegistry(c.registry),
		pages.WithLogger(logging.PagesLogger(c.loggerProvider)),
		pages.WithObserver(c.htmlCache.Observe),
	)

	c.markdownParser = markdown.NewParser(markdown.Options{})
	c.renderer = render.New(
		render.WithRegistry(c.registry),
		render.WithProfiles(c.profiles),
		render.WithOrigin(cfg.Render.Origin),
		render.WithSizing(blocks.Sizing{
			ContainerMaxWidth: cfg.Render.DefaultMaxWidth,
			BoxedMaxWidth:     cfg.Render.BoxedMaxWidth,
			BoxedPadding:      cfg.Render.BoxedPadding,
		}),
		render.WithMarkdown(c.markdownParser),
		render.WithLogger(logging.RenderLogger(c.loggerProvider)),
	)

	c.editor = editor.New(editor.WithRegistry(c.registry))
}

// configureSessions runs after commands so editor saves can dispatch
// SavePageContentCommand when handlers are registered.
func (c *Container) configureSessions() {
	opts := []editor.StoreOption{
		editor.WithStoreLogger(logging.EditorLogger(c.loggerProvider)),
	}
	if c.commands != nil && c.commands.SaveContent != nil {
		opts = append(opts, editor.WithContentSaver(c.commands.SaveContent.Save))
	}
	c.sessions = editor.NewSessionStore(c.pageSvc, c.editor, c.Config.Editor.SessionTTL, opts...)
}

func (c *Container) configureCommands() error {
	if !c.Config.Features.Commands {
		return nil
	}
	set, unsubscribe, err := pagescmd.RegisterPageCommands(c.pageSvc, c.loggerProvider)
	if err != nil {
		return err
	}
	c.commands = set
	c.unsubscribe = unsubscribe
	return nil
}

// Migrate creates the page table when SQL storage is configured.
func (c *Container) Migrate(ctx context.Context) error {
	if c.bunDB == nil {
		return nil
	}
	_, err := c.bunDB.NewCreateTable().Model((*pages.Page)(nil)).IfNotExists().Exec(ctx)
	return err
}

// API builds the HTTP adapter over the container services.
func (c *Container) API() *pkhttp.API {
	opts := []pkhttp.Option{
		pkhttp.WithBasePath(c.Config.HTTP.BasePath),
		pkhttp.WithRegistry(c.registry),
		pkhttp.WithSessions(c.sessions),
		pkhttp.WithRenderer(c.renderer),
		pkhttp.WithHTMLCache(c.htmlCache),
		pkhttp.WithLogger(logging.HTTPLogger(c.loggerProvider)),
	}
	if c.commands != nil {
		opts = append(opts, pkhttp.WithCommands(c.commands))
	}
	if c.auth != nil {
		opts = append(opts, pkhttp.WithAuth(c.auth))
	}
	return pkhttp.NewAPI(c.pageSvc, opts...)
}

// Importer builds a markdown importer reading from filesystem.
func (c *Container) Importer(filesystem fs.FS) *markdown.Importer {
	return markdown.NewImporter(markdown.ImporterConfig{
		Pages: c.pageSvc,
		Loader: markdown.NewLoader(filesystem, markdown.LoaderConfig{
			Pattern:   c.Config.Markdown.Pattern,
			Recursive: c.Config.Markdown.Recursive,
		}),
		Logger: logging.MarkdownLogger(c.loggerProvider),
	})
}

// Close releases the subscriptions and any database the container opened.
func (c *Container) Close() error {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	if c.ownsDB && c.bunDB != nil {
		err := c.bunDB.Close()
		c.bunDB = nil
		return err
	}
	return nil
}

func (c *Container) storageName() string {
	if c.bunDB != nil {
		return c.bunDB.Dialect().Name().String()
	}
	return "memory"
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

func (c *Container) PageService() pages.Service {
	return c.pageSvc
}

func (c *Container) Renderer() *render.Renderer {
	return c.renderer
}

func (c *Container) HTMLCache() *render.HTMLCache {
	return c.htmlCache
}

func (c *Container) Editor() *editor.Editor {
	return c.editor
}

func (c *Container) Sessions() *editor.SessionStore {
	return c.sessions
}

func (c *Container) Commands() *pagescmd.HandlerSet {
	return c.commands
}

func (c *Container) Registry() *blocks.Registry {
	return c.registry
}
