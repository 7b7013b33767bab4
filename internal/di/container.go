package di

import (
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	s3store "github.com/pagehaven/go-builder/internal/adapters/s3"
	"github.com/pagehaven/go-builder/internal/blocks"
	"github.com/pagehaven/go-builder/internal/identity"
	"github.com/pagehaven/go-builder/internal/logging/console"
	"github.com/pagehaven/go-builder/internal/logging/gologger"
	"github.com/pagehaven/go-builder/internal/media"
	"github.com/pagehaven/go-builder/internal/pages"
	"github.com/pagehaven/go-builder/internal/projects"
	"github.com/pagehaven/go-builder/internal/render"
	"github.com/pagehaven/go-builder/internal/runtimeconfig"
	"github.com/pagehaven/go-builder/internal/themes"
	"github.com/pagehaven/go-builder/pkg/interfaces"
)

// Container wires module dependencies. Defaults are in-memory; a bun DB
// switches every repository to its bun implementation, and an S3 endpoint
// switches media storage off the memory store.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider
	objectStore    interfaces.ObjectStore

	projectRepo projects.ProjectRepository
	pageRepo    pages.PageRepository
	blockRepo   blocks.BlockRepository
	themeRepo   themes.ThemeRepository

	projectSvc projects.Service
	pageSvc    pages.Service
	blockSvc   blocks.Service
	themeSvc   themes.Service
	mediaSvc   media.Service

	renderer *render.Renderer
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB attaches a database; repositories switch from memory to bun.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the logger provider built from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithObjectStore overrides the media object store.
func WithObjectStore(store interfaces.ObjectStore) Option {
	return func(c *Container) {
		c.objectStore = store
	}
}

// WithProjectService overrides the default project service binding.
func WithProjectService(svc projects.Service) Option {
	return func(c *Container) {
		c.projectSvc = svc
	}
}

// WithPageService overrides the default page service binding.
func WithPageService(svc pages.Service) Option {
	return func(c *Container) {
		c.pageSvc = svc
	}
}

// WithBlockService overrides the default block service binding.
func WithBlockService(svc blocks.Service) Option {
	return func(c *Container) {
		c.blockSvc = svc
	}
}

// WithThemeService overrides the default theme service binding.
func WithThemeService(svc themes.Service) Option {
	return func(c *Container) {
		c.themeSvc = svc
	}
}

// WithMediaService overrides the default media service binding.
func WithMediaService(svc media.Service) Option {
	return func(c *Container) {
		c.mediaSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:      cfg,
		cacheTTL:    cacheTTL,
		projectRepo: projects.NewMemoryProjectRepository(),
		pageRepo:    pages.NewMemoryPageRepository(),
		blockRepo:   blocks.NewMemoryBlockRepository(),
		themeRepo:   themes.NewMemoryThemeRepository(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.configureLogging()
	c.configureCacheDefaults()
	c.configureRepositories()
	if err := c.configureObjectStore(); err != nil {
		return nil, err
	}

	if c.projectSvc == nil {
		c.projectSvc = projects.NewService(c.projectRepo,
			projects.WithLoggerProvider(c.loggerProvider))
	}
	if c.pageSvc == nil {
		c.pageSvc = pages.NewService(c.pageRepo,
			pages.WithLoggerProvider(c.loggerProvider))
	}
	if c.blockSvc == nil {
		c.blockSvc = blocks.NewService(c.blockRepo,
			blocks.WithLoggerProvider(c.loggerProvider))
	}
	if c.themeSvc == nil {
		c.themeSvc = themes.NewService(c.themeRepo,
			themes.WithLoggerProvider(c.loggerProvider))
	}
	if c.mediaSvc == nil {
		c.mediaSvc = media.NewService(c.objectStore,
			media.WithLoggerProvider(c.loggerProvider))
	}
	if c.renderer == nil {
		c.renderer = render.NewRenderer(render.WithLoggerProvider(c.loggerProvider))
	}

	return c, nil
}

// configureLogging builds the provider declared in config. A nil provider is
// fine: module loggers fall back to no-op.
func (c *Container) configureLogging() {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return
	}
	if c.Config.Logging.Provider == "gologger" {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err == nil {
			c.loggerProvider = provider
			return
		}
	}
	minLevel := console.ParseLevel(c.Config.Logging.Level)
	c.loggerProvider = console.NewProvider(console.Options{
		MinLevel: &minLevel,
	})
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
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
	if c.bunDB == nil {
		return
	}
	c.projectRepo = projects.NewBunProjectRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.pageRepo = pages.NewBunPageRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.blockRepo = blocks.NewBunBlockRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.themeRepo = themes.NewBunThemeRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
}

func (c *Container) configureObjectStore() error {
	if c.objectStore != nil {
		return nil
	}
	if c.Config.Features.Media && c.Config.Media.Enabled {
		store, err := s3store.New(s3store.Config{
			Endpoint:  c.Config.Media.Endpoint,
			Region:    c.Config.Media.Region,
			AccessKey: c.Config.Media.AccessKey,
			SecretKey: c.Config.Media.SecretKey,
			Bucket:    c.Config.Media.Bucket,
			PublicURL: c.Config.Media.PublicURL,
		})
		if err != nil {
			return err
		}
		if store != nil {
			c.objectStore = store
			return nil
		}
	}
	c.objectStore = media.NewMemoryStore("")
	return nil
}

// ProjectService returns the configured project service.
func (c *Container) ProjectService() projects.Service { return c.projectSvc }

// PageService returns the configured page service.
func (c *Container) PageService() pages.Service { return c.pageSvc }

// BlockService returns the configured block service.
func (c *Container) BlockService() blocks.Service { return c.blockSvc }

// ThemeService returns the configured theme service.
func (c *Container) ThemeService() themes.Service { return c.themeSvc }

// MediaService returns the configured media service.
func (c *Container) MediaService() media.Service { return c.mediaSvc }

// Renderer returns the block renderer.
func (c *Container) Renderer() *render.Renderer { return c.renderer }

// LoggerProvider returns the provider used for module loggers.
func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

// ObjectStore returns the configured media object store.
func (c *Container) ObjectStore() interfaces.ObjectStore { return c.objectStore }

// SystemTheme returns the built-in fallback theme. It is never persisted;
// its deterministic ID lets hosts reference it across deployments.
func (c *Container) SystemTheme() *themes.Theme {
	name := c.Config.Themes.SystemDefaultName
	if name == "" {
		name = "system-default"
	}
	return &themes.Theme{
		ID:     identity.SystemThemeUUID(),
		Name:   name,
		Config: themes.DefaultConfig(),
	}
}
