package di

import (
	"reflect"

	"github.com/goliatone/go-linkresolver/internal/commands"
	"github.com/goliatone/go-linkresolver/internal/links"
	"github.com/goliatone/go-linkresolver/internal/resolver"
	"github.com/goliatone/go-linkresolver/pkg/config"
	"github.com/goliatone/go-linkresolver/pkg/interfaces/cache"
	"github.com/goliatone/go-linkresolver/pkg/interfaces/logger"
	"github.com/goliatone/go-linkresolver/pkg/interfaces/tasks"
	"github.com/goliatone/go-linkresolver/pkg/storage"
)

// Options configure the DI container.
type Options struct {
	Config  config.Config
	Storage storage.Providers
	Logger  logger.Logger
	Cache   cache.Cache
	Tasks   tasks.Runner
}

// Container wires repositories, the resolver, the mutation service, and the
// command catalog.
type Container struct {
	Config   config.Config
	Storage  storage.Providers
	Resolver *resolver.Service
	Links    *links.Service
	Commands *commands.Catalog
}

func isZeroConfig(cfg config.Config) bool {
	return reflect.ValueOf(cfg).IsZero()
}

// New constructs the container using the supplied options.
func New(opts Options) (*Container, error) {
	cfg := opts.Config
	if isZeroConfig(cfg) {
		cfg = config.Defaults()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	providers := opts.Storage
	if providers.Identifiers == nil {
		providers = storage.NewMemoryProviders()
	}

	lgr := opts.Logger
	if lgr == nil {
		lgr = &logger.Nop{}
	}

	resolverSvc, err := resolver.NewService(resolver.Dependencies{
		Records: providers.Identifiers,
		Cache:   opts.Cache,
		Tasks:   opts.Tasks,
		Logger:  lgr,
		Config:  cfg,
	})
	if err != nil {
		return nil, err
	}

	linksSvc, err := links.NewService(links.Dependencies{
		Records: providers.Identifiers,
		Logger:  lgr,
	})
	if err != nil {
		return nil, err
	}

	catalog, err := commands.NewCatalog(commands.Dependencies{
		Links:  linksSvc,
		Logger: lgr,
	})
	if err != nil {
		return nil, err
	}

	return &Container{
		Config:   cfg,
		Storage:  providers,
		Resolver: resolverSvc,
		Links:    linksSvc,
		Commands: catalog,
	}, nil
}
