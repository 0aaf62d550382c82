// Package resolver is the public entry point: it assembles storage, the
// resolution engine, the link mutation service, and the command catalog.
package resolver

import (
	"github.com/goliatone/go-linkresolver/internal/di"
	internalinks "github.com/goliatone/go-linkresolver/internal/links"
	internalresolver "github.com/goliatone/go-linkresolver/internal/resolver"
	"github.com/goliatone/go-linkresolver/pkg/commands"
	"github.com/goliatone/go-linkresolver/pkg/config"
	"github.com/goliatone/go-linkresolver/pkg/interfaces/cache"
	"github.com/goliatone/go-linkresolver/pkg/interfaces/logger"
	"github.com/goliatone/go-linkresolver/pkg/interfaces/tasks"
	"github.com/goliatone/go-linkresolver/pkg/storage"
)

// Re-export the request/response surface so hosts never import internals.
type (
	Request         = internalresolver.Request
	Identifier      = internalresolver.Identifier
	Service         = internalresolver.Service
	LinkService     = internalinks.Service
	LinkInput       = internalinks.LinkInput
	RegisterRequest = internalinks.RegisterRequest
	UpdateRequest   = internalinks.UpdateRequest
	DeleteRequest   = internalinks.DeleteRequest
)

// ErrCannotResolve is the uniform resolution failure.
var ErrCannotResolve = internalresolver.ErrCannotResolve

// LinksetMimeType labels full-linkset responses.
const LinksetMimeType = internalresolver.LinksetMimeType

// ModuleOptions configure the resolver module facade.
type ModuleOptions struct {
	Config  config.Config
	Storage storage.Providers
	Logger  logger.Logger
	Cache   cache.Cache
	Tasks   tasks.Runner
}

// Module bundles the container and exposes high-level accessors.
type Module struct {
	container *di.Container
}

// NewModule assembles repositories and services.
func NewModule(opts ModuleOptions) (*Module, error) {
	container, err := di.New(di.Options{
		Config:  opts.Config,
		Storage: opts.Storage,
		Logger:  opts.Logger,
		Cache:   opts.Cache,
		Tasks:   opts.Tasks,
	})
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Resolver returns the resolution service.
func (m *Module) Resolver() *Service {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Resolver
}

// Links returns the link mutation service.
func (m *Module) Links() *LinkService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Links
}

// Commands returns the go-command registry.
func (m *Module) Commands() (*commands.Registry, error) {
	if m == nil || m.container == nil {
		return nil, nil
	}
	return commands.New(commands.Dependencies{
		Links: m.container.Links,
	})
}

// Storage exposes the wired repositories.
func (m *Module) Storage() storage.Providers {
	if m == nil || m.container == nil {
		return storage.Providers{}
	}
	return m.container.Storage
}
