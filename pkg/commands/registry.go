package commands

import (
	command "github.com/goliatone/go-command"
	internalcommands "github.com/goliatone/go-linkresolver/internal/commands"
	"github.com/goliatone/go-linkresolver/internal/links"
	"github.com/goliatone/go-linkresolver/pkg/interfaces/logger"
)

// Re-export request types so consumers need not import internal packages.
type (
	RegisterLinks = links.RegisterRequest
	UpdateLink    = links.UpdateRequest
	DeleteLink    = links.DeleteRequest
	LinkInput     = links.LinkInput
)

// Registry exposes go-command compatible handlers backed by the module services.
type Registry struct {
	Catalog       *internalcommands.Catalog
	RegisterLinks command.Commander[RegisterLinks]
	UpdateLink    command.Commander[UpdateLink]
	DeleteLink    command.Commander[DeleteLink]
}

// Dependencies mirror the internal command dependencies but keep them public.
type Dependencies struct {
	Links  *links.Service
	Logger logger.Logger
}

// New builds the registry using the provided dependencies.
func New(deps Dependencies) (*Registry, error) {
	catalog, err := internalcommands.NewCatalog(internalcommands.Dependencies{
		Links:  deps.Links,
		Logger: deps.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &Registry{
		Catalog:       catalog,
		RegisterLinks: catalog.RegisterLinks,
		UpdateLink:    catalog.UpdateLink,
		DeleteLink:    catalog.DeleteLink,
	}, nil
}
