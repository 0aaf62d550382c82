package commands

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-linkresolver/internal/links"
	"github.com/goliatone/go-linkresolver/pkg/interfaces/logger"
)

// Catalog exposes go-command compatible handlers for host transports.
type Catalog struct {
	RegisterLinks command.Commander[links.RegisterRequest]
	UpdateLink    command.Commander[links.UpdateRequest]
	DeleteLink    command.Commander[links.DeleteRequest]
}

// Dependencies wires the mutation service into the command catalog.
type Dependencies struct {
	Links  *links.Service
	Logger logger.Logger
}

// NewCatalog builds the command catalog using the supplied dependencies.
func NewCatalog(deps Dependencies) (*Catalog, error) {
	if deps.Links == nil {
		return nil, errors.New("commands: links service is required")
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}

	return &Catalog{
		RegisterLinks: registerLinksCommand{svc: deps.Links},
		UpdateLink:    updateLinkCommand{svc: deps.Links},
		DeleteLink:    deleteLinkCommand{svc: deps.Links},
	}, nil
}

type registerLinksCommand struct {
	svc *links.Service
}

func (c registerLinksCommand) Execute(ctx context.Context, msg links.RegisterRequest) error {
	_, err := c.svc.Register(ctx, msg)
	return err
}

type updateLinkCommand struct {
	svc *links.Service
}

func (c updateLinkCommand) Execute(ctx context.Context, msg links.UpdateRequest) error {
	_, err := c.svc.Update(ctx, msg)
	return err
}

type deleteLinkCommand struct {
	svc *links.Service
}

func (c deleteLinkCommand) Execute(ctx context.Context, msg links.DeleteRequest) error {
	_, err := c.svc.Delete(ctx, msg)
	return err
}
