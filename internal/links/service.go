// Package links owns the mutation lifecycle of link registrations. Every
// mutation re-runs the scope-default enforcement and appends a version
// history entry before the record is persisted.
package links

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-linkresolver/internal/defaults"
	"github.com/goliatone/go-linkresolver/pkg/domain"
	"github.com/goliatone/go-linkresolver/pkg/interfaces/logger"
	"github.com/goliatone/go-linkresolver/pkg/interfaces/store"
	"github.com/google/uuid"
)

// LinkInput captures the user-editable fields of one link registration.
type LinkInput struct {
	LinkID           string   `json:"linkId,omitempty"`
	TargetURL        string   `json:"targetUrl"`
	Title            string   `json:"title,omitempty"`
	LinkType         string   `json:"linkType"`
	IanaLanguage     string   `json:"ianaLanguage,omitempty"`
	Context          string   `json:"context,omitempty"`
	MimeType         string   `json:"mimeType,omitempty"`
	Active           bool     `json:"active"`
	FWQS             bool     `json:"fwqs"`
	DefaultLinkType  bool     `json:"defaultLinkType"`
	DefaultIanaLang  bool     `json:"defaultIanaLanguage"`
	DefaultContext   bool     `json:"defaultContext"`
	DefaultMimeType  bool     `json:"defaultMimeType"`
	EncryptionMethod string   `json:"encryptionMethod,omitempty"`
	AccessRole       []string `json:"accessRole,omitempty"`
	Method           string   `json:"method,omitempty"`
}

// RegisterRequest appends links to an identifier, creating it when absent.
type RegisterRequest struct {
	Key   store.IdentifierKey `json:"key"`
	Links []LinkInput         `json:"links"`
}

// UpdateRequest mutates one existing link by its stable id.
type UpdateRequest struct {
	Key    store.IdentifierKey `json:"key"`
	LinkID string              `json:"linkId"`
	Link   LinkInput           `json:"link"`
}

// DeleteRequest removes one link; Hard removes the record from the
// collection, otherwise the link is deactivated in place.
type DeleteRequest struct {
	Key    store.IdentifierKey `json:"key"`
	LinkID string              `json:"linkId"`
	Hard   bool                `json:"hard"`
}

// Dependencies wires the repository used by the service.
type Dependencies struct {
	Records store.IdentifierRecordRepository
	Logger  logger.Logger
}

// Service applies link mutations while keeping the scope-default invariant
// and the append-only version history.
type Service struct {
	records store.IdentifierRecordRepository
	logger  logger.Logger
}

var (
	errRecordsRequired = errors.New("links: identifier record repository is required")

	// ErrLinkNotFound is returned when a link id has no record.
	ErrLinkNotFound = errors.New("links: link not found")
)

// NewService constructs the mutation service.
func NewService(deps Dependencies) (*Service, error) {
	if deps.Records == nil {
		return nil, errRecordsRequired
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}
	return &Service{records: deps.Records, logger: deps.Logger}, nil
}

// Register appends the given links, assigning stable ids where missing.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.IdentifierRecord, error) {
	if len(req.Links) == 0 {
		return nil, errors.New("links: at least one link is required")
	}
	for _, input := range req.Links {
		if strings.TrimSpace(input.TargetURL) == "" {
			return nil, errors.New("links: target url is required")
		}
	}

	record, created, err := s.loadOrCreate(ctx, req.Key)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	changes := make([]domain.LinkChange, 0, len(req.Links))
	for _, input := range req.Links {
		link := fromInput(input)
		if link.LinkID == "" {
			link.LinkID = uuid.NewString()
		}
		link.CreatedAt = now
		link.UpdatedAt = now
		record.Links = append(record.Links, link)
		changes = append(changes, domain.LinkChange{
			LinkID: link.LinkID,
			Action: domain.ChangeActionCreated,
		})
	}

	s.commit(record, changes, now)
	if created {
		if err := s.records.Create(ctx, record); err != nil {
			return nil, err
		}
		return record, nil
	}
	if err := s.records.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Update mutates one link, snapshotting the fields that changed so history
// can trace superseded targets.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*domain.IdentifierRecord, error) {
	record, err := s.records.GetByIdentifier(ctx, req.Key)
	if err != nil {
		return nil, err
	}
	link := record.FindLink(req.LinkID)
	if link == nil {
		return nil, ErrLinkNotFound
	}

	change := domain.LinkChange{
		LinkID: req.LinkID,
		Action: domain.ChangeActionUpdated,
	}
	if req.Link.TargetURL != "" && req.Link.TargetURL != link.TargetURL {
		change.PreviousTargetURL = link.TargetURL
	}
	if req.Link.MimeType != link.MimeType {
		change.PreviousMimeType = link.MimeType
	}
	if req.Link.IanaLanguage != link.IanaLanguage {
		change.PreviousIanaLanguage = link.IanaLanguage
	}
	if req.Link.LinkType != link.LinkType {
		change.PreviousLinkType = link.LinkType
	}
	if req.Link.Context != link.Context {
		change.PreviousContext = link.Context
	}

	now := time.Now().UTC()
	applyInput(link, req.Link)
	link.UpdatedAt = now

	s.commit(record, []domain.LinkChange{change}, now)
	if err := s.records.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Delete deactivates or removes one link per the request.
func (s *Service) Delete(ctx context.Context, req DeleteRequest) (*domain.IdentifierRecord, error) {
	record, err := s.records.GetByIdentifier(ctx, req.Key)
	if err != nil {
		return nil, err
	}
	link := record.FindLink(req.LinkID)
	if link == nil {
		return nil, ErrLinkNotFound
	}

	now := time.Now().UTC()
	action := domain.ChangeActionSoftDeleted
	if req.Hard {
		action = domain.ChangeActionHardDeleted
		kept := make(domain.LinkRecordList, 0, len(record.Links)-1)
		for _, existing := range record.Links {
			if existing.LinkID != req.LinkID {
				kept = append(kept, existing)
			}
		}
		record.Links = kept
	} else {
		link.Active = false
		link.UpdatedAt = now
	}

	s.commit(record, []domain.LinkChange{{LinkID: req.LinkID, Action: action}}, now)
	if err := s.records.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// commit re-enforces the scope defaults, bumps the version, and appends the
// history entry. Runs before every persist, never lazily on read.
func (s *Service) commit(record *domain.IdentifierRecord, changes []domain.LinkChange, now time.Time) {
	defaults.Enforce(record.Links)
	record.Version++
	record.VersionHistory = append(record.VersionHistory, domain.VersionHistoryEntry{
		Version:   record.Version,
		UpdatedAt: now,
		Changes:   changes,
	})
	s.logger.Debug("link mutation committed",
		logger.Field{Key: "identifier", Value: fmt.Sprintf("%s/%s", record.Namespace, record.IdentificationKey)},
		logger.Field{Key: "version", Value: record.Version},
		logger.Field{Key: "changes", Value: len(changes)},
	)
}

func (s *Service) loadOrCreate(ctx context.Context, key store.IdentifierKey) (*domain.IdentifierRecord, bool, error) {
	record, err := s.records.GetByIdentifier(ctx, key)
	if err == nil {
		return record, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, err
	}
	path := key.QualifierPath
	if path == "" {
		path = "/"
	}
	return &domain.IdentifierRecord{
		Namespace:         key.Namespace,
		Qualifier:         key.Qualifier,
		IdentificationKey: key.IdentificationKey,
		QualifierPath:     path,
		Active:            true,
	}, true, nil
}

func fromInput(input LinkInput) domain.LinkRecord {
	return domain.LinkRecord{
		LinkID:           input.LinkID,
		TargetURL:        input.TargetURL,
		Title:            input.Title,
		LinkType:         input.LinkType,
		IanaLanguage:     input.IanaLanguage,
		Context:          input.Context,
		MimeType:         input.MimeType,
		Active:           input.Active,
		FWQS:             input.FWQS,
		DefaultLinkType:  input.DefaultLinkType,
		DefaultIanaLang:  input.DefaultIanaLang,
		DefaultContext:   input.DefaultContext,
		DefaultMimeType:  input.DefaultMimeType,
		EncryptionMethod: input.EncryptionMethod,
		AccessRole:       domain.StringList(input.AccessRole),
		Method:           input.Method,
	}
}

func applyInput(link *domain.LinkRecord, input LinkInput) {
	if input.TargetURL != "" {
		link.TargetURL = input.TargetURL
	}
	link.Title = input.Title
	link.LinkType = input.LinkType
	link.IanaLanguage = input.IanaLanguage
	link.Context = input.Context
	link.MimeType = input.MimeType
	link.Active = input.Active
	link.FWQS = input.FWQS
	link.DefaultLinkType = input.DefaultLinkType
	link.DefaultIanaLang = input.DefaultIanaLang
	link.DefaultContext = input.DefaultContext
	link.DefaultMimeType = input.DefaultMimeType
	link.EncryptionMethod = input.EncryptionMethod
	link.AccessRole = domain.StringList(input.AccessRole)
	link.Method = input.Method
}
