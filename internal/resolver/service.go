// Package resolver selects the best-matching link for an identifier request,
// or the full linkset, and emits the standards-shaped Link header alongside.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-linkresolver/internal/accessrole"
	"github.com/goliatone/go-linkresolver/internal/linkheader"
	"github.com/goliatone/go-linkresolver/internal/linkset"
	"github.com/goliatone/go-linkresolver/pkg/config"
	"github.com/goliatone/go-linkresolver/pkg/domain"
	"github.com/goliatone/go-linkresolver/pkg/interfaces/cache"
	"github.com/goliatone/go-linkresolver/pkg/interfaces/logger"
	"github.com/goliatone/go-linkresolver/pkg/interfaces/store"
	"github.com/goliatone/go-linkresolver/pkg/interfaces/tasks"
	"github.com/goliatone/go-linkresolver/pkg/masking"
)

// ErrCannotResolve is the uniform failure for every unresolved request: no
// stored record, inactive record, or an empty precedence/all outcome.
var ErrCannotResolve = errors.New("resolver: cannot resolve identifier")

// LinksetMimeType labels full-linkset responses.
const LinksetMimeType = "application/linkset+json"

// Identifier is one qualifier/value pair from the normalized request.
type Identifier struct {
	Qualifier string `json:"qualifier"`
	ID        string `json:"id"`
}

// Request is the already-normalized resolution request: identifier
// coordinates plus the client's descriptive attributes. Parameter extraction
// and content negotiation happen upstream.
type Request struct {
	Namespace   string                       `json:"namespace"`
	Primary     Identifier                   `json:"primary"`
	Secondaries []Identifier                 `json:"secondaries,omitempty"`
	Attributes  domain.DescriptiveAttributes `json:"descriptiveAttributes"`
}

// QualifierPath renders the secondary identifiers as /key/value pairs,
// "/" when there are none.
func (r Request) QualifierPath() string {
	if len(r.Secondaries) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, sec := range r.Secondaries {
		sb.WriteString("/")
		sb.WriteString(sec.Qualifier)
		sb.WriteString("/")
		sb.WriteString(sec.ID)
	}
	return sb.String()
}

// Dependencies wires the repository, cache, and background runner.
type Dependencies struct {
	Records store.IdentifierRecordRepository
	Cache   cache.Cache
	Tasks   tasks.Runner
	Logger  logger.Logger
	Config  config.Config
}

// Service performs resolution over an in-memory snapshot of one identifier's
// records. Each call works on its own copy; nothing here blocks or locks.
type Service struct {
	records  store.IdentifierRecordRepository
	cache    cache.Cache
	tasks    tasks.Runner
	logger   logger.Logger
	cfg      config.Config
	builder  *linkset.Builder
	assemble *linkheader.Assembler
}

var errRecordsRequired = errors.New("resolver: identifier record repository is required")

// NewService constructs the resolution service, validating configuration.
func NewService(deps Dependencies) (*Service, error) {
	if deps.Records == nil {
		return nil, errRecordsRequired
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}
	if deps.Cache == nil {
		deps.Cache = &cache.Nop{}
	}
	if err := deps.Config.Validate(); err != nil {
		return nil, err
	}

	lgr := deps.Logger
	if deps.Tasks == nil {
		deps.Tasks = &tasks.Detached{OnError: func(name string, err error) {
			lgr.Warn("background task failed",
				logger.Field{Key: "task", Value: name},
				logger.Field{Key: "error", Value: err},
			)
		}}
	}

	header, err := linkheader.New(deps.Config.Resolver, deps.Logger)
	if err != nil {
		return nil, err
	}

	return &Service{
		records:  deps.Records,
		cache:    deps.Cache,
		tasks:    deps.Tasks,
		logger:   deps.Logger,
		cfg:      deps.Config,
		builder:  linkset.New(deps.Config.Resolver),
		assemble: header,
	}, nil
}

// Resolve runs the precedence chain (or the full-linkset path for
// linkType=all) against the stored record and returns the unified result.
func (s *Service) Resolve(ctx context.Context, req Request) (*domain.ResolvedLink, error) {
	record, err := s.fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	if !record.Active {
		return nil, ErrCannotResolve
	}

	attrs := req.Attributes
	links := record.Links.Clone()
	filtered := accessrole.Filter(links, attrs.AccessRole)
	roleFiltered := attrs.AccessRole != ""

	headerCtx := linkheader.Context{
		Namespace:         record.Namespace,
		KeyCode:           req.Primary.Qualifier,
		IdentificationKey: record.IdentificationKey,
		QualifierPath:     record.QualifierPath,
		AccessRole:        attrs.AccessRole,
	}

	if attrs.LinkType == domain.LinkTypeAll {
		return s.resolveAll(record, filtered, roleFiltered, req, headerCtx)
	}

	active := domain.LinkRecordList(filtered).ActiveOnly()
	matched := match(active, attrs)
	if matched == nil {
		return nil, ErrCannotResolve
	}

	doc := s.buildLinkset(record, filtered, roleFiltered, req)
	header := s.assemble.Assemble(filtered, headerCtx, matched.LinkType)

	s.logger.Debug("resolved link",
		logger.Field{Key: "linkType", Value: matched.LinkType},
		logger.Field{Key: "target", Value: masking.URL(matched.TargetURL)},
	)

	return &domain.ResolvedLink{
		TargetURL:          matched.TargetURL,
		MimeType:           matched.MimeType,
		FWQS:               matched.FWQS,
		Data:               domain.ResolvedData{Linkset: []domain.LinkContextObject{doc}},
		LinkHeaderText:     header.Text,
		LinkHeaderTextFull: header.FullText,
	}, nil
}

// resolveAll returns the whole linkset: rebuilt from the filtered records
// when access-role filtering applied, otherwise from the record as stored.
func (s *Service) resolveAll(record *domain.IdentifierRecord, filtered []domain.LinkRecord, roleFiltered bool, req Request, headerCtx linkheader.Context) (*domain.ResolvedLink, error) {
	if len(domain.LinkRecordList(filtered).ActiveOnly()) == 0 {
		return nil, ErrCannotResolve
	}
	doc := s.buildLinkset(record, filtered, roleFiltered, req)
	if len(doc.Relations) == 0 {
		return nil, ErrCannotResolve
	}
	header := s.assemble.Assemble(filtered, headerCtx, "")

	return &domain.ResolvedLink{
		MimeType:           LinksetMimeType,
		Data:               domain.ResolvedData{Linkset: []domain.LinkContextObject{doc}},
		LinkHeaderText:     header.Text,
		LinkHeaderTextFull: header.FullText,
	}, nil
}

func (s *Service) buildLinkset(record *domain.IdentifierRecord, filtered []domain.LinkRecord, roleFiltered bool, req Request) domain.LinkContextObject {
	source := record
	if roleFiltered {
		clone := *record
		clone.Links = filtered
		source = &clone
	}
	return s.builder.Build(source, req.Primary.Qualifier, record.VersionHistory)
}

// fetch loads the record snapshot, consulting the read cache first. A stale
// cached linkset field found on the record is stripped by a detached write
// that never gates the response.
func (s *Service) fetch(ctx context.Context, req Request) (*domain.IdentifierRecord, error) {
	key := store.IdentifierKey{
		Namespace:         req.Namespace,
		Qualifier:         req.Primary.Qualifier,
		IdentificationKey: req.Primary.ID,
		QualifierPath:     req.QualifierPath(),
	}
	cacheKey := fmt.Sprintf("record:%s:%s:%s:%s", key.Namespace, key.Qualifier, key.IdentificationKey, key.QualifierPath)

	if cached, ok, err := s.cache.Get(ctx, cacheKey); err == nil && ok {
		if record, valid := cached.(*domain.IdentifierRecord); valid {
			return record, nil
		}
	}

	record, err := s.records.GetByIdentifier(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCannotResolve
		}
		return nil, err
	}

	if len(record.CachedLinkset) > 0 {
		s.scheduleCleanup(ctx, record)
		record.CachedLinkset = nil
	}

	_ = s.cache.Set(ctx, cacheKey, record, s.cfg.Cache.TTL)
	return record, nil
}

// scheduleCleanup strips the stale materialized linkset column. Best effort:
// a failed write logs a warning and nothing else.
func (s *Service) scheduleCleanup(ctx context.Context, record *domain.IdentifierRecord) {
	stale := *record
	stale.CachedLinkset = nil
	s.tasks.Run(ctx, "strip-cached-linkset", func(ctx context.Context) error {
		if err := s.records.Update(ctx, &stale); err != nil {
			return fmt.Errorf("strip cached linkset for %s/%s: %w", stale.Namespace, stale.IdentificationKey, err)
		}
		return nil
	})
}
