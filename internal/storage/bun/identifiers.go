package bunrepo

import (
	"context"
	"strings"

	"github.com/goliatone/go-linkresolver/pkg/domain"
	"github.com/goliatone/go-linkresolver/pkg/interfaces/store"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// IdentifierRepository persists identifier records through go-repository-bun.
type IdentifierRepository struct {
	base baseRepository[domain.IdentifierRecord]
}

var _ store.IdentifierRecordRepository = (*IdentifierRepository)(nil)

func NewIdentifierRepository(db *bun.DB) *IdentifierRepository {
	handlers := repository.ModelHandlers[*domain.IdentifierRecord]{
		NewRecord: func() *domain.IdentifierRecord { return &domain.IdentifierRecord{} },
		GetID:     func(r *domain.IdentifierRecord) uuid.UUID { return r.ID },
		SetID: func(r *domain.IdentifierRecord, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier:      func() string { return "identification_key" },
		GetIdentifierValue: func(r *domain.IdentifierRecord) string { return r.IdentificationKey },
	}
	return &IdentifierRepository{
		base: newBaseRepository[domain.IdentifierRecord](db, handlers, func(r *domain.IdentifierRecord) *domain.RecordMeta { return &r.RecordMeta }),
	}
}

func (r *IdentifierRepository) Create(ctx context.Context, record *domain.IdentifierRecord) error {
	return r.base.create(ctx, record)
}

func (r *IdentifierRepository) Update(ctx context.Context, record *domain.IdentifierRecord) error {
	return r.base.update(ctx, record)
}

func (r *IdentifierRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.IdentifierRecord, error) {
	return r.base.getByID(ctx, id, false)
}

func (r *IdentifierRepository) List(ctx context.Context, opts store.ListOptions) (store.ListResult[domain.IdentifierRecord], error) {
	return r.base.list(ctx, opts)
}

func (r *IdentifierRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.base.softDelete(ctx, id)
}

// GetByIdentifier resolves the composite identifier key. Namespace and
// qualifier compare case-insensitively; an empty qualifier path is the root.
func (r *IdentifierRepository) GetByIdentifier(ctx context.Context, key store.IdentifierKey) (*domain.IdentifierRecord, error) {
	path := key.QualifierPath
	if path == "" {
		path = "/"
	}
	record, err := r.base.repo.Get(ctx,
		func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("LOWER(namespace) = ?", strings.ToLower(key.Namespace)).
				Where("LOWER(qualifier) = ?", strings.ToLower(key.Qualifier)).
				Where("identification_key = ?", key.IdentificationKey).
				Where("qualifier_path = ?", path)
		},
		withoutDeleted(),
	)
	if err != nil {
		return nil, mapError(err)
	}
	return record, nil
}

// ListByIdentificationKey returns every qualifier-path variant registered for
// one identification key.
func (r *IdentifierRepository) ListByIdentificationKey(ctx context.Context, namespace, qualifier, identificationKey string) ([]domain.IdentifierRecord, error) {
	records, _, err := r.base.repo.List(ctx,
		func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("LOWER(namespace) = ?", strings.ToLower(namespace)).
				Where("LOWER(qualifier) = ?", strings.ToLower(qualifier)).
				Where("identification_key = ?", identificationKey).
				Order("qualifier_path ASC")
		},
		withoutDeleted(),
	)
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]domain.IdentifierRecord, len(records))
	for i, rec := range records {
		out[i] = *rec
	}
	return out, nil
}
