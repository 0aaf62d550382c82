package memory

import (
	"context"
	"strings"

	"github.com/goliatone/go-linkresolver/pkg/domain"
	"github.com/goliatone/go-linkresolver/pkg/interfaces/store"
	"github.com/google/uuid"
)

// IdentifierRepository stores identifier records in memory.
type IdentifierRepository struct {
	base baseMemoryRepo[domain.IdentifierRecord]
}

var _ store.IdentifierRecordRepository = (*IdentifierRepository)(nil)

func NewIdentifierRepository() *IdentifierRepository {
	return &IdentifierRepository{
		base: newBaseMemoryRepo[domain.IdentifierRecord]("identifier_record", func(r *domain.IdentifierRecord) *domain.RecordMeta {
			return &r.RecordMeta
		}),
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

// GetByIdentifier looks up by composite key; qualifier paths compare with an
// empty path treated as the root.
func (r *IdentifierRepository) GetByIdentifier(ctx context.Context, key store.IdentifierKey) (*domain.IdentifierRecord, error) {
	result, err := r.base.list(ctx, store.ListOptions{})
	if err != nil {
		return nil, err
	}
	path := key.QualifierPath
	if path == "" {
		path = "/"
	}
	for i := range result.Items {
		record := result.Items[i]
		if !strings.EqualFold(record.Namespace, key.Namespace) {
			continue
		}
		if !strings.EqualFold(record.Qualifier, key.Qualifier) {
			continue
		}
		if record.IdentificationKey != key.IdentificationKey {
			continue
		}
		recordPath := record.QualifierPath
		if recordPath == "" {
			recordPath = "/"
		}
		if recordPath != path {
			continue
		}
		return &record, nil
	}
	return nil, store.ErrNotFound
}

// ListByIdentificationKey returns every qualifier-path variant registered for
// one identification key.
func (r *IdentifierRepository) ListByIdentificationKey(ctx context.Context, namespace, qualifier, identificationKey string) ([]domain.IdentifierRecord, error) {
	result, err := r.base.list(ctx, store.ListOptions{})
	if err != nil {
		return nil, err
	}
	var out []domain.IdentifierRecord
	for i := range result.Items {
		record := result.Items[i]
		if strings.EqualFold(record.Namespace, namespace) &&
			strings.EqualFold(record.Qualifier, qualifier) &&
			record.IdentificationKey == identificationKey {
			out = append(out, record)
		}
	}
	return out, nil
}
