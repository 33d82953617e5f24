package profile

import (
	"context"

	"magazine-crm/internal/domain"
	"magazine-crm/internal/store"
)

// Repository reads and replaces the profile document.
type Repository interface {
	List(ctx context.Context) ([]domain.Profile, error)
	ReplaceAll(ctx context.Context, profiles []domain.Profile) error
}

type documentRepo struct {
	doc *store.Document[domain.Profile]
}

// NewDocument returns a Repository backed by the profile document.
func NewDocument(backend store.Store) Repository {
	return &documentRepo{doc: store.NewDocument[domain.Profile](backend, store.Profile)}
}

func (r *documentRepo) List(ctx context.Context) ([]domain.Profile, error) {
	return r.doc.Load(ctx)
}

func (r *documentRepo) ReplaceAll(ctx context.Context, profiles []domain.Profile) error {
	return r.doc.Save(ctx, profiles)
}
