package notification

import (
	"context"

	"magazine-crm/internal/domain"
	"magazine-crm/internal/store"
)

// Repository reads and replaces the append-only notifications document.
type Repository interface {
	List(ctx context.Context) ([]domain.Notification, error)
	ReplaceAll(ctx context.Context, notifications []domain.Notification) error
}

type documentRepo struct {
	doc *store.Document[domain.Notification]
}

// NewDocument returns a Repository backed by the notifications document.
func NewDocument(backend store.Store) Repository {
	return &documentRepo{doc: store.NewDocument[domain.Notification](backend, store.Notifications)}
}

func (r *documentRepo) List(ctx context.Context) ([]domain.Notification, error) {
	return r.doc.Load(ctx)
}

func (r *documentRepo) ReplaceAll(ctx context.Context, notifications []domain.Notification) error {
	return r.doc.Save(ctx, notifications)
}
