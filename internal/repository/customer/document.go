package customer

import (
	"context"

	"magazine-crm/internal/domain"
	"magazine-crm/internal/store"
)

type documentRepo struct {
	doc *store.Document[domain.Customer]
}

// NewDocument returns a Repository backed by the customers document.
func NewDocument(backend store.Store) Repository {
	return &documentRepo{doc: store.NewDocument[domain.Customer](backend, store.Customers)}
}

func (r *documentRepo) List(ctx context.Context) ([]domain.Customer, error) {
	return r.doc.Load(ctx)
}

func (r *documentRepo) ReplaceAll(ctx context.Context, customers []domain.Customer) error {
	return r.doc.Save(ctx, customers)
}
