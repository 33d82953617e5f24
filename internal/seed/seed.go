package seed

import (
	"context"
	"errors"
	"fmt"

	"magazine-crm/internal/domain"
	"magazine-crm/internal/store"
)

// Result reports which documents Apply created.
type Result struct {
	Created []store.DocumentID
}

// Apply makes sure every document exists so the API never starts against
// missing files. Existing documents are left untouched, so running it twice
// is safe. The profile is seeded with username.
func Apply(ctx context.Context, backend store.Store, username string) (Result, error) {
	var res Result

	profiles := []domain.Profile{{Username: username}}
	seeds := []struct {
		doc   store.DocumentID
		write func() error
	}{
		{store.Customers, func() error {
			return store.NewDocument[domain.Customer](backend, store.Customers).Save(ctx, nil)
		}},
		{store.Profile, func() error {
			return store.NewDocument[domain.Profile](backend, store.Profile).Save(ctx, profiles)
		}},
		{store.Notifications, func() error {
			return store.NewDocument[domain.Notification](backend, store.Notifications).Save(ctx, nil)
		}},
	}

	for _, s := range seeds {
		_, err := backend.Read(ctx, s.doc)
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrMissing) {
			return res, fmt.Errorf("check %s: %w", s.doc, err)
		}
		if err := s.write(); err != nil {
			return res, fmt.Errorf("seed %s: %w", s.doc, err)
		}
		res.Created = append(res.Created, s.doc)
	}
	return res, nil
}
