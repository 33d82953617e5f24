package profile

import (
	"context"
	"fmt"

	"magazine-crm/internal/domain"
	profilerepo "magazine-crm/internal/repository/profile"
)

// Service reads and updates the single operator profile.
type Service struct {
	repo profilerepo.Repository
}

// New creates a Service.
func New(repo profilerepo.Repository) *Service {
	return &Service{repo: repo}
}

// UpdateInput lists the fields a client may send. Only Name is applied; any
// present field, even an empty one, satisfies the at-least-one check.
type UpdateInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// Get returns the first profile.
func (s *Service) Get(ctx context.Context) (*domain.Profile, error) {
	profiles, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("no profiles found: %w", domain.ErrNotFound)
	}
	p := profiles[0]
	return &p, nil
}

// Update stores the incoming name as the username of the first profile.
// Email and phone are accepted for validation but not written.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*domain.Profile, error) {
	if in.Name == nil && in.Email == nil && in.Phone == nil {
		return nil, fmt.Errorf("%w: At least one field (name, email, phone) is required to update.", domain.ErrValidation)
	}

	profiles, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("no profiles found: %w", domain.ErrNotFound)
	}

	username := ""
	if in.Name != nil {
		username = *in.Name
	}
	profiles[0].Username = username

	if err := s.repo.ReplaceAll(ctx, profiles); err != nil {
		return nil, err
	}
	p := profiles[0]
	return &p, nil
}
