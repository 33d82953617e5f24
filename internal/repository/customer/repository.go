package customer

import (
	"context"

	"magazine-crm/internal/domain"
)

// Repository reads and replaces the customers document as a whole.
type Repository interface {
	List(ctx context.Context) ([]domain.Customer, error)
	ReplaceAll(ctx context.Context, customers []domain.Customer) error
}
