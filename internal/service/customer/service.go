package customer

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"magazine-crm/internal/domain"
	custrepo "magazine-crm/internal/repository/customer"
)

// Publisher receives change events after a successful write.
type Publisher interface {
	Notify(ctx context.Context, ev domain.Event)
}

// Service implements customer operations as read-all, compute, write-all
// cycles over the customers document. Cycles are not serialized: two
// concurrent writers both read the same snapshot and the later write wins.
type Service struct {
	repo   custrepo.Repository
	events Publisher
	now    func() time.Time
}

// New creates a Service. events may be nil when nobody listens.
func New(repo custrepo.Repository, events Publisher) *Service {
	return &Service{repo: repo, events: events, now: time.Now}
}

// AddInput captures fields expected by the add endpoint.
type AddInput struct {
	Name     string           `json:"name"`
	Email    string           `json:"email"`
	Phone    string           `json:"phone"`
	Magazine *domain.Magazine `json:"magazine"`
}

// EditInput carries the fields to overwrite. Absent fields are left alone; a
// present empty string clears the field.
type EditInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// DashboardStats is the customer dashboard aggregate.
type DashboardStats struct {
	TotalCustomers           int `json:"totalCustomers"`
	TotalMagazineSubscribers int `json:"totalMagazineSubscribers"`
}

// MagazineStats lists every customer holding a magazine.
type MagazineStats struct {
	TotalMagazines    int               `json:"totalMagazines"`
	MagazineCustomers []domain.Customer `json:"magazineCustomers"`
}

// ParseID validates a path id before any storage access.
func ParseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: Invalid customer ID", domain.ErrValidation)
	}
	return id, nil
}

// Add appends a new customer and emits a created event.
func (s *Service) Add(ctx context.Context, in AddInput) (*domain.Customer, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	phone := strings.TrimSpace(in.Phone)
	if name == "" || email == "" || phone == "" {
		return nil, fmt.Errorf("%w: Customer Name, Email, and Phone Number are required.", domain.ErrValidation)
	}

	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	created := domain.Customer{
		ID:    nextID(customers),
		Name:  name,
		Email: email,
		Phone: phone,
		Type:  domain.CustomerTypeNormal,
	}
	if in.Magazine != nil && strings.TrimSpace(in.Magazine.MagazineName) != "" {
		created.Type = domain.CustomerTypeSubscriber
		m := in.Magazine.Clone()
		m.MagazineName = strings.TrimSpace(m.MagazineName)
		m.SubscriptionStartDate = strings.TrimSpace(m.SubscriptionStartDate)
		created.Magazine = &m
	}

	customers = append(customers, created)
	if err := s.repo.ReplaceAll(ctx, customers); err != nil {
		return nil, err
	}

	s.emit(ctx, domain.EventCustomerCreated, created)
	return &created, nil
}

// List returns customers whose name contains nameFilter, case-insensitively.
// Each subscriber with a parseable start date gets a view-only expiry one
// year after the start.
func (s *Service) List(ctx context.Context, nameFilter string) ([]domain.Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(nameFilter)
	out := make([]domain.Customer, 0, len(customers))
	for _, c := range customers {
		if needle != "" && !strings.Contains(strings.ToLower(c.Name), needle) {
			continue
		}
		if c.HasSubscription() {
			if start, ok := parseDate(c.Magazine.SubscriptionStartDate); ok {
				c.Magazine.ExpiryDate = formatDate(start.AddDate(1, 0, 0))
			}
		}
		out = append(out, c)
	}
	return out, nil
}

// Dashboard counts all customers and those with a magazine.
func (s *Service) Dashboard(ctx context.Context) (DashboardStats, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	stats := DashboardStats{TotalCustomers: len(customers)}
	for _, c := range customers {
		if c.Magazine != nil {
			stats.TotalMagazineSubscribers++
		}
	}
	return stats, nil
}

// MagazineDashboard returns the customers holding a magazine.
func (s *Service) MagazineDashboard(ctx context.Context) (MagazineStats, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return MagazineStats{}, err
	}
	subscribers := make([]domain.Customer, 0, len(customers))
	for _, c := range customers {
		if c.Magazine != nil {
			subscribers = append(subscribers, c)
		}
	}
	return MagazineStats{TotalMagazines: len(subscribers), MagazineCustomers: subscribers}, nil
}

// GraphData buckets subscription start dates by month.
func (s *Service) GraphData(ctx context.Context) ([]MonthCount, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return monthlyHistogram(customers), nil
}

// Delete removes the customer with id and emits a deleted event.
func (s *Service) Delete(ctx context.Context, id int) (*domain.Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOf(customers, id)
	if idx < 0 {
		return nil, fmt.Errorf("customer %d: %w", id, domain.ErrNotFound)
	}

	removed := customers[idx]
	customers = append(customers[:idx:idx], customers[idx+1:]...)
	if err := s.repo.ReplaceAll(ctx, customers); err != nil {
		return nil, err
	}

	s.emit(ctx, domain.EventCustomerDeleted, removed)
	return &removed, nil
}

// Edit overwrites the supplied contact fields and emits an updated event.
// Magazine, type and id are never touched.
func (s *Service) Edit(ctx context.Context, id int, in EditInput) (*domain.Customer, error) {
	name, hasName := supplied(in.Name)
	email, hasEmail := supplied(in.Email)
	phone, hasPhone := supplied(in.Phone)
	if !hasName && !hasEmail && !hasPhone {
		return nil, fmt.Errorf("%w: At least one field (name, email, phone) is required to update.", domain.ErrValidation)
	}

	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOf(customers, id)
	if idx < 0 {
		return nil, fmt.Errorf("customer %d: %w", id, domain.ErrNotFound)
	}

	c := &customers[idx]
	if hasName {
		c.Name = name
	}
	if hasEmail {
		c.Email = email
	}
	if hasPhone {
		c.Phone = phone
	}
	if err := s.repo.ReplaceAll(ctx, customers); err != nil {
		return nil, err
	}

	updated := *c
	s.emit(ctx, domain.EventCustomerUpdated, updated)
	return &updated, nil
}

// Renew stores an expiry one month after the subscription start and
// rewrites the start date in canonical form. The start date itself does not
// move, and no event is emitted.
func (s *Service) Renew(ctx context.Context, id int) (*domain.Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOf(customers, id)
	if idx < 0 {
		return nil, fmt.Errorf("customer %d: %w", id, domain.ErrNotFound)
	}

	c := &customers[idx]
	if !c.HasSubscription() {
		return nil, fmt.Errorf("%w: Customer does not have a magazine subscription", domain.ErrValidation)
	}
	start, ok := parseDate(c.Magazine.SubscriptionStartDate)
	if !ok {
		return nil, fmt.Errorf("%w: subscription start date %q is not a valid date", domain.ErrValidation, c.Magazine.SubscriptionStartDate)
	}
	c.Magazine.SubscriptionStartDate = formatDate(start)
	c.Magazine.ExpiryDate = formatDate(start.AddDate(0, 1, 0))

	if err := s.repo.ReplaceAll(ctx, customers); err != nil {
		return nil, err
	}
	renewed := c.Clone()
	return &renewed, nil
}

func (s *Service) emit(ctx context.Context, kind domain.EventType, c domain.Customer) {
	if s.events == nil {
		return
	}
	s.events.Notify(ctx, domain.NewCustomerEvent(kind, c, s.now()))
}

// nextID numbers a new customer as the prior count plus one. After a delete
// this can repeat an id still in use; Delete, Edit and Renew then act on the
// first match.
func nextID(customers []domain.Customer) int {
	return len(customers) + 1
}

func indexOf(customers []domain.Customer, id int) int {
	for i, c := range customers {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func supplied(v *string) (string, bool) {
	if v == nil {
		return "", false
	}
	return *v, true
}
