package customer

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"magazine-crm/internal/domain"
	custrepo "magazine-crm/internal/repository/customer"
	"magazine-crm/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *recordingPublisher) Notify(_ context.Context, ev domain.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

// countingRepo wraps a repository and counts writes.
type countingRepo struct {
	custrepo.Repository
	reads    int
	writes   int
	listErr  error
	writeErr error
}

func (r *countingRepo) List(ctx context.Context) ([]domain.Customer, error) {
	r.reads++
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.Repository.List(ctx)
}

func (r *countingRepo) ReplaceAll(ctx context.Context, customers []domain.Customer) error {
	r.writes++
	if r.writeErr != nil {
		return r.writeErr
	}
	return r.Repository.ReplaceAll(ctx, customers)
}

func newTestService(t *testing.T, seed ...domain.Customer) (*Service, *countingRepo, *recordingPublisher) {
	t.Helper()
	repo := &countingRepo{Repository: custrepo.NewDocument(store.NewMemory())}
	require.NoError(t, repo.Repository.ReplaceAll(context.Background(), seed))
	pub := &recordingPublisher{}
	svc := New(repo, pub)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC) }
	return svc, repo, pub
}

func subscriber(id int, name, start string) domain.Customer {
	return domain.Customer{
		ID: id, Name: name, Email: name + "@x.com", Phone: "1",
		Type:     domain.CustomerTypeSubscriber,
		Magazine: &domain.Magazine{MagazineName: "M", SubscriptionStartDate: start},
	}
}

func normal(id int, name string) domain.Customer {
	return domain.Customer{ID: id, Name: name, Email: name + "@x.com", Phone: "1", Type: domain.CustomerTypeNormal}
}

func TestAdd_AssignsNextIDAndClassifies(t *testing.T) {
	ctx := context.Background()
	svc, _, pub := newTestService(t)

	a, err := svc.Add(ctx, AddInput{Name: "A", Email: "a@x.com", Phone: "1"})
	require.NoError(t, err)
	assert.Equal(t, 1, a.ID)
	assert.Equal(t, domain.CustomerTypeNormal, a.Type)
	assert.Nil(t, a.Magazine)

	b, err := svc.Add(ctx, AddInput{
		Name: "B", Email: "b@x.com", Phone: "2",
		Magazine: &domain.Magazine{MagazineName: "M", SubscriptionStartDate: "2023-01-15"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, b.ID)
	assert.Equal(t, domain.CustomerTypeSubscriber, b.Type)
	require.NotNil(t, b.Magazine)
	assert.Equal(t, "2023-01-15", b.Magazine.SubscriptionStartDate)
	assert.Empty(t, b.Magazine.ExpiryDate)

	list, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Name)

	require.Len(t, pub.events, 2)
	assert.Equal(t, domain.EventCustomerCreated, pub.events[0].Type)
	assert.Equal(t, "2024-05-01T08:00:00.000Z", pub.events[0].Timestamp)
	assert.Equal(t, 2, pub.events[1].Customer.ID)
}

func TestAdd_MagazineWithoutNameIsNormal(t *testing.T) {
	svc, _, _ := newTestService(t)

	c, err := svc.Add(context.Background(), AddInput{
		Name: "A", Email: "a@x.com", Phone: "1",
		Magazine: &domain.Magazine{SubscriptionStartDate: "2023-01-15"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CustomerTypeNormal, c.Type)
	assert.Nil(t, c.Magazine)
}

func TestAdd_KeepsExtraMagazineKeys(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)

	var in AddInput
	body := `{"name":"A","email":"a@x.com","phone":"1",
		"magazine":{"magazineName":"M","subscriptionStartDate":"2023-01-15","issue":"monthly","price":9.5}}`
	require.NoError(t, json.Unmarshal([]byte(body), &in))

	c, err := svc.Add(ctx, in)
	require.NoError(t, err)
	assert.JSONEq(t, `"monthly"`, string(c.Magazine.Extra["issue"]))

	stored, err := repo.Repository.List(ctx)
	require.NoError(t, err)
	out, err := json.Marshal(stored[0].Magazine)
	require.NoError(t, err)
	assert.JSONEq(t, `{"magazineName":"M","subscriptionStartDate":"2023-01-15","issue":"monthly","price":9.5}`, string(out))
}

func TestAdd_RequiresContactFields(t *testing.T) {
	svc, repo, pub := newTestService(t)

	cases := []AddInput{
		{Email: "a@x.com", Phone: "1"},
		{Name: "A", Phone: "1"},
		{Name: "A", Email: "a@x.com", Phone: "   "},
	}
	for _, in := range cases {
		_, err := svc.Add(context.Background(), in)
		require.ErrorIs(t, err, domain.ErrValidation)
	}
	assert.Zero(t, repo.reads)
	assert.Zero(t, repo.writes)
	assert.Empty(t, pub.events)
}

func TestAdd_IDIsPriorCountPlusOneAfterDelete(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, normal(1, "a"), normal(2, "b"), normal(3, "c"))

	_, err := svc.Delete(ctx, 1)
	require.NoError(t, err)

	d, err := svc.Add(ctx, AddInput{Name: "d", Email: "d@x.com", Phone: "4"})
	require.NoError(t, err)
	assert.Equal(t, 3, d.ID, "two customers remained, so the new id is 3")

	list, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 3, list[1].ID)
	assert.Equal(t, 3, list[2].ID)

	// Deleting the repeated id removes only the first match.
	removed, err := svc.Delete(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "c", removed.Name)
	list, err = svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "d", list[1].Name)
}

func TestAdd_StoreFailures(t *testing.T) {
	svc, repo, pub := newTestService(t)
	repo.listErr = store.ErrRead
	_, err := svc.Add(context.Background(), AddInput{Name: "A", Email: "a", Phone: "1"})
	require.ErrorIs(t, err, store.ErrRead)
	assert.Zero(t, repo.writes)

	repo.listErr = nil
	repo.writeErr = store.ErrWrite
	_, err = svc.Add(context.Background(), AddInput{Name: "A", Email: "a", Phone: "1"})
	require.ErrorIs(t, err, store.ErrWrite)
	assert.Empty(t, pub.events)
}

func TestList_FiltersAndProjectsExpiry(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t,
		subscriber(1, "Alice", "2023-01-15"),
		normal(2, "Bob"),
		subscriber(3, "alicia", "2024-02-29"),
		subscriber(4, "Malice", "not-a-date"),
		subscriber(5, "Alfred", ""),
	)

	list, err := svc.List(ctx, "ALI")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2024-01-15", list[0].Magazine.ExpiryDate)
	assert.Equal(t, "2025-03-01", list[1].Magazine.ExpiryDate)
	assert.Empty(t, list[2].Magazine.ExpiryDate)

	stored, err := repo.Repository.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored[0].Magazine.ExpiryDate, "expiry projection must not be persisted")
	assert.Zero(t, repo.writes)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 5)
	assert.Empty(t, all[4].Magazine.ExpiryDate)
}

func TestDashboards(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, subscriber(1, "a", "2023-01-01"), normal(2, "b"), subscriber(3, "c", ""))

	dash, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, DashboardStats{TotalCustomers: 3, TotalMagazineSubscribers: 2}, dash)

	mags, err := svc.MagazineDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, mags.TotalMagazines)
	require.Len(t, mags.MagazineCustomers, 2)
	assert.Equal(t, 3, mags.MagazineCustomers[1].ID)
}

func TestGraphData_BucketsWholeYears(t *testing.T) {
	svc, _, _ := newTestService(t,
		subscriber(1, "a", "2022-11-03"),
		subscriber(2, "b", "2024-02-10"),
		subscriber(3, "c", "2024-02-28"),
		subscriber(4, "d", "garbage"),
		subscriber(5, "e", ""),
		normal(6, "f"),
	)

	buckets, err := svc.GraphData(context.Background())
	require.NoError(t, err)
	require.Len(t, buckets, 12*3)
	assert.Equal(t, MonthCount{Month: "2022-1", Count: 0}, buckets[0])
	assert.Equal(t, MonthCount{Month: "2022-11", Count: 1}, buckets[10])
	assert.Equal(t, MonthCount{Month: "2024-2", Count: 2}, buckets[25])
	assert.Equal(t, "2024-12", buckets[35].Month)

	total := 0
	for _, b := range buckets {
		require.GreaterOrEqual(t, b.Count, 0)
		total += b.Count
	}
	assert.Equal(t, 3, total)
}

func TestGraphData_EmptyWithoutValidDates(t *testing.T) {
	svc, _, _ := newTestService(t, normal(1, "a"), subscriber(2, "b", "nope"))

	buckets, err := svc.GraphData(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, buckets)
	assert.Empty(t, buckets)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, repo, pub := newTestService(t, normal(1, "A"), normal(2, "B"))

	_, err := svc.Delete(ctx, 9)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, repo.writes)

	removed, err := svc.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "A", removed.Name)

	list, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].ID)

	require.Len(t, pub.events, 1)
	assert.Equal(t, domain.EventCustomerDeleted, pub.events[0].Type)
	require.NotNil(t, pub.events[0].DeletedCustomer)
	assert.Equal(t, "A", pub.events[0].DeletedCustomer.Name)
	assert.Nil(t, pub.events[0].Customer)
}

func TestEdit(t *testing.T) {
	ctx := context.Background()
	svc, repo, pub := newTestService(t, subscriber(1, "A", "2023-01-15"))

	_, err := svc.Edit(ctx, 1, EditInput{})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, repo.reads)
	assert.Zero(t, repo.writes)

	phone := "555"
	_, err = svc.Edit(ctx, 7, EditInput{Phone: &phone})
	require.ErrorIs(t, err, domain.ErrNotFound)

	updated, err := svc.Edit(ctx, 1, EditInput{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "555", updated.Phone)
	assert.Equal(t, "A", updated.Name)
	assert.Equal(t, domain.CustomerTypeSubscriber, updated.Type)
	require.NotNil(t, updated.Magazine)
	assert.Equal(t, "M", updated.Magazine.MagazineName)

	require.Len(t, pub.events, 1)
	assert.Equal(t, domain.EventCustomerUpdated, pub.events[0].Type)
	assert.Equal(t, "555", pub.events[0].Customer.Phone)
}

func TestEdit_EmptyStringClearsField(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t, normal(1, "A"))

	empty := ""
	updated, err := svc.Edit(ctx, 1, EditInput{Email: &empty})
	require.NoError(t, err)
	assert.Empty(t, updated.Email)
	assert.Equal(t, "A", updated.Name)

	stored, err := repo.Repository.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored[0].Email)
}

func TestRenew(t *testing.T) {
	ctx := context.Background()
	svc, repo, pub := newTestService(t,
		subscriber(1, "A", "2023-01-31T00:00:00Z"),
		normal(2, "B"),
		subscriber(3, "C", "bogus"),
	)

	_, err := svc.Renew(ctx, 5)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Renew(ctx, 2)
	require.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.Renew(ctx, 3)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, repo.writes)

	renewed, err := svc.Renew(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "2023-01-31", renewed.Magazine.SubscriptionStartDate)
	assert.Equal(t, "2023-03-03", renewed.Magazine.ExpiryDate)
	assert.Empty(t, pub.events, "renewal does not notify")

	stored, err := repo.Repository.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2023-03-03", stored[0].Magazine.ExpiryDate)

	list, err := svc.List(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-31", list[0].Magazine.ExpiryDate, "listing projects one year from start")
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	for _, raw := range []string{"", "abc", "1.5", "12abc"} {
		_, err := ParseID(raw)
		require.True(t, errors.Is(err, domain.ErrValidation), raw)
	}
}

func TestConcurrentAddsMayLoseUpdates(t *testing.T) {
	ctx := context.Background()
	repo := custrepo.NewDocument(store.NewMemory())
	require.NoError(t, repo.ReplaceAll(ctx, nil))
	svc := New(repo, &recordingPublisher{})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Add(ctx, AddInput{Name: "n", Email: "e", Phone: "p"})
		}()
	}
	wg.Wait()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(list), 1)
	assert.LessOrEqual(t, len(list), 10)
}
