package semantic

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopmind/shopmind/internal/domain"
)

type failingStore struct {
	*MemoryStore
	addErr    error
	deleteErr error
}

func (s *failingStore) Add(ctx context.Context, docs []Document) error {
	if s.addErr != nil {
		return s.addErr
	}
	return s.MemoryStore.Add(ctx, docs)
}

func (s *failingStore) DeleteByMetadata(ctx context.Context, key, value string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	return s.MemoryStore.DeleteByMetadata(ctx, key, value)
}

type memJobRepo struct {
	jobs   []*domain.SemanticSyncJob
	nextID int64
}

func (r *memJobRepo) Create(_ context.Context, job *domain.SemanticSyncJob) error {
	r.nextID++
	job.ID = r.nextID
	r.jobs = append(r.jobs, job)
	return nil
}

func (r *memJobRepo) GetPending(_ context.Context, limit int) ([]*domain.SemanticSyncJob, error) {
	var out []*domain.SemanticSyncJob
	for _, j := range r.jobs {
		if j.Status == domain.SyncJobPending || j.Status == domain.SyncJobFailed {
			out = append(out, j)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *memJobRepo) MarkDone(_ context.Context, id int64) error {
	for _, j := range r.jobs {
		if j.ID == id {
			j.Status = domain.SyncJobDone
		}
	}
	return nil
}

func (r *memJobRepo) MarkFailed(_ context.Context, id int64, errMsg string) error {
	for _, j := range r.jobs {
		if j.ID == id {
			j.Status = domain.SyncJobFailed
			j.LastError = errMsg
			j.Attempts++
		}
	}
	return nil
}

func testIndexProduct() *domain.Product {
	return &domain.Product{
		ID:          42,
		Name:        "Widget",
		Description: "A widget",
		Brand:       "Acme",
		Category:    "Tools",
		Price:       decimal.RequireFromString("10.00"),
		ReleaseDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Available:   true,
		StockQty:    3,
	}
}

func TestSyncProductReplacesSnapshot(t *testing.T) {
	store := NewMemoryStore(NewHashEmbedder(0))
	ix := NewIndexer(store, &memJobRepo{})

	product := testIndexProduct()
	ix.SyncProduct(context.Background(), product)
	require.Equal(t, 1, store.Len())

	product.StockQty = 1
	ix.SyncProduct(context.Background(), product)
	assert.Equal(t, 1, store.Len(), "resync must replace, not accumulate")

	hits, err := store.Search(context.Background(), "widget acme tools", 5, 0)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Contains(t, hits[0].Document.Content, "Stock: 1")
}

func TestSyncProductEnqueuesJobOnStoreFailure(t *testing.T) {
	store := &failingStore{MemoryStore: NewMemoryStore(NewHashEmbedder(0)), addErr: errors.New("store down")}
	jobs := &memJobRepo{}
	ix := NewIndexer(store, jobs)

	ix.SyncProduct(context.Background(), testIndexProduct())

	require.Len(t, jobs.jobs, 1)
	job := jobs.jobs[0]
	assert.Equal(t, domain.SyncKindProduct, job.Kind)
	assert.Equal(t, "42", job.RefID)
	assert.Equal(t, domain.SyncJobPending, job.Status)
	assert.Contains(t, job.Content, "Widget")
	assert.Equal(t, "store down", job.LastError)
}

func TestAddOrderSummaryEnqueuesJobOnStoreFailure(t *testing.T) {
	store := &failingStore{MemoryStore: NewMemoryStore(NewHashEmbedder(0)), addErr: errors.New("store down")}
	jobs := &memJobRepo{}
	ix := NewIndexer(store, jobs)

	order := &domain.Order{OrderCode: "ORDDEADBEEF", CustomerName: "Alice", Status: domain.OrderStatusPlaced}
	ix.AddOrderSummary(context.Background(), order)

	require.Len(t, jobs.jobs, 1)
	assert.Equal(t, domain.SyncKindOrder, jobs.jobs[0].Kind)
	assert.Equal(t, "ORDDEADBEEF", jobs.jobs[0].RefID)
}

func TestReplayPendingDrainsJobs(t *testing.T) {
	store := &failingStore{MemoryStore: NewMemoryStore(NewHashEmbedder(0)), addErr: errors.New("store down")}
	jobs := &memJobRepo{}
	ix := NewIndexer(store, jobs)

	ix.SyncProduct(context.Background(), testIndexProduct())
	require.Equal(t, 0, store.Len())
	require.Len(t, jobs.jobs, 1)

	// store recovers
	store.addErr = nil
	ix.ReplayPending(context.Background())

	assert.Equal(t, 1, store.Len())
	assert.Equal(t, domain.SyncJobDone, jobs.jobs[0].Status)

	// a drained queue replays nothing further
	ix.ReplayPending(context.Background())
	assert.Equal(t, 1, store.Len())
}

func TestReplayFailureMarksJobFailed(t *testing.T) {
	store := &failingStore{MemoryStore: NewMemoryStore(NewHashEmbedder(0)), addErr: errors.New("store down")}
	jobs := &memJobRepo{}
	ix := NewIndexer(store, jobs)

	ix.SyncProduct(context.Background(), testIndexProduct())
	require.Len(t, jobs.jobs, 1)

	ix.ReplayPending(context.Background())

	assert.Equal(t, domain.SyncJobFailed, jobs.jobs[0].Status)
	assert.Equal(t, 1, jobs.jobs[0].Attempts)
	assert.Equal(t, "store down", jobs.jobs[0].LastError)
}
