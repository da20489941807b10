package semantic

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopmind/shopmind/internal/domain"
)

// SyncJobRepository is the bookkeeping store for deferred index writes.
// Declared here to avoid a dependency on the relational store package.
type SyncJobRepository interface {
	Create(ctx context.Context, job *domain.SemanticSyncJob) error
	GetPending(ctx context.Context, limit int) ([]*domain.SemanticSyncJob, error)
	MarkDone(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, errMsg string) error
}

// Indexer keeps the semantic index in step with the relational store. The
// relational write always lands first; a failed index write is recorded as
// a sync job and replayed by the background loop instead of failing the
// caller.
type Indexer struct {
	store      Store
	jobs       SyncJobRepository
	syncTicker *time.Ticker
	stopChan   chan struct{}
}

func NewIndexer(store Store, jobs SyncJobRepository) *Indexer {
	return &Indexer{
		store:    store,
		jobs:     jobs,
		stopChan: make(chan struct{}),
	}
}

// SyncProduct replaces the index document for a product with a fresh
// snapshot. Delete-then-add keyed by productId metadata.
func (ix *Indexer) SyncProduct(ctx context.Context, product *domain.Product) {
	refID := fmt.Sprintf("%d", product.ID)
	content := ProductSnapshot(product)

	if err := ix.store.DeleteByMetadata(ctx, MetaProductID, refID); err != nil {
		zap.L().Warn("semantic index delete failed, deferring sync",
			zap.String("product_id", refID), zap.Error(err))
		ix.enqueue(ctx, domain.SyncKindProduct, refID, content, err)
		return
	}
	doc := Document{
		ID:       uuid.NewString(),
		Content:  content,
		Metadata: map[string]string{MetaProductID: refID},
	}
	if err := ix.store.Add(ctx, []Document{doc}); err != nil {
		zap.L().Warn("semantic index add failed, deferring sync",
			zap.String("product_id", refID), zap.Error(err))
		ix.enqueue(ctx, domain.SyncKindProduct, refID, content, err)
	}
}

// RemoveProduct drops the index document for a deleted product.
func (ix *Indexer) RemoveProduct(ctx context.Context, productID int64) {
	refID := fmt.Sprintf("%d", productID)
	if err := ix.store.DeleteByMetadata(ctx, MetaProductID, refID); err != nil {
		zap.L().Warn("semantic index delete failed",
			zap.String("product_id", refID), zap.Error(err))
	}
}

// AddOrderSummary writes the order summary document tagged with the order
// code.
func (ix *Indexer) AddOrderSummary(ctx context.Context, order *domain.Order) {
	content := OrderSummary(order)
	doc := Document{
		ID:       uuid.NewString(),
		Content:  content,
		Metadata: map[string]string{MetaOrderID: order.OrderCode},
	}
	if err := ix.store.Add(ctx, []Document{doc}); err != nil {
		zap.L().Warn("semantic index add failed, deferring sync",
			zap.String("order_code", order.OrderCode), zap.Error(err))
		ix.enqueue(ctx, domain.SyncKindOrder, order.OrderCode, content, err)
	}
}

func (ix *Indexer) enqueue(ctx context.Context, kind, refID, content string, cause error) {
	job := &domain.SemanticSyncJob{
		Kind:      kind,
		RefID:     refID,
		Content:   content,
		Status:    domain.SyncJobPending,
		LastError: cause.Error(),
	}
	if err := ix.jobs.Create(ctx, job); err != nil {
		zap.L().Error("failed to record semantic sync job",
			zap.String("kind", kind), zap.String("ref_id", refID), zap.Error(err))
	}
}

// Start begins the background replay loop for deferred index writes.
func (ix *Indexer) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 1 * time.Minute
	}
	ix.syncTicker = time.NewTicker(interval)
	go ix.syncLoop(ctx)

	zap.L().Info("semantic sync service started",
		zap.Duration("sync_interval", interval))
}

// Stop gracefully stops the replay loop.
func (ix *Indexer) Stop() {
	if ix.syncTicker != nil {
		ix.syncTicker.Stop()
	}
	close(ix.stopChan)
	zap.L().Info("semantic sync service stopped")
}

func (ix *Indexer) syncLoop(ctx context.Context) {
	for {
		select {
		case <-ix.syncTicker.C:
			ix.ReplayPending(ctx)
		case <-ix.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

// ReplayPending retries deferred index writes, up to 100 at a time.
func (ix *Indexer) ReplayPending(ctx context.Context) {
	pending, err := ix.jobs.GetPending(ctx, 100)
	if err != nil {
		zap.L().Error("failed to load pending sync jobs", zap.Error(err))
		return
	}
	if len(pending) == 0 {
		return
	}
	zap.L().Debug("replaying semantic sync jobs", zap.Int("count", len(pending)))

	for _, job := range pending {
		ix.replayJob(ctx, job)
	}
}

func (ix *Indexer) replayJob(ctx context.Context, job *domain.SemanticSyncJob) {
	var metaKey string
	switch job.Kind {
	case domain.SyncKindProduct:
		metaKey = MetaProductID
		// drop any stale snapshot first so the replay stays idempotent
		if err := ix.store.DeleteByMetadata(ctx, metaKey, job.RefID); err != nil {
			ix.fail(ctx, job, err)
			return
		}
	case domain.SyncKindOrder:
		metaKey = MetaOrderID
	default:
		ix.fail(ctx, job, fmt.Errorf("unknown sync kind %q", job.Kind))
		return
	}

	doc := Document{
		ID:       uuid.NewString(),
		Content:  job.Content,
		Metadata: map[string]string{metaKey: job.RefID},
	}
	if err := ix.store.Add(ctx, []Document{doc}); err != nil {
		ix.fail(ctx, job, err)
		return
	}
	if err := ix.jobs.MarkDone(ctx, job.ID); err != nil {
		zap.L().Error("failed to mark sync job done", zap.Int64("job_id", job.ID), zap.Error(err))
	}
}

func (ix *Indexer) fail(ctx context.Context, job *domain.SemanticSyncJob, cause error) {
	zap.L().Warn("semantic sync job replay failed",
		zap.Int64("job_id", job.ID), zap.String("kind", job.Kind), zap.Error(cause))
	if err := ix.jobs.MarkFailed(ctx, job.ID, cause.Error()); err != nil {
		zap.L().Error("failed to mark sync job failed", zap.Int64("job_id", job.ID), zap.Error(err))
	}
}
