package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/shopmind/shopmind/internal/domain"
)

const (
	productKeyPrefix = "product:"
	productCacheTTL  = 5 * time.Minute
)

// CachedProductRepository wraps a ProductRepository with a redis
// read-through cache on GetByID. Writes invalidate the cached entry. Cache
// failures degrade to the underlying repository and are only logged.
type CachedProductRepository struct {
	inner  ProductRepository
	client *redis.Client
}

func NewCachedProductRepository(inner ProductRepository, client *redis.Client) *CachedProductRepository {
	return &CachedProductRepository{inner: inner, client: client}
}

func productKey(id int64) string {
	return fmt.Sprintf("%s%d", productKeyPrefix, id)
}

func (r *CachedProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	data, err := r.client.Get(ctx, productKey(id)).Bytes()
	if err == nil {
		var product domain.Product
		if err := json.Unmarshal(data, &product); err == nil {
			return &product, nil
		}
	} else if err != redis.Nil {
		zap.L().Warn("product cache read failed", zap.Int64("product_id", id), zap.Error(err))
	}

	product, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(product); err == nil {
		if err := r.client.Set(ctx, productKey(id), data, productCacheTTL).Err(); err != nil {
			zap.L().Warn("product cache write failed", zap.Int64("product_id", id), zap.Error(err))
		}
	}
	return product, nil
}

func (r *CachedProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	return r.inner.List(ctx)
}

func (r *CachedProductRepository) Search(ctx context.Context, keyword string) ([]domain.Product, error) {
	return r.inner.Search(ctx, keyword)
}

func (r *CachedProductRepository) Save(ctx context.Context, product *domain.Product) error {
	if err := r.inner.Save(ctx, product); err != nil {
		return err
	}
	if err := r.client.Del(ctx, productKey(product.ID)).Err(); err != nil {
		zap.L().Warn("product cache invalidation failed", zap.Int64("product_id", product.ID), zap.Error(err))
	}
	return nil
}

func (r *CachedProductRepository) Delete(ctx context.Context, id int64) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	if err := r.client.Del(ctx, productKey(id)).Err(); err != nil {
		zap.L().Warn("product cache invalidation failed", zap.Int64("product_id", id), zap.Error(err))
	}
	return nil
}
