package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/shopmind/shopmind/internal/domain"
)

// ErrProductNotFound reports a lookup against a product id that does not
// exist in the catalog.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository handles database operations for catalog products
type ProductRepository interface {
	// GetByID retrieves a product by ID; returns ErrProductNotFound when absent
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// List retrieves all products
	List(ctx context.Context) ([]domain.Product, error)

	// Search retrieves products matching a keyword on name, description,
	// brand or category
	Search(ctx context.Context, keyword string) ([]domain.Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *domain.Product) error

	// Delete removes a product by ID; returns ErrProductNotFound when absent
	Delete(ctx context.Context, id int64) error
}

// OrderRepository handles database operations for orders
type OrderRepository interface {
	// Create persists an order with its items
	Create(ctx context.Context, order *domain.Order) error

	// List retrieves all orders with items and products preloaded
	List(ctx context.Context) ([]domain.Order, error)

	// GetByCode retrieves an order by its public order code
	GetByCode(ctx context.Context, code string) (*domain.Order, error)
}

// SyncJobRepository handles bookkeeping for deferred semantic index writes
type SyncJobRepository interface {
	Create(ctx context.Context, job *domain.SemanticSyncJob) error
	GetPending(ctx context.Context, limit int) ([]*domain.SemanticSyncJob, error)
	MarkDone(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, errMsg string) error
	DeleteDoneBefore(ctx context.Context, days int) error
}

// GormProductRepository is the GORM implementation of ProductRepository
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).Order("id ASC").Find(&products).Error
	return products, err
}

func (r *GormProductRepository) Search(ctx context.Context, keyword string) ([]domain.Product, error) {
	var products []domain.Product
	q := r.db.WithContext(ctx).Model(&domain.Product{})
	kw := "%" + strings.ToLower(strings.TrimSpace(keyword)) + "%"
	q = q.Where(
		"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(category) LIKE ?",
		kw, kw, kw, kw,
	)
	err := q.Order("id ASC").Find(&products).Error
	return products, err
}

func (r *GormProductRepository) Save(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *GormProductRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// GormOrderRepository is the GORM implementation of OrderRepository
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *GormOrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Order("id ASC").
		Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) GetByCode(ctx context.Context, code string) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("order_code = ?", code).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GormSyncJobRepository is the GORM implementation of SyncJobRepository
type GormSyncJobRepository struct {
	db *gorm.DB
}

func NewGormSyncJobRepository(db *gorm.DB) *GormSyncJobRepository {
	return &GormSyncJobRepository{db: db}
}

func (r *GormSyncJobRepository) Create(ctx context.Context, job *domain.SemanticSyncJob) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *GormSyncJobRepository) GetPending(ctx context.Context, limit int) ([]*domain.SemanticSyncJob, error) {
	var jobs []*domain.SemanticSyncJob
	err := r.db.WithContext(ctx).
		Where("status IN ?", []string{domain.SyncJobPending, domain.SyncJobFailed}).
		Where("attempts < ?", 5).
		Order("created_at ASC").
		Limit(limit).
		Find(&jobs).Error
	return jobs, err
}

func (r *GormSyncJobRepository) MarkDone(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.SemanticSyncJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     domain.SyncJobDone,
			"last_error": "",
		}).Error
}

func (r *GormSyncJobRepository) MarkFailed(ctx context.Context, id int64, errMsg string) error {
	return r.db.WithContext(ctx).
		Model(&domain.SemanticSyncJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     domain.SyncJobFailed,
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": errMsg,
		}).Error
}

func (r *GormSyncJobRepository) DeleteDoneBefore(ctx context.Context, days int) error {
	cutoff := time.Now().Add(-time.Hour * 24 * time.Duration(days))
	return r.db.WithContext(ctx).
		Where("status = ?", domain.SyncJobDone).
		Where("updated_at < ?", cutoff).
		Delete(&domain.SemanticSyncJob{}).Error
}
