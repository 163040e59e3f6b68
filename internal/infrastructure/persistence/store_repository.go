package persistence

import (
	"context"
	"errors"

	"github.com/caixa/backend/internal/domain/identity"
	"github.com/caixa/backend/internal/domain/shared"
	"github.com/caixa/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStoreRepository implements StoreRepository using GORM
type GormStoreRepository struct {
	db *gorm.DB
}

// NewGormStoreRepository creates a new GormStoreRepository
func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// FindByID finds a store by its ID
func (r *GormStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Store, error) {
	var model models.StoreModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all stores matching the filter
func (r *GormStoreRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Store, error) {
	query := r.db.WithContext(ctx).Model(&models.StoreModel{})
	return r.findStores(query, filter)
}

// FindActive finds all active stores
func (r *GormStoreRepository) FindActive(ctx context.Context, filter shared.Filter) ([]identity.Store, error) {
	query := r.db.WithContext(ctx).Model(&models.StoreModel{}).
		Where("status = ?", identity.StoreStatusActive)
	return r.findStores(query, filter)
}

// findStores applies search, sorting and pagination and runs the query
func (r *GormStoreRepository) findStores(query *gorm.DB, filter shared.Filter) ([]identity.Store, error) {
	var storeModels []models.StoreModel

	// Apply keyword search
	if filter.Search != "" {
		keyword := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ?", keyword)
	}

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, StoreSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	// Apply pagination
	offset := (filter.Page - 1) * filter.PageSize
	if offset < 0 {
		offset = 0
	}
	limit := filter.PageSize
	if limit <= 0 {
		limit = 20
	}
	query = query.Offset(offset).Limit(limit)

	if err := query.Find(&storeModels).Error; err != nil {
		return nil, err
	}

	// Convert to domain entities
	stores := make([]identity.Store, len(storeModels))
	for i, model := range storeModels {
		stores[i] = *model.ToDomain()
	}

	return stores, nil
}

// Save creates or updates a store
func (r *GormStoreRepository) Save(ctx context.Context, store *identity.Store) error {
	model := models.StoreModelFromDomain(store)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a store
func (r *GormStoreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.StoreModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts stores matching the filter
func (r *GormStoreRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.StoreModel{})

	// Apply keyword search
	if filter.Search != "" {
		keyword := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ?", keyword)
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

// ExistsByName checks if a store with the given name exists
func (r *GormStoreRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.StoreModel{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetActiveStoreIDs returns the IDs of all active stores.
// Used by the telemetry metrics collector.
func (r *GormStoreRepository) GetActiveStoreIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.StoreModel{}).
		Where("status = ?", string(identity.StoreStatusActive)).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Ensure GormStoreRepository implements StoreRepository
var _ identity.StoreRepository = (*GormStoreRepository)(nil)
