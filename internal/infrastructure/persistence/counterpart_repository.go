package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/caixa/backend/internal/domain/ledger"
	"github.com/caixa/backend/internal/domain/shared"
	"github.com/caixa/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCounterpartRepository implements CounterpartRepository using GORM
type GormCounterpartRepository struct {
	db *gorm.DB
}

// NewGormCounterpartRepository creates a new GormCounterpartRepository
func NewGormCounterpartRepository(db *gorm.DB) *GormCounterpartRepository {
	return &GormCounterpartRepository{db: db}
}

// FindByID finds a counterpart by its ID
func (r *GormCounterpartRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Counterpart, error) {
	var model models.CounterpartModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForStore finds a counterpart by ID for a specific store
func (r *GormCounterpartRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*ledger.Counterpart, error) {
	var model models.CounterpartModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND id = ?", storeID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForStore finds all counterparts for a store with filtering
func (r *GormCounterpartRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter ledger.CounterpartFilter) ([]ledger.Counterpart, error) {
	var counterpartModels []models.CounterpartModel
	query := r.db.WithContext(ctx).Model(&models.CounterpartModel{}).
		Where("store_id = ?", storeID)
	query = r.applyFilter(query, filter)

	if err := query.Find(&counterpartModels).Error; err != nil {
		return nil, err
	}
	counterparts := make([]ledger.Counterpart, len(counterpartModels))
	for i, model := range counterpartModels {
		counterparts[i] = *model.ToDomain()
	}
	return counterparts, nil
}

// CountForStore counts counterparts for a store with filtering
func (r *GormCounterpartRepository) CountForStore(ctx context.Context, storeID uuid.UUID, filter ledger.CounterpartFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.CounterpartModel{}).
		Where("store_id = ?", storeID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks if a counterpart name exists for a store and role
func (r *GormCounterpartRepository) ExistsByName(ctx context.Context, storeID uuid.UUID, role ledger.CounterpartRole, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CounterpartModel{}).
		Where("store_id = ? AND role = ? AND name = ?", storeID, role, name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a counterpart
func (r *GormCounterpartRepository) Save(ctx context.Context, counterpart *ledger.Counterpart) error {
	model := models.CounterpartModelFromDomain(counterpart)
	return r.db.WithContext(ctx).Save(model).Error
}

// SetDefault clears the default flag on every counterpart of the store
// with the same role and sets it on the target, all in one transaction
func (r *GormCounterpartRepository) SetDefault(ctx context.Context, storeID, counterpartID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target models.CounterpartModel
		if err := tx.Select("role").
			Where("store_id = ? AND id = ?", storeID, counterpartID).
			First(&target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if err := tx.Model(&models.CounterpartModel{}).
			Where("store_id = ? AND role = ?", storeID, target.Role).
			Update("is_default", false).Error; err != nil {
			return err
		}

		return tx.Model(&models.CounterpartModel{}).
			Where("store_id = ? AND id = ?", storeID, counterpartID).
			Update("is_default", true).Error
	})
}

// applyFilter applies filter conditions to query
func (r *GormCounterpartRepository) applyFilter(query *gorm.DB, filter ledger.CounterpartFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, CounterpartSortFields, "name")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	if filter.OrderDir == "" {
		sortOrder = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	// Apply pagination
	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		offset := (filter.Page - 1) * filter.PageSize
		if offset > 0 {
			query = query.Offset(offset)
		}
	}

	return query
}

// applyFilterWithoutPagination applies filter conditions without pagination
func (r *GormCounterpartRepository) applyFilterWithoutPagination(query *gorm.DB, filter ledger.CounterpartFilter) *gorm.DB {
	// Search in name
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ?", searchPattern)
	}

	// Role filter
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}

	// Deactivated counterparts stay hidden unless asked for
	if !filter.IncludeInactive {
		query = query.Where("active = ?", true)
	}

	return query
}
