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

// GormLabelRepository implements LabelRepository using GORM
type GormLabelRepository struct {
	db *gorm.DB
}

// NewGormLabelRepository creates a new GormLabelRepository
func NewGormLabelRepository(db *gorm.DB) *GormLabelRepository {
	return &GormLabelRepository{db: db}
}

// FindByID finds a label by its ID
func (r *GormLabelRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Label, error) {
	var model models.LabelModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForStore finds a label by ID for a specific store
func (r *GormLabelRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*ledger.Label, error) {
	var model models.LabelModel
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

// FindAllForStore finds all labels for a store with filtering
func (r *GormLabelRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter ledger.LabelFilter) ([]ledger.Label, error) {
	var labelModels []models.LabelModel
	query := r.db.WithContext(ctx).Model(&models.LabelModel{}).
		Where("store_id = ?", storeID)
	query = r.applyFilter(query, filter)

	if err := query.Find(&labelModels).Error; err != nil {
		return nil, err
	}
	labels := make([]ledger.Label, len(labelModels))
	for i, model := range labelModels {
		labels[i] = *model.ToDomain()
	}
	return labels, nil
}

// CountForStore counts labels for a store with filtering
func (r *GormLabelRepository) CountForStore(ctx context.Context, storeID uuid.UUID, filter ledger.LabelFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.LabelModel{}).
		Where("store_id = ?", storeID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks if a label name exists for a store
func (r *GormLabelRepository) ExistsByName(ctx context.Context, storeID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.LabelModel{}).
		Where("store_id = ? AND name = ?", storeID, name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a label
func (r *GormLabelRepository) Save(ctx context.Context, label *ledger.Label) error {
	model := models.LabelModelFromDomain(label)
	return r.db.WithContext(ctx).Save(model).Error
}

// SetDefault clears the default flag on every label of the store and
// sets it on the target, all in one transaction
func (r *GormLabelRepository) SetDefault(ctx context.Context, storeID, labelID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.LabelModel{}).
			Where("store_id = ?", storeID).
			Update("is_default", false).Error; err != nil {
			return err
		}

		result := tx.Model(&models.LabelModel{}).
			Where("store_id = ? AND id = ?", storeID, labelID).
			Update("is_default", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// applyFilter applies filter conditions to query
func (r *GormLabelRepository) applyFilter(query *gorm.DB, filter ledger.LabelFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, LabelSortFields, "name")
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
func (r *GormLabelRepository) applyFilterWithoutPagination(query *gorm.DB, filter ledger.LabelFilter) *gorm.DB {
	// Search in name
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ?", searchPattern)
	}

	// Deactivated labels stay hidden unless asked for
	if !filter.IncludeInactive {
		query = query.Where("active = ?", true)
	}

	return query
}
