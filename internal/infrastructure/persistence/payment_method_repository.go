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

// GormPaymentMethodRepository implements PaymentMethodRepository using GORM
type GormPaymentMethodRepository struct {
	db *gorm.DB
}

// NewGormPaymentMethodRepository creates a new GormPaymentMethodRepository
func NewGormPaymentMethodRepository(db *gorm.DB) *GormPaymentMethodRepository {
	return &GormPaymentMethodRepository{db: db}
}

// FindByID finds a payment method by its ID
func (r *GormPaymentMethodRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.PaymentMethod, error) {
	var model models.PaymentMethodModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForStore finds a payment method by ID for a specific store
func (r *GormPaymentMethodRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*ledger.PaymentMethod, error) {
	var model models.PaymentMethodModel
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

// FindAllForStore finds all payment methods for a store with filtering
func (r *GormPaymentMethodRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter ledger.PaymentMethodFilter) ([]ledger.PaymentMethod, error) {
	var methodModels []models.PaymentMethodModel
	query := r.db.WithContext(ctx).Model(&models.PaymentMethodModel{}).
		Where("store_id = ?", storeID)
	query = r.applyFilter(query, filter)

	if err := query.Find(&methodModels).Error; err != nil {
		return nil, err
	}
	methods := make([]ledger.PaymentMethod, len(methodModels))
	for i, model := range methodModels {
		methods[i] = *model.ToDomain()
	}
	return methods, nil
}

// FindDefaultForKind finds the store's default active method for an entry kind
func (r *GormPaymentMethodRepository) FindDefaultForKind(ctx context.Context, storeID uuid.UUID, kind ledger.EntryKind) (*ledger.PaymentMethod, error) {
	column := "default_for_income"
	if kind == ledger.EntryKindExpense {
		column = "default_for_expense"
	}

	var model models.PaymentMethodModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND active = ?", storeID, true).
		Where(column+" = ?", true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// CountForStore counts payment methods for a store with filtering
func (r *GormPaymentMethodRepository) CountForStore(ctx context.Context, storeID uuid.UUID, filter ledger.PaymentMethodFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.PaymentMethodModel{}).
		Where("store_id = ?", storeID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks if a method name exists for a store
func (r *GormPaymentMethodRepository) ExistsByName(ctx context.Context, storeID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PaymentMethodModel{}).
		Where("store_id = ? AND name = ?", storeID, name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a payment method
func (r *GormPaymentMethodRepository) Save(ctx context.Context, method *ledger.PaymentMethod) error {
	model := models.PaymentMethodModelFromDomain(method)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves the payment method with optimistic locking
func (r *GormPaymentMethodRepository) SaveWithLock(ctx context.Context, method *ledger.PaymentMethod) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Get current version
		var current models.PaymentMethodModel
		if err := tx.Select("version").Where("id = ?", method.GetID()).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// New record, just save
				model := models.PaymentMethodModelFromDomain(method)
				return tx.Create(model).Error
			}
			return err
		}

		// Check version matches (domain model already incremented version)
		expectedVersion := method.GetVersion() - 1
		if current.Version != expectedVersion {
			return shared.NewDomainError("VERSION_CONFLICT", "Payment method has been modified by another user")
		}

		// Update with version check
		model := models.PaymentMethodModelFromDomain(method)
		result := tx.Model(model).
			Where("id = ? AND version = ?", method.GetID(), expectedVersion).
			Save(model)

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("VERSION_CONFLICT", "Payment method has been modified by another user")
		}
		return nil
	})
}

// SetDefault clears the default flag for the kind on every method of the
// store and sets it on the target, all in one transaction
func (r *GormPaymentMethodRepository) SetDefault(ctx context.Context, storeID, methodID uuid.UUID, kind ledger.EntryKind) error {
	column := "default_for_income"
	if kind == ledger.EntryKindExpense {
		column = "default_for_expense"
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PaymentMethodModel{}).
			Where("store_id = ?", storeID).
			Update(column, false).Error; err != nil {
			return err
		}

		result := tx.Model(&models.PaymentMethodModel{}).
			Where("store_id = ? AND id = ?", storeID, methodID).
			Update(column, true)
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
func (r *GormPaymentMethodRepository) applyFilter(query *gorm.DB, filter ledger.PaymentMethodFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, PaymentMethodSortFields, "name")
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
func (r *GormPaymentMethodRepository) applyFilterWithoutPagination(query *gorm.DB, filter ledger.PaymentMethodFilter) *gorm.DB {
	// Search in name
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ?", searchPattern)
	}

	// Modality filter
	if filter.Modality != nil {
		query = query.Where("modality = ?", *filter.Modality)
	}

	// Deactivated methods stay hidden unless asked for
	if !filter.IncludeInactive {
		query = query.Where("active = ?", true)
	}

	return query
}
