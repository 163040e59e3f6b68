package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/caixa/backend/internal/domain/ledger"
	"github.com/caixa/backend/internal/domain/shared"
	"github.com/caixa/backend/internal/domain/shared/valueobject"
	"github.com/caixa/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormEntryRepository implements EntryRepository using GORM
type GormEntryRepository struct {
	db *gorm.DB
}

// NewGormEntryRepository creates a new GormEntryRepository
func NewGormEntryRepository(db *gorm.DB) *GormEntryRepository {
	return &GormEntryRepository{db: db}
}

// FindByID finds an entry by its ID
func (r *GormEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	var model models.EntryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForStore finds an entry by ID for a specific store
func (r *GormEntryRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*ledger.Entry, error) {
	var model models.EntryModel
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

// FindAllForStore finds all entries for a store with filtering
func (r *GormEntryRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter ledger.EntryFilter) ([]ledger.Entry, error) {
	var entryModels []models.EntryModel
	query := r.db.WithContext(ctx).Model(&models.EntryModel{}).
		Where("store_id = ?", storeID)
	query = r.applyFilter(query, filter)

	if err := query.Find(&entryModels).Error; err != nil {
		return nil, err
	}
	entries := make([]ledger.Entry, len(entryModels))
	for i, model := range entryModels {
		entries[i] = *model.ToDomain()
	}
	return entries, nil
}

// FindForStatement finds active entries in the window ordered by event
// date then recording time, without pagination
func (r *GormEntryRepository) FindForStatement(ctx context.Context, storeID uuid.UUID, from, to time.Time) ([]ledger.Entry, error) {
	var entryModels []models.EntryModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND active = ? AND event_date >= ? AND event_date <= ?", storeID, true, from, to).
		Order("event_date ASC, recorded_at ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}
	entries := make([]ledger.Entry, len(entryModels))
	for i, model := range entryModels {
		entries[i] = *model.ToDomain()
	}
	return entries, nil
}

// installmentSourceRow is the scan target for FindInstallmentSources
type installmentSourceRow struct {
	Kind         string
	Amount       decimal.Decimal
	FeeRate      decimal.Decimal
	Installments int
	EventDate    time.Time
}

// FindInstallmentSources finds active a_prazo entries of both kinds
// joined with their payment method's installment count
func (r *GormEntryRepository) FindInstallmentSources(ctx context.Context, storeID uuid.UUID) ([]ledger.InstallmentSource, error) {
	var rows []installmentSourceRow
	if err := r.db.WithContext(ctx).Table("entries e").
		Select("e.kind, e.amount, e.fee_rate, pm.installments, e.event_date").
		Joins("JOIN payment_methods pm ON pm.id = e.payment_method_id").
		Where("e.store_id = ? AND e.active = ?", storeID, true).
		Where("pm.modality = ?", ledger.ModalityInstallment).
		Order("e.event_date ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	sources := make([]ledger.InstallmentSource, len(rows))
	for i, row := range rows {
		sources[i] = ledger.InstallmentSource{
			Kind:         ledger.EntryKind(row.Kind),
			Amount:       valueobject.NewMoneyBRL(row.Amount),
			FeeRate:      row.FeeRate,
			Installments: row.Installments,
			EventDate:    row.EventDate,
		}
	}
	return sources, nil
}

// CountForStore counts entries for a store with filtering
func (r *GormEntryRepository) CountForStore(ctx context.Context, storeID uuid.UUID, filter ledger.EntryFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.EntryModel{}).
		Where("store_id = ?", storeID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GetActiveEntryCount returns the number of active entries for a store.
// Used by the telemetry metrics collector.
func (r *GormEntryRepository) GetActiveEntryCount(ctx context.Context, storeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.EntryModel{}).
		Where("store_id = ? AND active = ?", storeID, true).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an entry
func (r *GormEntryRepository) Save(ctx context.Context, entry *ledger.Entry) error {
	model := models.EntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves the entry with optimistic locking
func (r *GormEntryRepository) SaveWithLock(ctx context.Context, entry *ledger.Entry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Get current version
		var current models.EntryModel
		if err := tx.Select("version").Where("id = ?", entry.GetID()).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// New record, just save
				model := models.EntryModelFromDomain(entry)
				return tx.Create(model).Error
			}
			return err
		}

		// Check version matches (domain model already incremented version)
		expectedVersion := entry.GetVersion() - 1
		if current.Version != expectedVersion {
			return shared.NewDomainError("VERSION_CONFLICT", "Entry has been modified by another user")
		}

		// Update with version check
		model := models.EntryModelFromDomain(entry)
		result := tx.Model(model).
			Where("id = ? AND version = ?", entry.GetID(), expectedVersion).
			Save(model)

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("VERSION_CONFLICT", "Entry has been modified by another user")
		}
		return nil
	})
}

// applyFilter applies filter conditions to query
func (r *GormEntryRepository) applyFilter(query *gorm.DB, filter ledger.EntryFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, EntrySortFields, "event_date")
	sortOrder := ValidateSortOrder(filter.OrderDir)
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
func (r *GormEntryRepository) applyFilterWithoutPagination(query *gorm.DB, filter ledger.EntryFilter) *gorm.DB {
	// Search in description
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("description ILIKE ?", searchPattern)
	}

	// Direction filter
	if filter.Kind != nil {
		query = query.Where("kind = ?", *filter.Kind)
	}

	// Label filter
	if filter.LabelID != nil {
		query = query.Where("label_id = ?", *filter.LabelID)
	}

	// Payment method filter
	if filter.PaymentMethodID != nil {
		query = query.Where("payment_method_id = ?", *filter.PaymentMethodID)
	}

	// Counterpart filters
	if filter.SourceID != nil {
		query = query.Where("source_id = ?", *filter.SourceID)
	}
	if filter.DestinationID != nil {
		query = query.Where("destination_id = ?", *filter.DestinationID)
	}
	if filter.CounterpartID != nil {
		query = query.Where("(source_id = ? OR destination_id = ?)", *filter.CounterpartID, *filter.CounterpartID)
	}

	// Event date range filter
	if filter.FromDate != nil {
		query = query.Where("event_date >= ?", filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("event_date <= ?", filter.ToDate)
	}

	// Voided entries stay hidden unless asked for
	if !filter.IncludeInactive {
		query = query.Where("active = ?", true)
	}

	return query
}
