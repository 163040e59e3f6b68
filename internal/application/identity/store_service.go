package identity

import (
	"context"
	"time"

	"github.com/caixa/backend/internal/domain/identity"
	"github.com/caixa/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StoreService handles store management operations
type StoreService struct {
	storeRepo identity.StoreRepository
	logger    *zap.Logger
}

// NewStoreService creates a new store service
func NewStoreService(storeRepo identity.StoreRepository, logger *zap.Logger) *StoreService {
	return &StoreService{
		storeRepo: storeRepo,
		logger:    logger,
	}
}

// CreateStoreInput contains input for creating a store
type CreateStoreInput struct {
	Name string
}

// UpdateStoreInput contains input for updating a store
type UpdateStoreInput struct {
	ID   uuid.UUID
	Name string
}

// StoreDTO represents store data transfer object
type StoreDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreFilter represents filter for querying stores
type StoreFilter struct {
	Page     int
	PageSize int
	SortBy   string
	SortDir  string
	Keyword  string
}

// ToSharedFilter converts StoreFilter to shared.Filter
func (f StoreFilter) ToSharedFilter() shared.Filter {
	page := f.Page
	if page < 1 {
		page = 1
	}
	pageSize := f.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return shared.Filter{
		Page:     page,
		PageSize: pageSize,
		OrderBy:  f.SortBy,
		OrderDir: f.SortDir,
		Search:   f.Keyword,
	}
}

// StoreListResult represents paginated store list result
type StoreListResult struct {
	Stores     []StoreDTO `json:"stores"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}

// Create creates a new store
func (s *StoreService) Create(ctx context.Context, input CreateStoreInput) (*StoreDTO, error) {
	s.logger.Info("Creating new store", zap.String("name", input.Name))

	exists, err := s.storeRepo.ExistsByName(ctx, input.Name)
	if err != nil {
		s.logger.Error("Failed to check store name", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check store name availability")
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A store with this name already exists")
	}

	store, err := identity.NewStore(input.Name)
	if err != nil {
		return nil, err
	}

	if err := s.storeRepo.Save(ctx, store); err != nil {
		s.logger.Error("Failed to create store", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create store")
	}

	s.logger.Info("Store created", zap.String("store_id", store.ID.String()))

	return toStoreDTO(store), nil
}

// GetByID retrieves a store by ID
func (s *StoreService) GetByID(ctx context.Context, id uuid.UUID) (*StoreDTO, error) {
	store, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to find store", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find store")
	}
	if store == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Store not found")
	}

	return toStoreDTO(store), nil
}

// List retrieves a paginated list of stores
func (s *StoreService) List(ctx context.Context, filter StoreFilter) (*StoreListResult, error) {
	sharedFilter := filter.ToSharedFilter()

	stores, err := s.storeRepo.FindAll(ctx, sharedFilter)
	if err != nil {
		s.logger.Error("Failed to list stores", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list stores")
	}

	total, err := s.storeRepo.Count(ctx, sharedFilter)
	if err != nil {
		s.logger.Error("Failed to count stores", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count stores")
	}

	totalPages := int(total) / sharedFilter.PageSize
	if int(total)%sharedFilter.PageSize > 0 {
		totalPages++
	}

	storeDTOs := make([]StoreDTO, len(stores))
	for i := range stores {
		storeDTOs[i] = *toStoreDTO(&stores[i])
	}

	return &StoreListResult{
		Stores:     storeDTOs,
		Total:      total,
		Page:       sharedFilter.Page,
		PageSize:   sharedFilter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// Update renames a store
func (s *StoreService) Update(ctx context.Context, input UpdateStoreInput) (*StoreDTO, error) {
	store, err := s.storeRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find store")
	}
	if store == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Store not found")
	}

	if input.Name != store.Name {
		exists, err := s.storeRepo.ExistsByName(ctx, input.Name)
		if err != nil {
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check store name availability")
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A store with this name already exists")
		}
	}

	if err := store.Rename(input.Name); err != nil {
		return nil, err
	}

	if err := s.storeRepo.Save(ctx, store); err != nil {
		s.logger.Error("Failed to update store", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update store")
	}

	s.logger.Info("Store updated", zap.String("store_id", input.ID.String()))

	return toStoreDTO(store), nil
}

// Deactivate deactivates a store. Users of a deactivated store can no
// longer log in.
func (s *StoreService) Deactivate(ctx context.Context, id uuid.UUID) (*StoreDTO, error) {
	store, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find store")
	}
	if store == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Store not found")
	}

	if err := store.Deactivate(); err != nil {
		return nil, err
	}

	if err := s.storeRepo.Save(ctx, store); err != nil {
		s.logger.Error("Failed to deactivate store", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to deactivate store")
	}

	s.logger.Info("Store deactivated", zap.String("store_id", id.String()))

	return toStoreDTO(store), nil
}

// Activate reactivates a store
func (s *StoreService) Activate(ctx context.Context, id uuid.UUID) (*StoreDTO, error) {
	store, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find store")
	}
	if store == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Store not found")
	}

	if err := store.Activate(); err != nil {
		return nil, err
	}

	if err := s.storeRepo.Save(ctx, store); err != nil {
		s.logger.Error("Failed to activate store", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to activate store")
	}

	s.logger.Info("Store activated", zap.String("store_id", id.String()))

	return toStoreDTO(store), nil
}

// toStoreDTO converts domain Store to StoreDTO
func toStoreDTO(store *identity.Store) *StoreDTO {
	return &StoreDTO{
		ID:        store.ID,
		Name:      store.Name,
		Status:    string(store.Status),
		CreatedAt: store.CreatedAt,
		UpdatedAt: store.UpdatedAt,
	}
}
