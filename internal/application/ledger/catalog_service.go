package ledger

import (
	"context"
	"time"

	"github.com/caixa/backend/internal/domain/ledger"
	"github.com/caixa/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CatalogService provides application-level label and counterpart operations
type CatalogService struct {
	labelRepo       ledger.LabelRepository
	counterpartRepo ledger.CounterpartRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	labelRepo ledger.LabelRepository,
	counterpartRepo ledger.CounterpartRepository,
) *CatalogService {
	return &CatalogService{
		labelRepo:       labelRepo,
		counterpartRepo: counterpartRepo,
	}
}

// ===================== Label Operations =====================

// LabelResponse represents a label in API responses
type LabelResponse struct {
	ID        uuid.UUID `json:"id"`
	StoreID   uuid.UUID `json:"store_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	IsDefault bool      `json:"is_default"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// CreateLabelRequest represents a request to create a label
type CreateLabelRequest struct {
	Name      string     `json:"name" binding:"required"`
	Color     string     `json:"color"`
	CreatedBy *uuid.UUID `json:"-"` // Set from JWT context, not from request body
}

// UpdateLabelRequest represents a request to update a label
type UpdateLabelRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

// LabelListFilter defines filtering options for label list queries
type LabelListFilter struct {
	Search          string `form:"search"`
	IncludeInactive bool   `form:"include_inactive"`
	Page            int    `form:"page"`
	PageSize        int    `form:"page_size"`
}

// CreateLabel creates a new label
func (s *CatalogService) CreateLabel(ctx context.Context, storeID uuid.UUID, req CreateLabelRequest) (*LabelResponse, error) {
	exists, err := s.labelRepo.ExistsByName(ctx, storeID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A label with this name already exists")
	}

	label, err := ledger.NewLabel(storeID, req.Name, req.Color)
	if err != nil {
		return nil, err
	}

	// Set created_by if provided (from JWT context via handler)
	if req.CreatedBy != nil {
		label.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.labelRepo.Save(ctx, label); err != nil {
		return nil, err
	}

	return toLabelResponse(label), nil
}

// GetLabelByID gets a label by ID
func (s *CatalogService) GetLabelByID(ctx context.Context, storeID, id uuid.UUID) (*LabelResponse, error) {
	label, err := s.labelRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if label == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Label not found")
	}
	return toLabelResponse(label), nil
}

// UpdateLabel updates a label
func (s *CatalogService) UpdateLabel(ctx context.Context, storeID, id uuid.UUID, req UpdateLabelRequest) (*LabelResponse, error) {
	label, err := s.labelRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if label == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Label not found")
	}

	if req.Name != label.Name {
		exists, err := s.labelRepo.ExistsByName(ctx, storeID, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A label with this name already exists")
		}
	}

	if err := label.Update(req.Name, req.Color); err != nil {
		return nil, err
	}

	if err := s.labelRepo.Save(ctx, label); err != nil {
		return nil, err
	}

	return toLabelResponse(label), nil
}

// ListLabels lists labels with filtering
func (s *CatalogService) ListLabels(ctx context.Context, storeID uuid.UUID, filter LabelListFilter) ([]LabelResponse, int64, error) {
	domainFilter := ledger.LabelFilter{
		IncludeInactive: filter.IncludeInactive,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search

	labels, err := s.labelRepo.FindAllForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.labelRepo.CountForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]LabelResponse, len(labels))
	for i, l := range labels {
		responses[i] = *toLabelResponse(&l)
	}

	return responses, total, nil
}

// SetDefaultLabel marks a label as the store default. The previous
// default is cleared in the same transaction.
func (s *CatalogService) SetDefaultLabel(ctx context.Context, storeID, id uuid.UUID) (*LabelResponse, error) {
	label, err := s.labelRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if label == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Label not found")
	}
	if !label.Active {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot mark an inactive label as default")
	}

	if err := s.labelRepo.SetDefault(ctx, storeID, id); err != nil {
		return nil, err
	}

	return s.GetLabelByID(ctx, storeID, id)
}

// DeactivateLabel soft deletes a label. Entries keep their label
// reference for display.
func (s *CatalogService) DeactivateLabel(ctx context.Context, storeID, id uuid.UUID) error {
	label, err := s.labelRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return err
	}
	if label == nil {
		return shared.NewDomainError("NOT_FOUND", "Label not found")
	}

	if err := label.Deactivate(); err != nil {
		return err
	}

	return s.labelRepo.Save(ctx, label)
}

// ===================== Counterpart Operations =====================

// CounterpartResponse represents a counterpart in API responses
type CounterpartResponse struct {
	ID        uuid.UUID `json:"id"`
	StoreID   uuid.UUID `json:"store_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	IsDefault bool      `json:"is_default"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// CreateCounterpartRequest represents a request to create a counterpart
type CreateCounterpartRequest struct {
	Name      string     `json:"name" binding:"required"`
	Role      string     `json:"role" binding:"required"`
	CreatedBy *uuid.UUID `json:"-"` // Set from JWT context, not from request body
}

// UpdateCounterpartRequest represents a request to rename a counterpart
type UpdateCounterpartRequest struct {
	Name string `json:"name" binding:"required"`
}

// CounterpartListFilter defines filtering options for counterpart list queries
type CounterpartListFilter struct {
	Search          string `form:"search"`
	Role            string `form:"role"`
	IncludeInactive bool   `form:"include_inactive"`
	Page            int    `form:"page"`
	PageSize        int    `form:"page_size"`
}

// CreateCounterpart creates a new counterpart
func (s *CatalogService) CreateCounterpart(ctx context.Context, storeID uuid.UUID, req CreateCounterpartRequest) (*CounterpartResponse, error) {
	role := ledger.CounterpartRole(req.Role)
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Counterpart role must be source or destination")
	}

	exists, err := s.counterpartRepo.ExistsByName(ctx, storeID, role, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A counterpart with this name already exists for this role")
	}

	counterpart, err := ledger.NewCounterpart(storeID, req.Name, role)
	if err != nil {
		return nil, err
	}

	// Set created_by if provided (from JWT context via handler)
	if req.CreatedBy != nil {
		counterpart.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.counterpartRepo.Save(ctx, counterpart); err != nil {
		return nil, err
	}

	return toCounterpartResponse(counterpart), nil
}

// GetCounterpartByID gets a counterpart by ID
func (s *CatalogService) GetCounterpartByID(ctx context.Context, storeID, id uuid.UUID) (*CounterpartResponse, error) {
	counterpart, err := s.counterpartRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if counterpart == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Counterpart not found")
	}
	return toCounterpartResponse(counterpart), nil
}

// UpdateCounterpart renames a counterpart. The role is fixed at creation.
func (s *CatalogService) UpdateCounterpart(ctx context.Context, storeID, id uuid.UUID, req UpdateCounterpartRequest) (*CounterpartResponse, error) {
	counterpart, err := s.counterpartRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if counterpart == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Counterpart not found")
	}

	if req.Name != counterpart.Name {
		exists, err := s.counterpartRepo.ExistsByName(ctx, storeID, counterpart.Role, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A counterpart with this name already exists for this role")
		}
	}

	if err := counterpart.Update(req.Name); err != nil {
		return nil, err
	}

	if err := s.counterpartRepo.Save(ctx, counterpart); err != nil {
		return nil, err
	}

	return toCounterpartResponse(counterpart), nil
}

// ListCounterparts lists counterparts with filtering
func (s *CatalogService) ListCounterparts(ctx context.Context, storeID uuid.UUID, filter CounterpartListFilter) ([]CounterpartResponse, int64, error) {
	domainFilter := ledger.CounterpartFilter{
		IncludeInactive: filter.IncludeInactive,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search

	if filter.Role != "" {
		role := ledger.CounterpartRole(filter.Role)
		if !role.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_ROLE", "Counterpart role must be source or destination")
		}
		domainFilter.Role = &role
	}

	counterparts, err := s.counterpartRepo.FindAllForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.counterpartRepo.CountForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CounterpartResponse, len(counterparts))
	for i, c := range counterparts {
		responses[i] = *toCounterpartResponse(&c)
	}

	return responses, total, nil
}

// SetDefaultCounterpart marks a counterpart as the store default for its
// role. The previous default with the same role is cleared in the same
// transaction.
func (s *CatalogService) SetDefaultCounterpart(ctx context.Context, storeID, id uuid.UUID) (*CounterpartResponse, error) {
	counterpart, err := s.counterpartRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if counterpart == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Counterpart not found")
	}
	if !counterpart.Active {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot mark an inactive counterpart as default")
	}

	if err := s.counterpartRepo.SetDefault(ctx, storeID, id); err != nil {
		return nil, err
	}

	return s.GetCounterpartByID(ctx, storeID, id)
}

// DeactivateCounterpart soft deletes a counterpart
func (s *CatalogService) DeactivateCounterpart(ctx context.Context, storeID, id uuid.UUID) error {
	counterpart, err := s.counterpartRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return err
	}
	if counterpart == nil {
		return shared.NewDomainError("NOT_FOUND", "Counterpart not found")
	}

	if err := counterpart.Deactivate(); err != nil {
		return err
	}

	return s.counterpartRepo.Save(ctx, counterpart)
}

// ===================== Helper Functions =====================

func toLabelResponse(l *ledger.Label) *LabelResponse {
	return &LabelResponse{
		ID:        l.ID,
		StoreID:   l.StoreID,
		Name:      l.Name,
		Color:     l.Color,
		IsDefault: l.IsDefault,
		Active:    l.Active,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
		Version:   l.Version,
	}
}

func toCounterpartResponse(c *ledger.Counterpart) *CounterpartResponse {
	return &CounterpartResponse{
		ID:        c.ID,
		StoreID:   c.StoreID,
		Name:      c.Name,
		Role:      string(c.Role),
		IsDefault: c.IsDefault,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Version:   c.Version,
	}
}
