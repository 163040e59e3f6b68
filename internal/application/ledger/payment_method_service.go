package ledger

import (
	"context"
	"time"

	"github.com/caixa/backend/internal/domain/ledger"
	"github.com/caixa/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethodService provides application-level payment method operations
type PaymentMethodService struct {
	methodRepo ledger.PaymentMethodRepository
}

// NewPaymentMethodService creates a new PaymentMethodService
func NewPaymentMethodService(methodRepo ledger.PaymentMethodRepository) *PaymentMethodService {
	return &PaymentMethodService{methodRepo: methodRepo}
}

// ===================== Payment Method Operations =====================

// PaymentMethodResponse represents a payment method in API responses
type PaymentMethodResponse struct {
	ID                uuid.UUID       `json:"id"`
	StoreID           uuid.UUID       `json:"store_id"`
	Name              string          `json:"name"`
	Modality          string          `json:"modality"`
	Installments      int             `json:"installments"`
	FeeRate           decimal.Decimal `json:"fee_rate"`
	DefaultForIncome  bool            `json:"default_for_income"`
	DefaultForExpense bool            `json:"default_for_expense"`
	Active            bool            `json:"active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	Version           int             `json:"version"`
}

// CreatePaymentMethodRequest represents a request to create a payment method
type CreatePaymentMethodRequest struct {
	Name         string          `json:"name" binding:"required"`
	Modality     string          `json:"modality" binding:"required"`
	Installments int             `json:"installments" binding:"required"`
	FeeRate      decimal.Decimal `json:"fee_rate"`
	CreatedBy    *uuid.UUID      `json:"-"` // Set from JWT context, not from request body
}

// UpdatePaymentMethodRequest represents a request to update a payment method
type UpdatePaymentMethodRequest struct {
	Name         string          `json:"name" binding:"required"`
	Modality     string          `json:"modality" binding:"required"`
	Installments int             `json:"installments" binding:"required"`
	FeeRate      decimal.Decimal `json:"fee_rate"`
}

// SetDefaultPaymentMethodRequest marks a method as the store default for a kind
type SetDefaultPaymentMethodRequest struct {
	Kind string `json:"kind" binding:"required"`
}

// PaymentMethodListFilter defines filtering options for payment method list queries
type PaymentMethodListFilter struct {
	Search          string `form:"search"`
	Modality        string `form:"modality"`
	IncludeInactive bool   `form:"include_inactive"`
	Page            int    `form:"page"`
	PageSize        int    `form:"page_size"`
}

// CreatePaymentMethod creates a new payment method
func (s *PaymentMethodService) CreatePaymentMethod(ctx context.Context, storeID uuid.UUID, req CreatePaymentMethodRequest) (*PaymentMethodResponse, error) {
	exists, err := s.methodRepo.ExistsByName(ctx, storeID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A payment method with this name already exists")
	}

	modality := ledger.Modality(req.Modality)

	method, err := ledger.NewPaymentMethod(storeID, req.Name, modality, req.Installments, req.FeeRate)
	if err != nil {
		return nil, err
	}

	// Set created_by if provided (from JWT context via handler)
	if req.CreatedBy != nil {
		method.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.methodRepo.Save(ctx, method); err != nil {
		return nil, err
	}

	return toPaymentMethodResponse(method), nil
}

// GetPaymentMethodByID gets a payment method by ID
func (s *PaymentMethodService) GetPaymentMethodByID(ctx context.Context, storeID, id uuid.UUID) (*PaymentMethodResponse, error) {
	method, err := s.methodRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Payment method not found")
	}
	return toPaymentMethodResponse(method), nil
}

// UpdatePaymentMethod updates a payment method. Entries recorded before
// the change keep their snapshotted fee rate.
func (s *PaymentMethodService) UpdatePaymentMethod(ctx context.Context, storeID, id uuid.UUID, req UpdatePaymentMethodRequest) (*PaymentMethodResponse, error) {
	method, err := s.methodRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Payment method not found")
	}

	if req.Name != method.Name {
		exists, err := s.methodRepo.ExistsByName(ctx, storeID, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A payment method with this name already exists")
		}
	}

	modality := ledger.Modality(req.Modality)

	if err := method.Update(req.Name, modality, req.Installments, req.FeeRate); err != nil {
		return nil, err
	}

	if err := s.methodRepo.SaveWithLock(ctx, method); err != nil {
		return nil, err
	}

	return toPaymentMethodResponse(method), nil
}

// ListPaymentMethods lists payment methods with filtering
func (s *PaymentMethodService) ListPaymentMethods(ctx context.Context, storeID uuid.UUID, filter PaymentMethodListFilter) ([]PaymentMethodResponse, int64, error) {
	domainFilter := ledger.PaymentMethodFilter{
		IncludeInactive: filter.IncludeInactive,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search

	if filter.Modality != "" {
		modality := ledger.Modality(filter.Modality)
		if !modality.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_MODALITY", "Modality must be a_vista or a_prazo")
		}
		domainFilter.Modality = &modality
	}

	methods, err := s.methodRepo.FindAllForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.methodRepo.CountForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PaymentMethodResponse, len(methods))
	for i, m := range methods {
		responses[i] = *toPaymentMethodResponse(&m)
	}

	return responses, total, nil
}

// SetDefaultPaymentMethod marks a method as the store default for a
// kind. The previous default for that kind is cleared in the same
// transaction so at most one default per kind exists.
func (s *PaymentMethodService) SetDefaultPaymentMethod(ctx context.Context, storeID, id uuid.UUID, req SetDefaultPaymentMethodRequest) (*PaymentMethodResponse, error) {
	kind := ledger.EntryKind(req.Kind)
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Entry kind must be receita or despesa")
	}

	method, err := s.methodRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Payment method not found")
	}
	if !method.Active {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot mark an inactive method as default")
	}

	if err := s.methodRepo.SetDefault(ctx, storeID, id, kind); err != nil {
		return nil, err
	}

	return s.GetPaymentMethodByID(ctx, storeID, id)
}

// DeactivatePaymentMethod soft deletes a payment method. Existing
// entries keep referencing it for display and their fee snapshots.
func (s *PaymentMethodService) DeactivatePaymentMethod(ctx context.Context, storeID, id uuid.UUID) error {
	method, err := s.methodRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return err
	}
	if method == nil {
		return shared.NewDomainError("NOT_FOUND", "Payment method not found")
	}

	if err := method.Deactivate(); err != nil {
		return err
	}

	return s.methodRepo.SaveWithLock(ctx, method)
}

// ===================== Helper Functions =====================

func toPaymentMethodResponse(m *ledger.PaymentMethod) *PaymentMethodResponse {
	return &PaymentMethodResponse{
		ID:                m.ID,
		StoreID:           m.StoreID,
		Name:              m.Name,
		Modality:          string(m.Modality),
		Installments:      m.Installments,
		FeeRate:           m.FeeRate,
		DefaultForIncome:  m.DefaultForIncome,
		DefaultForExpense: m.DefaultForExpense,
		Active:            m.Active,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
		Version:           m.Version,
	}
}
