package ledger

import (
	"context"
	"time"

	"github.com/caixa/backend/internal/domain/ledger"
	"github.com/caixa/backend/internal/domain/shared"
	"github.com/caixa/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryService provides application-level ledger entry operations
type EntryService struct {
	entryRepo       ledger.EntryRepository
	methodRepo      ledger.PaymentMethodRepository
	labelRepo       ledger.LabelRepository
	counterpartRepo ledger.CounterpartRepository
}

// NewEntryService creates a new EntryService
func NewEntryService(
	entryRepo ledger.EntryRepository,
	methodRepo ledger.PaymentMethodRepository,
	labelRepo ledger.LabelRepository,
	counterpartRepo ledger.CounterpartRepository,
) *EntryService {
	return &EntryService{
		entryRepo:       entryRepo,
		methodRepo:      methodRepo,
		labelRepo:       labelRepo,
		counterpartRepo: counterpartRepo,
	}
}

// ===================== Entry Operations =====================

// EntryResponse represents a ledger entry in API responses
type EntryResponse struct {
	ID              uuid.UUID       `json:"id"`
	StoreID         uuid.UUID       `json:"store_id"`
	Kind            string          `json:"kind"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	FeeRate         decimal.Decimal `json:"fee_rate"`
	FeeAmount       decimal.Decimal `json:"fee_amount"`
	NetAmount       decimal.Decimal `json:"net_amount"`
	EventDate       time.Time       `json:"event_date"`
	RecordedAt      time.Time       `json:"recorded_at"`
	LabelID         *uuid.UUID      `json:"label_id,omitempty"`
	PaymentMethodID uuid.UUID       `json:"payment_method_id"`
	SourceID        *uuid.UUID      `json:"source_id,omitempty"`
	DestinationID   *uuid.UUID      `json:"destination_id,omitempty"`
	Active          bool            `json:"active"`
	CreatedBy       *uuid.UUID      `json:"created_by,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Version         int             `json:"version"`
}

// CreateEntryRequest represents a request to record a cash movement
type CreateEntryRequest struct {
	Kind            string          `json:"kind" binding:"required"`
	Description     string          `json:"description" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	EventDate       time.Time       `json:"event_date" binding:"required"`
	PaymentMethodID *uuid.UUID      `json:"payment_method_id"`
	CounterpartID   uuid.UUID       `json:"counterpart_id" binding:"required"`
	LabelID         *uuid.UUID      `json:"label_id"`
	CreatedBy       *uuid.UUID      `json:"-"` // Set from JWT context, not from request body
}

// UpdateEntryRequest represents a request to update an entry
type UpdateEntryRequest struct {
	Description     string          `json:"description" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	EventDate       time.Time       `json:"event_date" binding:"required"`
	PaymentMethodID uuid.UUID       `json:"payment_method_id" binding:"required"`
	CounterpartID   uuid.UUID       `json:"counterpart_id" binding:"required"`
	LabelID         *uuid.UUID      `json:"label_id"`
}

// EntryListFilter defines filtering options for entry list queries
type EntryListFilter struct {
	Search          string     `form:"search"`
	Kind            string     `form:"kind"`
	LabelID         *uuid.UUID `form:"label_id"`
	PaymentMethodID *uuid.UUID `form:"payment_method_id"`
	CounterpartID   *uuid.UUID `form:"counterpart_id"`
	FromDate        *time.Time `form:"from_date"`
	ToDate          *time.Time `form:"to_date"`
	IncludeInactive bool       `form:"include_inactive"`
	Page            int        `form:"page"`
	PageSize        int        `form:"page_size"`
}

// CreateEntry records a new cash movement. The payment method's current
// fee rate is copied onto the entry so later method edits do not rewrite
// history. When no method is given the store's default for the kind is
// used.
func (s *EntryService) CreateEntry(ctx context.Context, storeID uuid.UUID, req CreateEntryRequest) (*EntryResponse, error) {
	kind := ledger.EntryKind(req.Kind)
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Entry kind must be receita or despesa")
	}

	method, err := s.resolvePaymentMethod(ctx, storeID, kind, req.PaymentMethodID)
	if err != nil {
		return nil, err
	}

	counterpart, err := s.counterpartRepo.FindByIDForStore(ctx, storeID, req.CounterpartID)
	if err != nil {
		return nil, err
	}
	if counterpart == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Counterpart not found")
	}
	if !counterpart.MatchesKind(kind) {
		return nil, shared.NewDomainError("INVALID_COUNTERPART", "Counterpart role does not match the entry kind")
	}

	amount := valueobject.NewMoneyBRL(req.Amount)

	entry, err := ledger.NewEntry(
		storeID,
		kind,
		req.Description,
		amount,
		method.FeeRate,
		req.EventDate,
		method.ID,
	)
	if err != nil {
		return nil, err
	}

	if err := entry.SetCounterpart(counterpart.ID); err != nil {
		return nil, err
	}

	if req.LabelID != nil {
		label, err := s.labelRepo.FindByIDForStore(ctx, storeID, *req.LabelID)
		if err != nil {
			return nil, err
		}
		if label == nil {
			return nil, shared.NewDomainError("NOT_FOUND", "Label not found")
		}
		entry.SetLabel(label.ID)
	}

	// Set created_by if provided (from JWT context via handler)
	if req.CreatedBy != nil {
		entry.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.entryRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	return toEntryResponse(entry), nil
}

// GetEntryByID gets an entry by ID
func (s *EntryService) GetEntryByID(ctx context.Context, storeID, id uuid.UUID) (*EntryResponse, error) {
	entry, err := s.entryRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Entry not found")
	}
	return toEntryResponse(entry), nil
}

// UpdateEntry updates an active entry. Changing the payment method
// re-snapshots the fee rate from the new method.
func (s *EntryService) UpdateEntry(ctx context.Context, storeID, id uuid.UUID, req UpdateEntryRequest) (*EntryResponse, error) {
	entry, err := s.entryRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Entry not found")
	}

	method, err := s.methodRepo.FindByIDForStore(ctx, storeID, req.PaymentMethodID)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Payment method not found")
	}

	counterpart, err := s.counterpartRepo.FindByIDForStore(ctx, storeID, req.CounterpartID)
	if err != nil {
		return nil, err
	}
	if counterpart == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Counterpart not found")
	}
	if !counterpart.MatchesKind(entry.Kind) {
		return nil, shared.NewDomainError("INVALID_COUNTERPART", "Counterpart role does not match the entry kind")
	}

	amount := valueobject.NewMoneyBRL(req.Amount)

	// Keeping the same method keeps the fee snapshot taken at creation,
	// even if the method's rate changed since.
	feeRate := entry.FeeRate
	if method.ID != entry.PaymentMethodID {
		feeRate = method.FeeRate
	}

	if err := entry.Update(req.Description, amount, req.EventDate, method.ID, feeRate); err != nil {
		return nil, err
	}

	if err := entry.SetCounterpart(counterpart.ID); err != nil {
		return nil, err
	}

	if req.LabelID != nil {
		label, err := s.labelRepo.FindByIDForStore(ctx, storeID, *req.LabelID)
		if err != nil {
			return nil, err
		}
		if label == nil {
			return nil, shared.NewDomainError("NOT_FOUND", "Label not found")
		}
		entry.SetLabel(label.ID)
	} else {
		entry.ClearLabel()
	}

	if err := s.entryRepo.SaveWithLock(ctx, entry); err != nil {
		return nil, err
	}

	return toEntryResponse(entry), nil
}

// ListEntries lists entries with filtering
func (s *EntryService) ListEntries(ctx context.Context, storeID uuid.UUID, filter EntryListFilter) ([]EntryResponse, int64, error) {
	domainFilter := ledger.EntryFilter{
		LabelID:         filter.LabelID,
		PaymentMethodID: filter.PaymentMethodID,
		FromDate:        filter.FromDate,
		ToDate:          filter.ToDate,
		IncludeInactive: filter.IncludeInactive,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search

	if filter.Kind != "" {
		kind := ledger.EntryKind(filter.Kind)
		if !kind.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_KIND", "Entry kind must be receita or despesa")
		}
		domainFilter.Kind = &kind
	}

	// A counterpart filter matches either side; the kind filter narrows
	// it when both are present.
	domainFilter.CounterpartID = filter.CounterpartID

	entries, err := s.entryRepo.FindAllForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.entryRepo.CountForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]EntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = *toEntryResponse(&e)
	}

	return responses, total, nil
}

// DeactivateEntry soft deletes an entry. Deactivated entries leave the
// statement and every aggregation immediately.
func (s *EntryService) DeactivateEntry(ctx context.Context, storeID, id uuid.UUID) error {
	entry, err := s.entryRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return err
	}
	if entry == nil {
		return shared.NewDomainError("NOT_FOUND", "Entry not found")
	}

	if err := entry.Deactivate(); err != nil {
		return err
	}

	return s.entryRepo.SaveWithLock(ctx, entry)
}

// resolvePaymentMethod loads the requested method or falls back to the
// store's default for the kind
func (s *EntryService) resolvePaymentMethod(ctx context.Context, storeID uuid.UUID, kind ledger.EntryKind, methodID *uuid.UUID) (*ledger.PaymentMethod, error) {
	if methodID != nil {
		method, err := s.methodRepo.FindByIDForStore(ctx, storeID, *methodID)
		if err != nil {
			return nil, err
		}
		if method == nil {
			return nil, shared.NewDomainError("NOT_FOUND", "Payment method not found")
		}
		if !method.Active {
			return nil, shared.NewDomainError("INVALID_STATE", "Payment method is inactive")
		}
		return method, nil
	}

	method, err := s.methodRepo.FindDefaultForKind(ctx, storeID, kind)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, shared.NewDomainError("NO_DEFAULT_METHOD", "No payment method given and the store has no default for this kind")
	}
	return method, nil
}

// ===================== Helper Functions =====================

func toEntryResponse(e *ledger.Entry) *EntryResponse {
	return &EntryResponse{
		ID:              e.ID,
		StoreID:         e.StoreID,
		Kind:            string(e.Kind),
		Description:     e.Description,
		Amount:          e.Amount.Round(2),
		FeeRate:         e.FeeRate,
		FeeAmount:       e.FeeAmount().Round(2).Amount(),
		NetAmount:       e.NetAmount().Round(2).Amount(),
		EventDate:       e.EventDate,
		RecordedAt:      e.RecordedAt,
		LabelID:         e.LabelID,
		PaymentMethodID: e.PaymentMethodID,
		SourceID:        e.SourceID,
		DestinationID:   e.DestinationID,
		Active:          e.Active,
		CreatedBy:       e.GetCreatedBy(),
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
		Version:         e.Version,
	}
}
