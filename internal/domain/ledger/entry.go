package ledger

import (
	"time"

	"github.com/caixa/backend/internal/domain/shared"
	"github.com/caixa/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryKind represents the direction of a cash movement
type EntryKind string

const (
	EntryKindIncome  EntryKind = "receita" // money coming in
	EntryKindExpense EntryKind = "despesa" // money going out
)

// IsValid checks if the kind is a valid EntryKind
func (k EntryKind) IsValid() bool {
	switch k {
	case EntryKindIncome, EntryKindExpense:
		return true
	}
	return false
}

// String returns the string representation of EntryKind
func (k EntryKind) String() string {
	return string(k)
}

// Entry represents a single cash movement aggregate root.
// FeeRate is a snapshot of the payment method's rate at recording time;
// later edits to the method never reach stored entries.
type Entry struct {
	shared.StoreAggregateRoot
	Kind            EntryKind       `json:"kind"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	FeeRate         decimal.Decimal `json:"fee_rate"`
	EventDate       time.Time       `json:"event_date"` // business date of the movement
	RecordedAt      time.Time       `json:"recorded_at"`
	LabelID         *uuid.UUID      `json:"label_id"`
	PaymentMethodID uuid.UUID       `json:"payment_method_id"`
	SourceID        *uuid.UUID      `json:"source_id"`      // income counterpart
	DestinationID   *uuid.UUID      `json:"destination_id"` // expense counterpart
	Active          bool            `json:"active"`
}

// NewEntry creates a new ledger entry
func NewEntry(
	storeID uuid.UUID,
	kind EntryKind,
	description string,
	amount valueobject.Money,
	feeRate decimal.Decimal,
	eventDate time.Time,
	paymentMethodID uuid.UUID,
) (*Entry, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Entry kind must be receita or despesa")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if len(description) > 500 {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if feeRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_FEE_RATE", "Fee rate cannot be negative")
	}
	if paymentMethodID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is required")
	}

	entry := &Entry{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		Kind:               kind,
		Description:        description,
		Amount:             amount.Amount(),
		FeeRate:            feeRate,
		EventDate:          eventDate,
		RecordedAt:         time.Now(),
		PaymentMethodID:    paymentMethodID,
		Active:             true,
	}

	entry.AddDomainEvent(NewEntryRecordedEvent(entry))

	return entry, nil
}

// SetCounterpart assigns the counterpart according to the entry kind.
// Income entries carry a source, expense entries a destination.
func (e *Entry) SetCounterpart(counterpartID uuid.UUID) error {
	if counterpartID == uuid.Nil {
		return shared.NewDomainError("INVALID_COUNTERPART", "Counterpart ID cannot be empty")
	}
	switch e.Kind {
	case EntryKindIncome:
		e.SourceID = &counterpartID
		e.DestinationID = nil
	case EntryKindExpense:
		e.DestinationID = &counterpartID
		e.SourceID = nil
	default:
		return shared.NewDomainError("INVALID_KIND", "Entry kind must be receita or despesa")
	}
	return nil
}

// SetLabel assigns an optional label
func (e *Entry) SetLabel(labelID uuid.UUID) {
	e.LabelID = &labelID
}

// ClearLabel removes the label
func (e *Entry) ClearLabel() {
	e.LabelID = nil
}

// Update changes the mutable fields of an active entry.
// feeRate must be the rate of paymentMethodID so the snapshot follows
// the method actually charged.
func (e *Entry) Update(
	description string,
	amount valueobject.Money,
	eventDate time.Time,
	paymentMethodID uuid.UUID,
	feeRate decimal.Decimal,
) error {
	if !e.Active {
		return shared.NewDomainError("INVALID_STATE", "Cannot update an inactive entry")
	}
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if len(description) > 500 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if paymentMethodID == uuid.Nil {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is required")
	}
	if feeRate.IsNegative() {
		return shared.NewDomainError("INVALID_FEE_RATE", "Fee rate cannot be negative")
	}

	e.Description = description
	e.Amount = amount.Amount()
	e.EventDate = eventDate
	e.PaymentMethodID = paymentMethodID
	e.FeeRate = feeRate
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewEntryUpdatedEvent(e))

	return nil
}

// Deactivate soft deletes the entry
func (e *Entry) Deactivate() error {
	if !e.Active {
		return shared.NewDomainError("INVALID_STATE", "Entry is already inactive")
	}
	e.Active = false
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewEntryDeactivatedEvent(e))

	return nil
}

// GetAmountMoney returns the gross amount as Money
func (e *Entry) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(e.Amount)
}

// FeeAmount returns the fee charged on this entry (gross x rate / 100)
func (e *Entry) FeeAmount() valueobject.Money {
	return e.GetAmountMoney().CalculatePercentage(e.FeeRate)
}

// NetAmount returns the amount after fees. Income entries lose the fee,
// expense entries cost the fee on top.
func (e *Entry) NetAmount() valueobject.Money {
	gross := e.GetAmountMoney()
	fee := e.FeeAmount()
	if e.Kind == EntryKindIncome {
		return gross.MustSubtract(fee)
	}
	return gross.MustAdd(fee)
}

// SignedNet returns the net amount signed by direction
func (e *Entry) SignedNet() valueobject.Money {
	net := e.NetAmount()
	if e.Kind == EntryKindExpense {
		return net.Negate()
	}
	return net
}

// SignedGross returns the gross amount signed by direction
func (e *Entry) SignedGross() valueobject.Money {
	gross := e.GetAmountMoney()
	if e.Kind == EntryKindExpense {
		return gross.Negate()
	}
	return gross
}

// IsIncome returns true for receita entries
func (e *Entry) IsIncome() bool {
	return e.Kind == EntryKindIncome
}

// IsExpense returns true for despesa entries
func (e *Entry) IsExpense() bool {
	return e.Kind == EntryKindExpense
}

// ValidateCounterpart checks the kind/counterpart pairing invariant
func (e *Entry) ValidateCounterpart() error {
	switch e.Kind {
	case EntryKindIncome:
		if e.SourceID == nil || e.DestinationID != nil {
			return shared.NewDomainError("INVALID_COUNTERPART", "Income entries require a source and no destination")
		}
	case EntryKindExpense:
		if e.DestinationID == nil || e.SourceID != nil {
			return shared.NewDomainError("INVALID_COUNTERPART", "Expense entries require a destination and no source")
		}
	}
	return nil
}
