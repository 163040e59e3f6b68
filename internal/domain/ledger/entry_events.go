package ledger

import (
	"time"

	"github.com/caixa/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryRecordedEvent is raised when a new entry is recorded
type EntryRecordedEvent struct {
	shared.BaseDomainEvent
	EntryID         uuid.UUID       `json:"entry_id"`
	Kind            EntryKind       `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`
	FeeRate         decimal.Decimal `json:"fee_rate"`
	EventDate       time.Time       `json:"event_date"`
	PaymentMethodID uuid.UUID       `json:"payment_method_id"`
}

// EventType returns the event type name
func (e *EntryRecordedEvent) EventType() string {
	return "EntryRecorded"
}

// NewEntryRecordedEvent creates a new EntryRecordedEvent
func NewEntryRecordedEvent(entry *Entry) *EntryRecordedEvent {
	return &EntryRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("EntryRecorded", "Entry", entry.ID, entry.StoreID),
		EntryID:         entry.ID,
		Kind:            entry.Kind,
		Amount:          entry.Amount,
		FeeRate:         entry.FeeRate,
		EventDate:       entry.EventDate,
		PaymentMethodID: entry.PaymentMethodID,
	}
}

// EntryUpdatedEvent is raised when an entry is edited
type EntryUpdatedEvent struct {
	shared.BaseDomainEvent
	EntryID         uuid.UUID       `json:"entry_id"`
	Kind            EntryKind       `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`
	FeeRate         decimal.Decimal `json:"fee_rate"`
	EventDate       time.Time       `json:"event_date"`
	PaymentMethodID uuid.UUID       `json:"payment_method_id"`
}

// EventType returns the event type name
func (e *EntryUpdatedEvent) EventType() string {
	return "EntryUpdated"
}

// NewEntryUpdatedEvent creates a new EntryUpdatedEvent
func NewEntryUpdatedEvent(entry *Entry) *EntryUpdatedEvent {
	return &EntryUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("EntryUpdated", "Entry", entry.ID, entry.StoreID),
		EntryID:         entry.ID,
		Kind:            entry.Kind,
		Amount:          entry.Amount,
		FeeRate:         entry.FeeRate,
		EventDate:       entry.EventDate,
		PaymentMethodID: entry.PaymentMethodID,
	}
}

// EntryDeactivatedEvent is raised when an entry is soft deleted
type EntryDeactivatedEvent struct {
	shared.BaseDomainEvent
	EntryID uuid.UUID       `json:"entry_id"`
	Kind    EntryKind       `json:"kind"`
	Amount  decimal.Decimal `json:"amount"`
}

// EventType returns the event type name
func (e *EntryDeactivatedEvent) EventType() string {
	return "EntryDeactivated"
}

// NewEntryDeactivatedEvent creates a new EntryDeactivatedEvent
func NewEntryDeactivatedEvent(entry *Entry) *EntryDeactivatedEvent {
	return &EntryDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("EntryDeactivated", "Entry", entry.ID, entry.StoreID),
		EntryID:         entry.ID,
		Kind:            entry.Kind,
		Amount:          entry.Amount,
	}
}
