package ledger

import (
	"context"
	"time"

	"github.com/caixa/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EntryFilter defines filtering options for entry queries
type EntryFilter struct {
	shared.Filter
	Kind            *EntryKind // Filter by direction
	LabelID         *uuid.UUID // Filter by label
	PaymentMethodID *uuid.UUID // Filter by payment method
	SourceID        *uuid.UUID // Filter by income counterpart
	DestinationID   *uuid.UUID // Filter by expense counterpart
	CounterpartID   *uuid.UUID // Matches either side
	FromDate        *time.Time // Filter by event date range start
	ToDate          *time.Time // Filter by event date range end
	IncludeInactive bool       // Include soft-deleted entries
}

// EntryRepository defines the interface for entry persistence
type EntryRepository interface {
	// FindByID finds an entry by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Entry, error)

	// FindByIDForStore finds an entry by ID for a specific store
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*Entry, error)

	// FindAllForStore finds all entries for a store with filtering
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter EntryFilter) ([]Entry, error)

	// FindForStatement finds active entries in a date window ordered by
	// event date then recording time, without pagination
	FindForStatement(ctx context.Context, storeID uuid.UUID, from, to time.Time) ([]Entry, error)

	// FindInstallmentSources finds active a_prazo entries of both
	// kinds joined with their payment method's installment count
	FindInstallmentSources(ctx context.Context, storeID uuid.UUID) ([]InstallmentSource, error)

	// CountForStore counts entries for a store with optional filters
	CountForStore(ctx context.Context, storeID uuid.UUID, filter EntryFilter) (int64, error)

	// Save creates or updates an entry
	Save(ctx context.Context, entry *Entry) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, entry *Entry) error
}

// PaymentMethodFilter defines filtering options for payment method queries
type PaymentMethodFilter struct {
	shared.Filter
	Modality        *Modality
	IncludeInactive bool
}

// PaymentMethodRepository defines the interface for payment method persistence
type PaymentMethodRepository interface {
	// FindByID finds a payment method by ID
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentMethod, error)

	// FindByIDForStore finds a payment method by ID for a specific store
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*PaymentMethod, error)

	// FindAllForStore finds all payment methods for a store with filtering
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter PaymentMethodFilter) ([]PaymentMethod, error)

	// FindDefaultForKind finds the store's default method for an entry kind
	FindDefaultForKind(ctx context.Context, storeID uuid.UUID, kind EntryKind) (*PaymentMethod, error)

	// CountForStore counts payment methods for a store
	CountForStore(ctx context.Context, storeID uuid.UUID, filter PaymentMethodFilter) (int64, error)

	// ExistsByName checks if a method name exists for a store
	ExistsByName(ctx context.Context, storeID uuid.UUID, name string) (bool, error)

	// Save creates or updates a payment method
	Save(ctx context.Context, method *PaymentMethod) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, method *PaymentMethod) error

	// SetDefault clears the default flag for the kind on every method of
	// the store and sets it on the target, all in one transaction
	SetDefault(ctx context.Context, storeID, methodID uuid.UUID, kind EntryKind) error
}

// LabelFilter defines filtering options for label queries
type LabelFilter struct {
	shared.Filter
	IncludeInactive bool
}

// LabelRepository defines the interface for label persistence
type LabelRepository interface {
	// FindByID finds a label by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Label, error)

	// FindByIDForStore finds a label by ID for a specific store
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*Label, error)

	// FindAllForStore finds all labels for a store with filtering
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter LabelFilter) ([]Label, error)

	// CountForStore counts labels for a store
	CountForStore(ctx context.Context, storeID uuid.UUID, filter LabelFilter) (int64, error)

	// ExistsByName checks if a label name exists for a store
	ExistsByName(ctx context.Context, storeID uuid.UUID, name string) (bool, error)

	// Save creates or updates a label
	Save(ctx context.Context, label *Label) error

	// SetDefault clears the default flag on every label of the store and
	// sets it on the target, all in one transaction
	SetDefault(ctx context.Context, storeID, labelID uuid.UUID) error
}

// CounterpartFilter defines filtering options for counterpart queries
type CounterpartFilter struct {
	shared.Filter
	Role            *CounterpartRole
	IncludeInactive bool
}

// CounterpartRepository defines the interface for counterpart persistence
type CounterpartRepository interface {
	// FindByID finds a counterpart by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Counterpart, error)

	// FindByIDForStore finds a counterpart by ID for a specific store
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*Counterpart, error)

	// FindAllForStore finds all counterparts for a store with filtering
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter CounterpartFilter) ([]Counterpart, error)

	// CountForStore counts counterparts for a store
	CountForStore(ctx context.Context, storeID uuid.UUID, filter CounterpartFilter) (int64, error)

	// ExistsByName checks if a counterpart name exists for a store and role
	ExistsByName(ctx context.Context, storeID uuid.UUID, role CounterpartRole, name string) (bool, error)

	// Save creates or updates a counterpart
	Save(ctx context.Context, counterpart *Counterpart) error

	// SetDefault clears the default flag on every counterpart of the
	// store with the same role and sets it on the target, all in one
	// transaction
	SetDefault(ctx context.Context, storeID, counterpartID uuid.UUID) error
}
