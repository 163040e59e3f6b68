package identity

import (
	"strings"
	"time"

	"github.com/caixa/backend/internal/domain/shared"
)

// StoreStatus represents the status of a store
type StoreStatus string

const (
	StoreStatusActive      StoreStatus = "active"
	StoreStatusDeactivated StoreStatus = "deactivated"
)

// Store represents a loja whose cash flow is tracked.
// Every ledger record is scoped to exactly one store.
type Store struct {
	shared.BaseAggregateRoot
	Name   string
	Status StoreStatus
}

// NewStore creates a new active store
func NewStore(name string) (*Store, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Store name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Store name cannot exceed 200 characters")
	}

	return &Store{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Status:            StoreStatusActive,
	}, nil
}

// Rename changes the store name
func (s *Store) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Store name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Store name cannot exceed 200 characters")
	}

	s.Name = name
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Deactivate deactivates the store
func (s *Store) Deactivate() error {
	if s.Status == StoreStatusDeactivated {
		return shared.NewDomainError("ALREADY_DEACTIVATED", "Store is already deactivated")
	}

	s.Status = StoreStatusDeactivated
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Activate reactivates the store
func (s *Store) Activate() error {
	if s.Status == StoreStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Store is already active")
	}

	s.Status = StoreStatusActive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// IsActive returns true if the store is active
func (s *Store) IsActive() bool {
	return s.Status == StoreStatusActive
}
