package ledger

import (
	"time"

	"github.com/caixa/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CounterpartRole distinguishes income sources (origem) from expense
// destinations (destino). Both catalogs share one aggregate shape.
type CounterpartRole string

const (
	CounterpartRoleSource      CounterpartRole = "source"
	CounterpartRoleDestination CounterpartRole = "destination"
)

// IsValid checks if the role is a valid CounterpartRole
func (r CounterpartRole) IsValid() bool {
	switch r {
	case CounterpartRoleSource, CounterpartRoleDestination:
		return true
	}
	return false
}

// String returns the string representation of CounterpartRole
func (r CounterpartRole) String() string {
	return string(r)
}

// RoleForKind returns the counterpart role an entry kind requires
func RoleForKind(kind EntryKind) CounterpartRole {
	if kind == EntryKindIncome {
		return CounterpartRoleSource
	}
	return CounterpartRoleDestination
}

// Counterpart represents who money came from or went to
type Counterpart struct {
	shared.StoreAggregateRoot
	Name      string          `json:"name"`
	Role      CounterpartRole `json:"role"`
	IsDefault bool            `json:"is_default"`
	Active    bool            `json:"active"`
}

// NewCounterpart creates a new counterpart
func NewCounterpart(storeID uuid.UUID, name string, role CounterpartRole) (*Counterpart, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be source or destination")
	}

	return &Counterpart{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		Name:               name,
		Role:               role,
		Active:             true,
	}, nil
}

// Update changes the counterpart name. The role is fixed at creation;
// a source never becomes a destination.
func (c *Counterpart) Update(name string) error {
	if !c.Active {
		return shared.NewDomainError("INVALID_STATE", "Cannot update an inactive counterpart")
	}
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// MarkDefault flags this counterpart as the store default for its role.
// The repository clears the flag on siblings in the same transaction.
func (c *Counterpart) MarkDefault() error {
	if !c.Active {
		return shared.NewDomainError("INVALID_STATE", "Cannot set an inactive counterpart as default")
	}
	c.IsDefault = true
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// ClearDefault removes the default flag
func (c *Counterpart) ClearDefault() {
	c.IsDefault = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Deactivate soft deletes the counterpart
func (c *Counterpart) Deactivate() error {
	if !c.Active {
		return shared.NewDomainError("INVALID_STATE", "Counterpart is already inactive")
	}
	c.Active = false
	c.IsDefault = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// MatchesKind returns true if this counterpart can be attached to
// entries of the given kind
func (c *Counterpart) MatchesKind(kind EntryKind) bool {
	return c.Role == RoleForKind(kind)
}
