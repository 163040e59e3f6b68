package ledger

import (
	"regexp"
	"time"

	"github.com/caixa/backend/internal/domain/shared"
	"github.com/google/uuid"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Label represents a tag attached to entries for reporting (etiqueta)
type Label struct {
	shared.StoreAggregateRoot
	Name      string `json:"name"`
	Color     string `json:"color"` // hex, e.g. #1a73e8
	IsDefault bool   `json:"is_default"`
	Active    bool   `json:"active"`
}

// NewLabel creates a new label
func NewLabel(storeID uuid.UUID, name, color string) (*Label, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	if color != "" && !hexColorPattern.MatchString(color) {
		return nil, shared.NewDomainError("INVALID_COLOR", "Color must be a hex value like #1a73e8")
	}

	return &Label{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		Name:               name,
		Color:              color,
		Active:             true,
	}, nil
}

// Update changes the label details
func (l *Label) Update(name, color string) error {
	if !l.Active {
		return shared.NewDomainError("INVALID_STATE", "Cannot update an inactive label")
	}
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	if color != "" && !hexColorPattern.MatchString(color) {
		return shared.NewDomainError("INVALID_COLOR", "Color must be a hex value like #1a73e8")
	}

	l.Name = name
	l.Color = color
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}

// MarkDefault flags this label as the store default.
// The repository clears the flag on sibling labels in the same transaction.
func (l *Label) MarkDefault() error {
	if !l.Active {
		return shared.NewDomainError("INVALID_STATE", "Cannot set an inactive label as default")
	}
	l.IsDefault = true
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}

// ClearDefault removes the default flag
func (l *Label) ClearDefault() {
	l.IsDefault = false
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// Deactivate soft deletes the label
func (l *Label) Deactivate() error {
	if !l.Active {
		return shared.NewDomainError("INVALID_STATE", "Label is already inactive")
	}
	l.Active = false
	l.IsDefault = false
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}
