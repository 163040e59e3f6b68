package ledger

import (
	"time"

	"github.com/caixa/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Modality represents how a payment method settles
type Modality string

const (
	ModalityUpfront     Modality = "a_vista" // settles in a single installment
	ModalityInstallment Modality = "a_prazo" // settles across multiple installments
)

// IsValid checks if the modality is a valid Modality
func (m Modality) IsValid() bool {
	switch m {
	case ModalityUpfront, ModalityInstallment:
		return true
	}
	return false
}

// String returns the string representation of Modality
func (m Modality) String() string {
	return string(m)
}

var maxFeeRate = decimal.NewFromInt(100)

// PaymentMethod represents a way of paying or receiving money.
// The fee rate is a percentage taken on every entry recorded with the
// method; entries snapshot it at recording time.
type PaymentMethod struct {
	shared.StoreAggregateRoot
	Name              string          `json:"name"`
	Modality          Modality        `json:"modality"`
	Installments      int             `json:"installments"`
	FeeRate           decimal.Decimal `json:"fee_rate"`
	DefaultForIncome  bool            `json:"default_for_income"`
	DefaultForExpense bool            `json:"default_for_expense"`
	Active            bool            `json:"active"`
}

// NewPaymentMethod creates a new payment method
func NewPaymentMethod(
	storeID uuid.UUID,
	name string,
	modality Modality,
	installments int,
	feeRate decimal.Decimal,
) (*PaymentMethod, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	if !modality.IsValid() {
		return nil, shared.NewDomainError("INVALID_MODALITY", "Modality must be a_vista or a_prazo")
	}
	if err := validateInstallments(modality, installments); err != nil {
		return nil, err
	}
	if feeRate.IsNegative() || feeRate.GreaterThan(maxFeeRate) {
		return nil, shared.NewDomainError("INVALID_FEE_RATE", "Fee rate must be between 0 and 100")
	}

	method := &PaymentMethod{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		Name:               name,
		Modality:           modality,
		Installments:       installments,
		FeeRate:            feeRate,
		Active:             true,
	}

	return method, nil
}

// validateInstallments enforces the modality/installment pairing:
// a_vista settles in exactly one installment, a_prazo in more than one.
func validateInstallments(modality Modality, installments int) error {
	switch modality {
	case ModalityUpfront:
		if installments != 1 {
			return shared.NewDomainError("INVALID_INSTALLMENTS", "a_vista methods must have exactly 1 installment")
		}
	case ModalityInstallment:
		if installments < 2 {
			return shared.NewDomainError("INVALID_INSTALLMENTS", "a_prazo methods must have more than 1 installment")
		}
	}
	return nil
}

// Update changes the method details
func (p *PaymentMethod) Update(name string, modality Modality, installments int, feeRate decimal.Decimal) error {
	if !p.Active {
		return shared.NewDomainError("INVALID_STATE", "Cannot update an inactive payment method")
	}
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	if !modality.IsValid() {
		return shared.NewDomainError("INVALID_MODALITY", "Modality must be a_vista or a_prazo")
	}
	if err := validateInstallments(modality, installments); err != nil {
		return err
	}
	if feeRate.IsNegative() || feeRate.GreaterThan(maxFeeRate) {
		return shared.NewDomainError("INVALID_FEE_RATE", "Fee rate must be between 0 and 100")
	}

	p.Name = name
	p.Modality = modality
	p.Installments = installments
	p.FeeRate = feeRate
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// MarkDefault flags the method as default for the given entry kind.
// The repository clears the flag on sibling methods in the same transaction.
func (p *PaymentMethod) MarkDefault(kind EntryKind) error {
	if !p.Active {
		return shared.NewDomainError("INVALID_STATE", "Cannot set an inactive payment method as default")
	}
	switch kind {
	case EntryKindIncome:
		p.DefaultForIncome = true
	case EntryKindExpense:
		p.DefaultForExpense = true
	default:
		return shared.NewDomainError("INVALID_KIND", "Entry kind must be receita or despesa")
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// ClearDefault removes the default flag for the given entry kind
func (p *PaymentMethod) ClearDefault(kind EntryKind) {
	switch kind {
	case EntryKindIncome:
		p.DefaultForIncome = false
	case EntryKindExpense:
		p.DefaultForExpense = false
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Deactivate soft deletes the payment method
func (p *PaymentMethod) Deactivate() error {
	if !p.Active {
		return shared.NewDomainError("INVALID_STATE", "Payment method is already inactive")
	}
	p.Active = false
	p.DefaultForIncome = false
	p.DefaultForExpense = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// IsUpfront returns true for a_vista methods
func (p *PaymentMethod) IsUpfront() bool {
	return p.Modality == ModalityUpfront
}

// IsInstallment returns true for a_prazo methods
func (p *PaymentMethod) IsInstallment() bool {
	return p.Modality == ModalityInstallment
}
