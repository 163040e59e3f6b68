package models

import (
	"time"

	"github.com/caixa/backend/internal/domain/ledger"
	"github.com/caixa/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryModel is the persistence model for the Entry aggregate root.
// FeeRate is the snapshot taken at recording time, not a join to the
// payment method.
type EntryModel struct {
	StoreAggregateModel
	Kind            ledger.EntryKind `gorm:"type:varchar(10);not null;index"`
	Description     string           `gorm:"type:varchar(500);not null"`
	Amount          decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	FeeRate         decimal.Decimal  `gorm:"type:decimal(8,4);not null"`
	EventDate       time.Time        `gorm:"not null;index"`
	RecordedAt      time.Time        `gorm:"not null"`
	LabelID         *uuid.UUID       `gorm:"type:uuid;index"`
	PaymentMethodID uuid.UUID        `gorm:"type:uuid;not null;index"`
	SourceID        *uuid.UUID       `gorm:"type:uuid;index"`
	DestinationID   *uuid.UUID       `gorm:"type:uuid;index"`
	Active          bool             `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (EntryModel) TableName() string {
	return "entries"
}

// ToDomain converts the persistence model to a domain Entry entity.
func (m *EntryModel) ToDomain() *ledger.Entry {
	return &ledger.Entry{
		StoreAggregateRoot: shared.StoreAggregateRoot{
			BaseAggregateRoot: shared.BaseAggregateRoot{
				BaseEntity: shared.BaseEntity{
					ID:        m.ID,
					CreatedAt: m.CreatedAt,
					UpdatedAt: m.UpdatedAt,
				},
				Version: m.Version,
			},
			StoreID:   m.StoreID,
			CreatedBy: m.CreatedBy,
		},
		Kind:            m.Kind,
		Description:     m.Description,
		Amount:          m.Amount,
		FeeRate:         m.FeeRate,
		EventDate:       m.EventDate,
		RecordedAt:      m.RecordedAt,
		LabelID:         m.LabelID,
		PaymentMethodID: m.PaymentMethodID,
		SourceID:        m.SourceID,
		DestinationID:   m.DestinationID,
		Active:          m.Active,
	}
}

// FromDomain populates the persistence model from a domain Entry entity.
func (m *EntryModel) FromDomain(e *ledger.Entry) {
	m.FromDomainStoreAggregateRoot(e.StoreAggregateRoot)
	m.Kind = e.Kind
	m.Description = e.Description
	m.Amount = e.Amount
	m.FeeRate = e.FeeRate
	m.EventDate = e.EventDate
	m.RecordedAt = e.RecordedAt
	m.LabelID = e.LabelID
	m.PaymentMethodID = e.PaymentMethodID
	m.SourceID = e.SourceID
	m.DestinationID = e.DestinationID
	m.Active = e.Active
}

// EntryModelFromDomain creates a new persistence model from a domain Entry.
func EntryModelFromDomain(e *ledger.Entry) *EntryModel {
	m := &EntryModel{}
	m.FromDomain(e)
	return m
}

// PaymentMethodModel is the persistence model for the PaymentMethod aggregate root.
type PaymentMethodModel struct {
	StoreAggregateModel
	Name              string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_method_store_name,priority:2"`
	Modality          ledger.Modality `gorm:"type:varchar(10);not null"`
	Installments      int             `gorm:"not null;default:1"`
	FeeRate           decimal.Decimal `gorm:"type:decimal(8,4);not null"`
	DefaultForIncome  bool            `gorm:"not null;default:false"`
	DefaultForExpense bool            `gorm:"not null;default:false"`
	Active            bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (PaymentMethodModel) TableName() string {
	return "payment_methods"
}

// ToDomain converts the persistence model to a domain PaymentMethod entity.
func (m *PaymentMethodModel) ToDomain() *ledger.PaymentMethod {
	return &ledger.PaymentMethod{
		StoreAggregateRoot: shared.StoreAggregateRoot{
			BaseAggregateRoot: shared.BaseAggregateRoot{
				BaseEntity: shared.BaseEntity{
					ID:        m.ID,
					CreatedAt: m.CreatedAt,
					UpdatedAt: m.UpdatedAt,
				},
				Version: m.Version,
			},
			StoreID:   m.StoreID,
			CreatedBy: m.CreatedBy,
		},
		Name:              m.Name,
		Modality:          m.Modality,
		Installments:      m.Installments,
		FeeRate:           m.FeeRate,
		DefaultForIncome:  m.DefaultForIncome,
		DefaultForExpense: m.DefaultForExpense,
		Active:            m.Active,
	}
}

// FromDomain populates the persistence model from a domain PaymentMethod entity.
func (m *PaymentMethodModel) FromDomain(p *ledger.PaymentMethod) {
	m.FromDomainStoreAggregateRoot(p.StoreAggregateRoot)
	m.Name = p.Name
	m.Modality = p.Modality
	m.Installments = p.Installments
	m.FeeRate = p.FeeRate
	m.DefaultForIncome = p.DefaultForIncome
	m.DefaultForExpense = p.DefaultForExpense
	m.Active = p.Active
}

// PaymentMethodModelFromDomain creates a new persistence model from a domain PaymentMethod.
func PaymentMethodModelFromDomain(p *ledger.PaymentMethod) *PaymentMethodModel {
	m := &PaymentMethodModel{}
	m.FromDomain(p)
	return m
}

// LabelModel is the persistence model for the Label aggregate root.
type LabelModel struct {
	StoreAggregateModel
	Name      string `gorm:"type:varchar(100);not null;uniqueIndex:idx_label_store_name,priority:2"`
	Color     string `gorm:"type:varchar(7)"`
	IsDefault bool   `gorm:"not null;default:false"`
	Active    bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (LabelModel) TableName() string {
	return "labels"
}

// ToDomain converts the persistence model to a domain Label entity.
func (m *LabelModel) ToDomain() *ledger.Label {
	return &ledger.Label{
		StoreAggregateRoot: shared.StoreAggregateRoot{
			BaseAggregateRoot: shared.BaseAggregateRoot{
				BaseEntity: shared.BaseEntity{
					ID:        m.ID,
					CreatedAt: m.CreatedAt,
					UpdatedAt: m.UpdatedAt,
				},
				Version: m.Version,
			},
			StoreID:   m.StoreID,
			CreatedBy: m.CreatedBy,
		},
		Name:      m.Name,
		Color:     m.Color,
		IsDefault: m.IsDefault,
		Active:    m.Active,
	}
}

// FromDomain populates the persistence model from a domain Label entity.
func (m *LabelModel) FromDomain(l *ledger.Label) {
	m.FromDomainStoreAggregateRoot(l.StoreAggregateRoot)
	m.Name = l.Name
	m.Color = l.Color
	m.IsDefault = l.IsDefault
	m.Active = l.Active
}

// LabelModelFromDomain creates a new persistence model from a domain Label.
func LabelModelFromDomain(l *ledger.Label) *LabelModel {
	m := &LabelModel{}
	m.FromDomain(l)
	return m
}

// CounterpartModel is the persistence model for the Counterpart aggregate root.
// Sources and destinations share the table, told apart by role.
type CounterpartModel struct {
	StoreAggregateModel
	Name      string                 `gorm:"type:varchar(100);not null;uniqueIndex:idx_counterpart_store_role_name,priority:3"`
	Role      ledger.CounterpartRole `gorm:"type:varchar(15);not null;uniqueIndex:idx_counterpart_store_role_name,priority:2;index"`
	IsDefault bool                   `gorm:"not null;default:false"`
	Active    bool                   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (CounterpartModel) TableName() string {
	return "counterparts"
}

// ToDomain converts the persistence model to a domain Counterpart entity.
func (m *CounterpartModel) ToDomain() *ledger.Counterpart {
	return &ledger.Counterpart{
		StoreAggregateRoot: shared.StoreAggregateRoot{
			BaseAggregateRoot: shared.BaseAggregateRoot{
				BaseEntity: shared.BaseEntity{
					ID:        m.ID,
					CreatedAt: m.CreatedAt,
					UpdatedAt: m.UpdatedAt,
				},
				Version: m.Version,
			},
			StoreID:   m.StoreID,
			CreatedBy: m.CreatedBy,
		},
		Name:      m.Name,
		Role:      m.Role,
		IsDefault: m.IsDefault,
		Active:    m.Active,
	}
}

// FromDomain populates the persistence model from a domain Counterpart entity.
func (m *CounterpartModel) FromDomain(c *ledger.Counterpart) {
	m.FromDomainStoreAggregateRoot(c.StoreAggregateRoot)
	m.Name = c.Name
	m.Role = c.Role
	m.IsDefault = c.IsDefault
	m.Active = c.Active
}

// CounterpartModelFromDomain creates a new persistence model from a domain Counterpart.
func CounterpartModelFromDomain(c *ledger.Counterpart) *CounterpartModel {
	m := &CounterpartModel{}
	m.FromDomain(c)
	return m
}
