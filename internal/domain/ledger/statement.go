package ledger

import (
	"time"

	"github.com/caixa/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatementLine is one row of the extract: an entry with its fee
// breakdown and the balance after applying it.
type StatementLine struct {
	EntryID         uuid.UUID         `json:"entry_id"`
	Kind            EntryKind         `json:"kind"`
	Description     string            `json:"description"`
	EventDate       time.Time         `json:"event_date"`
	LabelID         *uuid.UUID        `json:"label_id"`
	PaymentMethodID uuid.UUID         `json:"payment_method_id"`
	SourceID        *uuid.UUID        `json:"source_id"`
	DestinationID   *uuid.UUID        `json:"destination_id"`
	Gross           valueobject.Money `json:"gross"`
	FeeRate         decimal.Decimal   `json:"fee_rate"`
	FeeAmount       valueobject.Money `json:"fee_amount"`
	Net             valueobject.Money `json:"net"`
	Balance         valueobject.Money `json:"balance"`
}

// StatementTotals accumulates the extract window.
// Amounts keep full precision; callers round at the presentation edge.
type StatementTotals struct {
	IncomeGross    valueobject.Money `json:"income_gross"`
	IncomeNet      valueobject.Money `json:"income_net"`
	ExpenseGross   valueobject.Money `json:"expense_gross"`
	ExpenseNet     valueobject.Money `json:"expense_net"`
	TotalFees      valueobject.Money `json:"total_fees"`
	OpeningBalance valueobject.Money `json:"opening_balance"`
	ClosingBalance valueobject.Money `json:"closing_balance"`
	EntryCount     int               `json:"entry_count"`
}

// BuildStatement folds entries (ordered by event date, then recording
// time) into extract lines with a running balance over the opening
// balance.
func BuildStatement(entries []Entry, openingBalance valueobject.Money) ([]StatementLine, StatementTotals) {
	lines := make([]StatementLine, 0, len(entries))

	balance := openingBalance
	incomeGross := valueobject.ZeroBRL()
	incomeNet := valueobject.ZeroBRL()
	expenseGross := valueobject.ZeroBRL()
	expenseNet := valueobject.ZeroBRL()
	totalFees := valueobject.ZeroBRL()

	for i := range entries {
		e := &entries[i]

		gross := e.GetAmountMoney()
		fee := e.FeeAmount()
		net := e.NetAmount()
		balance = balance.MustAdd(e.SignedNet())

		totalFees = totalFees.MustAdd(fee)
		if e.IsIncome() {
			incomeGross = incomeGross.MustAdd(gross)
			incomeNet = incomeNet.MustAdd(net)
		} else {
			expenseGross = expenseGross.MustAdd(gross)
			expenseNet = expenseNet.MustAdd(net)
		}

		lines = append(lines, StatementLine{
			EntryID:         e.ID,
			Kind:            e.Kind,
			Description:     e.Description,
			EventDate:       e.EventDate,
			LabelID:         e.LabelID,
			PaymentMethodID: e.PaymentMethodID,
			SourceID:        e.SourceID,
			DestinationID:   e.DestinationID,
			Gross:           gross,
			FeeRate:         e.FeeRate,
			FeeAmount:       fee,
			Net:             net,
			Balance:         balance,
		})
	}

	totals := StatementTotals{
		IncomeGross:    incomeGross,
		IncomeNet:      incomeNet,
		ExpenseGross:   expenseGross,
		ExpenseNet:     expenseNet,
		TotalFees:      totalFees,
		OpeningBalance: openingBalance,
		ClosingBalance: balance,
		EntryCount:     len(entries),
	}

	return lines, totals
}
