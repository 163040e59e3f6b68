package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caixa/backend/internal/domain/shared/valueobject"
)

// DefaultProjectionMonths is how many forward months a projection
// returns when the caller does not ask for a specific horizon.
const DefaultProjectionMonths = 6

// InstallmentSource is an a_prazo entry reduced to what the
// projection needs. Both kinds participate: income installments are
// receivables, expense installments are payables.
type InstallmentSource struct {
	Kind         EntryKind
	Amount       valueobject.Money
	FeeRate      decimal.Decimal
	Installments int
	EventDate    time.Time
}

// MonthBucket aggregates the installments expected in one month,
// gross and net of the fee snapshot carried by each entry.
type MonthBucket struct {
	Month            time.Time         `json:"month"` // first day of the month
	IncomeGross      valueobject.Money `json:"income_gross"`
	IncomeNet        valueobject.Money `json:"income_net"`
	ExpenseGross     valueobject.Money `json:"expense_gross"`
	ExpenseNet       valueobject.Money `json:"expense_net"`
	InstallmentCount int               `json:"installment_count"`
}

// ProjectInstallments spreads each source's amount evenly across its
// installments, one per month starting at the event date's month, and
// aggregates per month. Per installment the fee is
// installment × feeRate / 100; income nets out the fee, expense adds
// it on top. Months earlier than the reference month are dropped; the
// result is ascending and capped at months entries. The reference
// month is always caller-supplied so callers control what "now" means.
func ProjectInstallments(sources []InstallmentSource, reference time.Time, months int) []MonthBucket {
	if months <= 0 {
		months = DefaultProjectionMonths
	}
	refMonth := monthOf(reference)
	hundred := decimal.NewFromInt(100)

	buckets := make(map[time.Time]*MonthBucket)
	for _, src := range sources {
		if src.Installments < 1 {
			continue
		}
		installment, err := src.Amount.DivideByInt(int64(src.Installments))
		if err != nil {
			continue
		}
		fee := installment.Multiply(src.FeeRate.Div(hundred))
		var net valueobject.Money
		if src.Kind == EntryKindIncome {
			net = installment.MustSubtract(fee)
		} else {
			net = installment.MustAdd(fee)
		}

		first := monthOf(src.EventDate)
		for i := 0; i < src.Installments; i++ {
			month := first.AddDate(0, i, 0)
			if month.Before(refMonth) {
				continue
			}
			b, ok := buckets[month]
			if !ok {
				b = &MonthBucket{
					Month:        month,
					IncomeGross:  valueobject.ZeroBRL(),
					IncomeNet:    valueobject.ZeroBRL(),
					ExpenseGross: valueobject.ZeroBRL(),
					ExpenseNet:   valueobject.ZeroBRL(),
				}
				buckets[month] = b
			}
			if src.Kind == EntryKindIncome {
				b.IncomeGross = b.IncomeGross.MustAdd(installment)
				b.IncomeNet = b.IncomeNet.MustAdd(net)
			} else {
				b.ExpenseGross = b.ExpenseGross.MustAdd(installment)
				b.ExpenseNet = b.ExpenseNet.MustAdd(net)
			}
			b.InstallmentCount++
		}
	}

	result := make([]MonthBucket, 0, len(buckets))
	for _, b := range buckets {
		result = append(result, *b)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Month.Before(result[j].Month)
	})

	if len(result) > months {
		result = result[:months]
	}
	return result
}

// monthOf truncates a time to the first day of its month in UTC
func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
