package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Summary is the headline read model for a store's date window
type Summary struct {
	StoreID      uuid.UUID       `json:"store_id"`
	PeriodStart  time.Time       `json:"period_start"`
	PeriodEnd    time.Time       `json:"period_end"`
	TotalIncome  decimal.Decimal `json:"total_income"`  // gross
	TotalExpense decimal.Decimal `json:"total_expense"` // gross
	Balance      decimal.Decimal `json:"balance"`       // TotalIncome - TotalExpense
	EntryCount   int64           `json:"entry_count"`
}

// MonthlyFlow represents income and expense sums for one month
type MonthlyFlow struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// LabelTotal represents the sum of entries per label and kind, so the
// same label shows one income row and one expense row when both exist.
// Entries without a label surface with a nil LabelID and empty name.
type LabelTotal struct {
	LabelID    *uuid.UUID      `json:"label_id"`
	LabelName  string          `json:"label_name"`
	LabelColor string          `json:"label_color,omitempty"`
	Kind       string          `json:"kind"`
	Total      decimal.Decimal `json:"total"`
	EntryCount int64           `json:"entry_count"`
}

// CounterpartTotal represents the sum of entries per counterpart
type CounterpartTotal struct {
	CounterpartID   uuid.UUID       `json:"counterpart_id"`
	CounterpartName string          `json:"counterpart_name"`
	Total           decimal.Decimal `json:"total"`
	EntryCount      int64           `json:"entry_count"`
}

// MethodTotal represents the sum and count of entries per payment method
type MethodTotal struct {
	PaymentMethodID uuid.UUID       `json:"payment_method_id"`
	MethodName      string          `json:"method_name"`
	Total           decimal.Decimal `json:"total"`
	EntryCount      int64           `json:"entry_count"`
}

// DailySum represents the signed gross movement of one day
type DailySum struct {
	Date time.Time       `json:"date"`
	Sum  decimal.Decimal `json:"sum"`
}

// DailyBalancePoint is one point of the accumulated daily balance series
type DailyBalancePoint struct {
	Date    time.Time       `json:"date"`
	Sum     decimal.Decimal `json:"sum"`
	Balance decimal.Decimal `json:"balance"`
}

// DashboardFilter defines the window for dashboard queries
type DashboardFilter struct {
	StoreID   uuid.UUID `json:"-"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	TopN      int       `json:"top_n,omitempty"`
}

// DashboardRepository defines the interface for dashboard aggregate queries.
// All queries consider active entries only.
type DashboardRepository interface {
	// GetSummary returns gross income, gross expense and balance for the window
	GetSummary(filter DashboardFilter) (*Summary, error)

	// GetMonthlyFlow returns per-month income and expense sums, ascending
	GetMonthlyFlow(filter DashboardFilter) ([]MonthlyFlow, error)

	// GetTotalsByLabel returns sums per label and kind descending,
	// including unlabeled entries as an empty-label row
	GetTotalsByLabel(filter DashboardFilter) ([]LabelTotal, error)

	// GetTotalsBySource returns sums per source for income entries, descending
	GetTotalsBySource(filter DashboardFilter) ([]CounterpartTotal, error)

	// GetTotalsByDestination returns sums per destination for expense entries, descending
	GetTotalsByDestination(filter DashboardFilter) ([]CounterpartTotal, error)

	// GetTotalsByPaymentMethod returns sum and count per method, descending by sum
	GetTotalsByPaymentMethod(filter DashboardFilter) ([]MethodTotal, error)

	// GetDailySums returns per-day signed gross sums, ascending by date
	GetDailySums(filter DashboardFilter) ([]DailySum, error)
}

// DailyBalanceSeries folds per-day signed sums into an accumulated
// balance series starting from zero. The input must be ascending by date.
func DailyBalanceSeries(sums []DailySum) []DailyBalancePoint {
	points := make([]DailyBalancePoint, 0, len(sums))
	balance := decimal.Zero
	for _, s := range sums {
		balance = balance.Add(s.Sum)
		points = append(points, DailyBalancePoint{
			Date:    s.Date,
			Sum:     s.Sum,
			Balance: balance,
		})
	}
	return points
}
