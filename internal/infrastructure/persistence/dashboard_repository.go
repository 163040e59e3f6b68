package persistence

import (
	"github.com/caixa/backend/internal/domain/ledger"
	"github.com/caixa/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormDashboardRepository implements DashboardRepository using GORM.
// All queries consider active entries only and sum gross amounts; fee
// breakdowns belong to the statement and projection, not the dashboard.
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewGormDashboardRepository creates a new GormDashboardRepository
func NewGormDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// windowQuery scopes a query on the entries table to the filter's store
// and date window, active entries only
func (r *GormDashboardRepository) windowQuery(filter report.DashboardFilter) *gorm.DB {
	return r.db.Table("entries e").
		Where("e.store_id = ?", filter.StoreID).
		Where("e.active = ?", true).
		Where("e.event_date BETWEEN ? AND ?", filter.StartDate, filter.EndDate)
}

// GetSummary returns gross income, gross expense and balance for the window
func (r *GormDashboardRepository) GetSummary(filter report.DashboardFilter) (*report.Summary, error) {
	var result struct {
		TotalIncome  decimal.Decimal
		TotalExpense decimal.Decimal
		EntryCount   int64
	}
	if err := r.windowQuery(filter).
		Select(`
			COALESCE(SUM(CASE WHEN e.kind = ? THEN e.amount ELSE 0 END), 0) as total_income,
			COALESCE(SUM(CASE WHEN e.kind = ? THEN e.amount ELSE 0 END), 0) as total_expense,
			COUNT(*) as entry_count
		`, ledger.EntryKindIncome, ledger.EntryKindExpense).
		Scan(&result).Error; err != nil {
		return nil, err
	}

	return &report.Summary{
		StoreID:      filter.StoreID,
		PeriodStart:  filter.StartDate,
		PeriodEnd:    filter.EndDate,
		TotalIncome:  result.TotalIncome,
		TotalExpense: result.TotalExpense,
		Balance:      result.TotalIncome.Sub(result.TotalExpense),
		EntryCount:   result.EntryCount,
	}, nil
}

// GetMonthlyFlow returns per-month income and expense gross sums, ascending
func (r *GormDashboardRepository) GetMonthlyFlow(filter report.DashboardFilter) ([]report.MonthlyFlow, error) {
	var flows []report.MonthlyFlow
	if err := r.windowQuery(filter).
		Select(`
			CAST(EXTRACT(YEAR FROM e.event_date) AS INTEGER) as year,
			CAST(EXTRACT(MONTH FROM e.event_date) AS INTEGER) as month,
			COALESCE(SUM(CASE WHEN e.kind = ? THEN e.amount ELSE 0 END), 0) as income,
			COALESCE(SUM(CASE WHEN e.kind = ? THEN e.amount ELSE 0 END), 0) as expense
		`, ledger.EntryKindIncome, ledger.EntryKindExpense).
		Group("1, 2").
		Order("year ASC, month ASC").
		Scan(&flows).Error; err != nil {
		return nil, err
	}
	return flows, nil
}

// GetTotalsByLabel returns gross sums per label and kind descending, so
// a label used by both kinds yields one income and one expense row.
// Entries without a label, or with a dangling label reference, surface
// as a row with an empty label name.
func (r *GormDashboardRepository) GetTotalsByLabel(filter report.DashboardFilter) ([]report.LabelTotal, error) {
	var totals []report.LabelTotal
	query := r.windowQuery(filter).
		Select(`
			e.label_id,
			COALESCE(l.name, '') as label_name,
			COALESCE(l.color, '') as label_color,
			e.kind,
			COALESCE(SUM(e.amount), 0) as total,
			COUNT(*) as entry_count
		`).
		Joins("LEFT JOIN labels l ON l.id = e.label_id").
		Group("e.label_id, l.name, l.color, e.kind").
		Order("total DESC")
	if filter.TopN > 0 {
		query = query.Limit(filter.TopN)
	}

	if err := query.Scan(&totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}

// GetTotalsBySource returns gross income sums per source, descending
func (r *GormDashboardRepository) GetTotalsBySource(filter report.DashboardFilter) ([]report.CounterpartTotal, error) {
	return r.totalsByCounterpart(filter, ledger.EntryKindIncome, "source_id")
}

// GetTotalsByDestination returns gross expense sums per destination, descending
func (r *GormDashboardRepository) GetTotalsByDestination(filter report.DashboardFilter) ([]report.CounterpartTotal, error) {
	return r.totalsByCounterpart(filter, ledger.EntryKindExpense, "destination_id")
}

// totalsByCounterpart groups one kind's entries by the given counterpart
// column. A dangling counterpart reference keeps its row with an empty
// name instead of failing the aggregation.
func (r *GormDashboardRepository) totalsByCounterpart(filter report.DashboardFilter, kind ledger.EntryKind, column string) ([]report.CounterpartTotal, error) {
	var totals []report.CounterpartTotal
	query := r.windowQuery(filter).
		Select(`
			e.`+column+` as counterpart_id,
			COALESCE(c.name, '') as counterpart_name,
			COALESCE(SUM(e.amount), 0) as total,
			COUNT(*) as entry_count
		`).
		Joins("LEFT JOIN counterparts c ON c.id = e."+column).
		Where("e.kind = ?", kind).
		Where("e." + column + " IS NOT NULL").
		Group("e." + column + ", c.name").
		Order("total DESC")
	if filter.TopN > 0 {
		query = query.Limit(filter.TopN)
	}

	if err := query.Scan(&totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}

// GetTotalsByPaymentMethod returns gross sum and count per method,
// descending by sum. A dangling method reference keeps its row with an
// empty name.
func (r *GormDashboardRepository) GetTotalsByPaymentMethod(filter report.DashboardFilter) ([]report.MethodTotal, error) {
	var totals []report.MethodTotal
	query := r.windowQuery(filter).
		Select(`
			e.payment_method_id,
			COALESCE(pm.name, '') as method_name,
			COALESCE(SUM(e.amount), 0) as total,
			COUNT(*) as entry_count
		`).
		Joins("LEFT JOIN payment_methods pm ON pm.id = e.payment_method_id").
		Group("e.payment_method_id, pm.name").
		Order("total DESC")
	if filter.TopN > 0 {
		query = query.Limit(filter.TopN)
	}

	if err := query.Scan(&totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}

// GetDailySums returns per-day signed gross sums, ascending by date
func (r *GormDashboardRepository) GetDailySums(filter report.DashboardFilter) ([]report.DailySum, error) {
	var sums []report.DailySum
	if err := r.windowQuery(filter).
		Select(`
			CAST(e.event_date AS DATE) as date,
			COALESCE(SUM(CASE WHEN e.kind = ? THEN e.amount ELSE -e.amount END), 0) as sum
		`, ledger.EntryKindIncome).
		Group("CAST(e.event_date AS DATE)").
		Order("date ASC").
		Scan(&sums).Error; err != nil {
		return nil, err
	}
	return sums, nil
}
