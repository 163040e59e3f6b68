package report

import (
	"context"
	"time"

	"github.com/caixa/backend/internal/domain/report"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardService provides application-level dashboard operations
type DashboardService struct {
	dashboardRepo report.DashboardRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(dashboardRepo report.DashboardRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

// ===================== Dashboard Operations =====================

// SummaryResponse represents the headline numbers for a date window
type SummaryResponse struct {
	PeriodStart  time.Time       `json:"period_start"`
	PeriodEnd    time.Time       `json:"period_end"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
	EntryCount   int64           `json:"entry_count"`
}

// MonthlyFlowResponse represents one month of income and expense sums
type MonthlyFlowResponse struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// LabelTotalResponse represents entry sums per label and kind
type LabelTotalResponse struct {
	LabelID    *uuid.UUID      `json:"label_id"`
	LabelName  string          `json:"label_name"`
	LabelColor string          `json:"label_color,omitempty"`
	Kind       string          `json:"kind"`
	Total      decimal.Decimal `json:"total"`
	EntryCount int64           `json:"entry_count"`
}

// CounterpartTotalResponse represents entry sums per counterpart
type CounterpartTotalResponse struct {
	CounterpartID   uuid.UUID       `json:"counterpart_id"`
	CounterpartName string          `json:"counterpart_name"`
	Total           decimal.Decimal `json:"total"`
	EntryCount      int64           `json:"entry_count"`
}

// MethodTotalResponse represents entry sums per payment method
type MethodTotalResponse struct {
	PaymentMethodID uuid.UUID       `json:"payment_method_id"`
	MethodName      string          `json:"method_name"`
	Total           decimal.Decimal `json:"total"`
	EntryCount      int64           `json:"entry_count"`
}

// DailyBalanceResponse is one point of the accumulated balance series
type DailyBalanceResponse struct {
	Date    time.Time       `json:"date"`
	Sum     decimal.Decimal `json:"sum"`
	Balance decimal.Decimal `json:"balance"`
}

// DashboardFilter defines the request filter for dashboard queries
type DashboardFilter struct {
	StartDate time.Time `form:"start_date" binding:"required"`
	EndDate   time.Time `form:"end_date" binding:"required"`
	TopN      int       `form:"top_n"`
}

// GetSummary returns gross totals and balance for the window
func (s *DashboardService) GetSummary(ctx context.Context, storeID uuid.UUID, filter DashboardFilter) (*SummaryResponse, error) {
	summary, err := s.dashboardRepo.GetSummary(toDomainFilter(storeID, filter))
	if err != nil {
		return nil, err
	}

	return &SummaryResponse{
		PeriodStart:  summary.PeriodStart,
		PeriodEnd:    summary.PeriodEnd,
		TotalIncome:  summary.TotalIncome.Round(2),
		TotalExpense: summary.TotalExpense.Round(2),
		Balance:      summary.Balance.Round(2),
		EntryCount:   summary.EntryCount,
	}, nil
}

// GetMonthlyFlow returns per-month income and expense sums, ascending
func (s *DashboardService) GetMonthlyFlow(ctx context.Context, storeID uuid.UUID, filter DashboardFilter) ([]MonthlyFlowResponse, error) {
	flows, err := s.dashboardRepo.GetMonthlyFlow(toDomainFilter(storeID, filter))
	if err != nil {
		return nil, err
	}

	responses := make([]MonthlyFlowResponse, len(flows))
	for i, f := range flows {
		responses[i] = MonthlyFlowResponse{
			Year:    f.Year,
			Month:   f.Month,
			Income:  f.Income.Round(2),
			Expense: f.Expense.Round(2),
		}
	}
	return responses, nil
}

// GetTotalsByLabel returns entry sums grouped by label and kind,
// descending. Unlabeled entries appear as a row with a nil label.
func (s *DashboardService) GetTotalsByLabel(ctx context.Context, storeID uuid.UUID, filter DashboardFilter) ([]LabelTotalResponse, error) {
	totals, err := s.dashboardRepo.GetTotalsByLabel(toDomainFilter(storeID, filter))
	if err != nil {
		return nil, err
	}

	responses := make([]LabelTotalResponse, len(totals))
	for i, t := range totals {
		responses[i] = LabelTotalResponse{
			LabelID:    t.LabelID,
			LabelName:  t.LabelName,
			LabelColor: t.LabelColor,
			Kind:       t.Kind,
			Total:      t.Total.Round(2),
			EntryCount: t.EntryCount,
		}
	}
	return responses, nil
}

// GetTotalsBySource returns income sums grouped by source, descending
func (s *DashboardService) GetTotalsBySource(ctx context.Context, storeID uuid.UUID, filter DashboardFilter) ([]CounterpartTotalResponse, error) {
	totals, err := s.dashboardRepo.GetTotalsBySource(toDomainFilter(storeID, filter))
	if err != nil {
		return nil, err
	}
	return toCounterpartTotalResponses(totals), nil
}

// GetTotalsByDestination returns expense sums grouped by destination, descending
func (s *DashboardService) GetTotalsByDestination(ctx context.Context, storeID uuid.UUID, filter DashboardFilter) ([]CounterpartTotalResponse, error) {
	totals, err := s.dashboardRepo.GetTotalsByDestination(toDomainFilter(storeID, filter))
	if err != nil {
		return nil, err
	}
	return toCounterpartTotalResponses(totals), nil
}

// GetTotalsByPaymentMethod returns sums and counts grouped by method
func (s *DashboardService) GetTotalsByPaymentMethod(ctx context.Context, storeID uuid.UUID, filter DashboardFilter) ([]MethodTotalResponse, error) {
	totals, err := s.dashboardRepo.GetTotalsByPaymentMethod(toDomainFilter(storeID, filter))
	if err != nil {
		return nil, err
	}

	responses := make([]MethodTotalResponse, len(totals))
	for i, t := range totals {
		responses[i] = MethodTotalResponse{
			PaymentMethodID: t.PaymentMethodID,
			MethodName:      t.MethodName,
			Total:           t.Total.Round(2),
			EntryCount:      t.EntryCount,
		}
	}
	return responses, nil
}

// GetDailyBalance returns the accumulated daily balance series for the
// window. Each point carries the day's signed gross movement and the
// balance accumulated from zero at the window start.
func (s *DashboardService) GetDailyBalance(ctx context.Context, storeID uuid.UUID, filter DashboardFilter) ([]DailyBalanceResponse, error) {
	sums, err := s.dashboardRepo.GetDailySums(toDomainFilter(storeID, filter))
	if err != nil {
		return nil, err
	}

	points := report.DailyBalanceSeries(sums)

	responses := make([]DailyBalanceResponse, len(points))
	for i, p := range points {
		responses[i] = DailyBalanceResponse{
			Date:    p.Date,
			Sum:     p.Sum.Round(2),
			Balance: p.Balance.Round(2),
		}
	}
	return responses, nil
}

// ===================== Helper Functions =====================

func toDomainFilter(storeID uuid.UUID, filter DashboardFilter) report.DashboardFilter {
	return report.DashboardFilter{
		StoreID:   storeID,
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
		TopN:      filter.TopN,
	}
}

func toCounterpartTotalResponses(totals []report.CounterpartTotal) []CounterpartTotalResponse {
	responses := make([]CounterpartTotalResponse, len(totals))
	for i, t := range totals {
		responses[i] = CounterpartTotalResponse{
			CounterpartID:   t.CounterpartID,
			CounterpartName: t.CounterpartName,
			Total:           t.Total.Round(2),
			EntryCount:      t.EntryCount,
		}
	}
	return responses
}
