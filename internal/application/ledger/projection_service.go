package ledger

import (
	"context"
	"time"

	"github.com/caixa/backend/internal/domain/ledger"
	"github.com/caixa/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectionService projects expected installment receivables and
// payables into future months
type ProjectionService struct {
	entryRepo ledger.EntryRepository
}

// NewProjectionService creates a new ProjectionService
func NewProjectionService(entryRepo ledger.EntryRepository) *ProjectionService {
	return &ProjectionService{entryRepo: entryRepo}
}

// ===================== Projection Operations =====================

// MonthBucketResponse represents one projected month in API responses
type MonthBucketResponse struct {
	Month            string          `json:"month"` // YYYY-MM
	IncomeGross      decimal.Decimal `json:"income_gross"`
	IncomeNet        decimal.Decimal `json:"income_net"`
	ExpenseGross     decimal.Decimal `json:"expense_gross"`
	ExpenseNet       decimal.Decimal `json:"expense_net"`
	InstallmentCount int             `json:"installment_count"`
}

// ProjectionResponse represents the installment projection
type ProjectionResponse struct {
	StoreID   uuid.UUID             `json:"store_id"`
	Reference string                `json:"reference"` // YYYY-MM
	Months    []MonthBucketResponse `json:"months"`
}

// ProjectionRequest defines projection query parameters
type ProjectionRequest struct {
	Reference *time.Time `form:"reference"`
	Months    int        `form:"months"`
}

// GetProjection spreads every active installment entry over its
// payment method's installment count and aggregates gross and
// fee-adjusted net values per month and kind from the reference month
// forward
func (s *ProjectionService) GetProjection(ctx context.Context, storeID uuid.UUID, req ProjectionRequest) (*ProjectionResponse, error) {
	if req.Months < 0 {
		return nil, shared.NewDomainError("INVALID_MONTHS", "Projection horizon cannot be negative")
	}

	reference := time.Now()
	if req.Reference != nil {
		reference = *req.Reference
	}

	sources, err := s.entryRepo.FindInstallmentSources(ctx, storeID)
	if err != nil {
		return nil, err
	}

	buckets := ledger.ProjectInstallments(sources, reference, req.Months)

	monthResponses := make([]MonthBucketResponse, len(buckets))
	for i, b := range buckets {
		monthResponses[i] = MonthBucketResponse{
			Month:            b.Month.Format("2006-01"),
			IncomeGross:      b.IncomeGross.Round(2).Amount(),
			IncomeNet:        b.IncomeNet.Round(2).Amount(),
			ExpenseGross:     b.ExpenseGross.Round(2).Amount(),
			ExpenseNet:       b.ExpenseNet.Round(2).Amount(),
			InstallmentCount: b.InstallmentCount,
		}
	}

	return &ProjectionResponse{
		StoreID:   storeID,
		Reference: reference.Format("2006-01"),
		Months:    monthResponses,
	}, nil
}
