package ledger

import (
	"context"
	"time"

	"github.com/caixa/backend/internal/domain/ledger"
	"github.com/caixa/backend/internal/domain/shared"
	"github.com/caixa/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatementService builds the chronological statement for a store
type StatementService struct {
	entryRepo ledger.EntryRepository
}

// NewStatementService creates a new StatementService
func NewStatementService(entryRepo ledger.EntryRepository) *StatementService {
	return &StatementService{entryRepo: entryRepo}
}

// ===================== Statement Operations =====================

// StatementLineResponse represents one statement line in API responses.
// Amounts are rounded to two decimal places here; the running balance is
// accumulated at full precision before rounding so cents never drift.
type StatementLineResponse struct {
	EntryID         uuid.UUID       `json:"entry_id"`
	Kind            string          `json:"kind"`
	Description     string          `json:"description"`
	EventDate       time.Time       `json:"event_date"`
	LabelID         *uuid.UUID      `json:"label_id,omitempty"`
	PaymentMethodID uuid.UUID       `json:"payment_method_id"`
	SourceID        *uuid.UUID      `json:"source_id,omitempty"`
	DestinationID   *uuid.UUID      `json:"destination_id,omitempty"`
	Gross           decimal.Decimal `json:"gross"`
	FeeRate         decimal.Decimal `json:"fee_rate"`
	FeeAmount       decimal.Decimal `json:"fee_amount"`
	Net             decimal.Decimal `json:"net"`
	Balance         decimal.Decimal `json:"balance"`
}

// StatementTotalsResponse represents aggregated statement totals
type StatementTotalsResponse struct {
	IncomeGross    decimal.Decimal `json:"income_gross"`
	IncomeNet      decimal.Decimal `json:"income_net"`
	ExpenseGross   decimal.Decimal `json:"expense_gross"`
	ExpenseNet     decimal.Decimal `json:"expense_net"`
	TotalFees      decimal.Decimal `json:"total_fees"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	EntryCount     int             `json:"entry_count"`
}

// StatementResponse represents a statement in API responses
type StatementResponse struct {
	StoreID uuid.UUID               `json:"store_id"`
	From    time.Time               `json:"from"`
	To      time.Time               `json:"to"`
	Lines   []StatementLineResponse `json:"lines"`
	Totals  StatementTotalsResponse `json:"totals"`
}

// StatementRequest defines the statement query window
type StatementRequest struct {
	From           time.Time       `form:"from" binding:"required"`
	To             time.Time       `form:"to" binding:"required"`
	OpeningBalance decimal.Decimal `form:"opening_balance"`
}

// GetStatement builds the statement for a date window with a running
// balance per line and aggregated totals
func (s *StatementService) GetStatement(ctx context.Context, storeID uuid.UUID, req StatementRequest) (*StatementResponse, error) {
	if req.To.Before(req.From) {
		return nil, shared.NewDomainError("INVALID_RANGE", "Statement end date must not precede the start date")
	}

	entries, err := s.entryRepo.FindForStatement(ctx, storeID, req.From, req.To)
	if err != nil {
		return nil, err
	}

	opening := valueobject.NewMoneyBRL(req.OpeningBalance)
	lines, totals := ledger.BuildStatement(entries, opening)

	lineResponses := make([]StatementLineResponse, len(lines))
	for i, line := range lines {
		lineResponses[i] = toStatementLineResponse(line)
	}

	return &StatementResponse{
		StoreID: storeID,
		From:    req.From,
		To:      req.To,
		Lines:   lineResponses,
		Totals: StatementTotalsResponse{
			IncomeGross:    totals.IncomeGross.Round(2).Amount(),
			IncomeNet:      totals.IncomeNet.Round(2).Amount(),
			ExpenseGross:   totals.ExpenseGross.Round(2).Amount(),
			ExpenseNet:     totals.ExpenseNet.Round(2).Amount(),
			TotalFees:      totals.TotalFees.Round(2).Amount(),
			OpeningBalance: totals.OpeningBalance.Round(2).Amount(),
			ClosingBalance: totals.ClosingBalance.Round(2).Amount(),
			EntryCount:     totals.EntryCount,
		},
	}, nil
}

// ===================== Helper Functions =====================

func toStatementLineResponse(line ledger.StatementLine) StatementLineResponse {
	return StatementLineResponse{
		EntryID:         line.EntryID,
		Kind:            string(line.Kind),
		Description:     line.Description,
		EventDate:       line.EventDate,
		LabelID:         line.LabelID,
		PaymentMethodID: line.PaymentMethodID,
		SourceID:        line.SourceID,
		DestinationID:   line.DestinationID,
		Gross:           line.Gross.Round(2).Amount(),
		FeeRate:         line.FeeRate,
		FeeAmount:       line.FeeAmount.Round(2).Amount(),
		Net:             line.Net.Round(2).Amount(),
		Balance:         line.Balance.Round(2).Amount(),
	}
}
