// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics provides business metrics for the cash-flow ledger.
// It tracks entry recording, statement generation, and ledger health.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	entryRecordedTotal      *Counter
	entryAmountTotal        *Counter
	entryVoidedTotal        *Counter
	statementGeneratedTotal *Counter
	projectionRunTotal      *Counter

	// Gauge metrics (point-in-time values)
	activeEntryCount *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data providers for periodic collection
	ledgerProvider LedgerMetricsProvider
}

// LedgerMetricsProvider provides ledger data for periodic metrics collection.
// This interface allows the telemetry layer to query ledger state without
// depending on the ledger domain directly.
type LedgerMetricsProvider interface {
	// GetActiveEntryCount returns the number of active entries for a store
	GetActiveEntryCount(ctx context.Context, storeID uuid.UUID) (int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 5 minutes
	LedgerProvider  LedgerMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:          cfg.Meter,
		logger:         logger,
		stopChan:       make(chan struct{}),
		ledgerProvider: cfg.LedgerProvider,
	}

	// Initialize counter metrics
	var err error

	// Entry metrics
	bm.entryRecordedTotal, err = NewCounter(
		cfg.Meter,
		"caixa_entry_recorded_total",
		"Total number of ledger entries recorded",
		"{entries}",
	)
	if err != nil {
		return nil, err
	}

	bm.entryAmountTotal, err = NewCounter(
		cfg.Meter,
		"caixa_entry_amount_total",
		"Total entry amount in cents (centavos)",
		"{centavos}",
	)
	if err != nil {
		return nil, err
	}

	bm.entryVoidedTotal, err = NewCounter(
		cfg.Meter,
		"caixa_entry_voided_total",
		"Total number of ledger entries voided",
		"{entries}",
	)
	if err != nil {
		return nil, err
	}

	// Report metrics
	bm.statementGeneratedTotal, err = NewCounter(
		cfg.Meter,
		"caixa_statement_generated_total",
		"Total number of statements generated",
		"{statements}",
	)
	if err != nil {
		return nil, err
	}

	bm.projectionRunTotal, err = NewCounter(
		cfg.Meter,
		"caixa_projection_run_total",
		"Total number of installment projections computed",
		"{projections}",
	)
	if err != nil {
		return nil, err
	}

	// Ledger gauge metrics
	bm.activeEntryCount, err = NewGauge(
		cfg.Meter,
		"caixa_active_entry_count",
		"Current number of active ledger entries",
		"{entries}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Entry Metrics
// =============================================================================

// RecordEntryCreated records an entry creation event.
// This should be called from the application layer when an entry is recorded.
func (bm *BusinessMetrics) RecordEntryCreated(ctx context.Context, storeID uuid.UUID, kind string) {
	bm.entryRecordedTotal.Inc(ctx,
		AttrStoreID.String(storeID.String()),
		AttrEntryKind.String(kind),
	)
}

// RecordEntryAmount records the entry amount.
// Amount should be in the smallest currency unit (centavos).
func (bm *BusinessMetrics) RecordEntryAmount(ctx context.Context, storeID uuid.UUID, kind string, amountCentavos int64) {
	bm.entryAmountTotal.Add(ctx, amountCentavos,
		AttrStoreID.String(storeID.String()),
		AttrEntryKind.String(kind),
	)
}

// RecordEntryWithAmount is a convenience method that records both entry count and amount.
func (bm *BusinessMetrics) RecordEntryWithAmount(ctx context.Context, storeID uuid.UUID, kind string, amount decimal.Decimal) {
	bm.RecordEntryCreated(ctx, storeID, kind)

	// Convert to centavos (multiply by 100)
	amountCentavos := amount.Mul(decimal.NewFromInt(100)).IntPart()
	bm.RecordEntryAmount(ctx, storeID, kind, amountCentavos)
}

// RecordEntryVoided records an entry void event.
func (bm *BusinessMetrics) RecordEntryVoided(ctx context.Context, storeID uuid.UUID, kind string) {
	bm.entryVoidedTotal.Inc(ctx,
		AttrStoreID.String(storeID.String()),
		AttrEntryKind.String(kind),
	)
}

// =============================================================================
// Report Metrics
// =============================================================================

// RecordStatementGenerated records a statement generation event.
// This should be called when a statement request completes successfully.
func (bm *BusinessMetrics) RecordStatementGenerated(ctx context.Context, storeID uuid.UUID) {
	bm.statementGeneratedTotal.Inc(ctx,
		AttrStoreID.String(storeID.String()),
	)
}

// RecordProjectionRun records an installment projection computation.
func (bm *BusinessMetrics) RecordProjectionRun(ctx context.Context, storeID uuid.UUID) {
	bm.projectionRunTotal.Inc(ctx,
		AttrStoreID.String(storeID.String()),
	)
}

// =============================================================================
// Ledger Gauge Metrics
// =============================================================================

// RecordActiveEntryCount records the current number of active entries for a store.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordActiveEntryCount(ctx context.Context, storeID uuid.UUID, count int64) {
	bm.activeEntryCount.Record(ctx, count,
		AttrStoreID.String(storeID.String()),
	)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// StoreProvider provides store IDs for periodic metrics collection.
type StoreProvider interface {
	GetActiveStoreIDs(ctx context.Context) ([]uuid.UUID, error)
}

// StartPeriodicCollection starts periodic collection of gauge metrics.
// It collects ledger metrics every interval (default: 5 minutes).
// This is non-blocking - use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, storeProvider StoreProvider, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, storeProvider, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, storeProvider StoreProvider, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectLedgerMetrics(ctx, storeProvider)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectLedgerMetrics(ctx, storeProvider)
		}
	}
}

// collectLedgerMetrics collects ledger gauge metrics for all stores.
func (bm *BusinessMetrics) collectLedgerMetrics(ctx context.Context, storeProvider StoreProvider) {
	if bm.ledgerProvider == nil {
		bm.logger.Debug("No ledger provider configured, skipping ledger metrics collection")
		return
	}

	storeIDs, err := storeProvider.GetActiveStoreIDs(ctx)
	if err != nil {
		bm.logger.Error("Failed to get store IDs for metrics collection", zap.Error(err))
		return
	}

	for _, storeID := range storeIDs {
		bm.collectStoreLedgerMetrics(ctx, storeID)
	}
}

// collectStoreLedgerMetrics collects ledger metrics for a single store.
func (bm *BusinessMetrics) collectStoreLedgerMetrics(ctx context.Context, storeID uuid.UUID) {
	count, err := bm.ledgerProvider.GetActiveEntryCount(ctx, storeID)
	if err != nil {
		bm.logger.Warn("Failed to get active entry count for store",
			zap.String("store_id", storeID.String()),
			zap.Error(err),
		)
		return
	}

	bm.RecordActiveEntryCount(ctx, storeID, count)
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}

// =============================================================================
// Attribute Key Constants
// =============================================================================

// Business metrics attribute keys not already defined in metrics.go
var (
	// Additional business attributes can be added here
	AttrEntrySource = attribute.Key("entry_source")
)
