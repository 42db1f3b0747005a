package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when billing metrics are constructed without a
// meter.
var ErrMeterNil = errors.New("billing metrics: meter cannot be nil")

// Billing event outcomes used as the outcome attribute on the event counter.
const (
	BillingOutcomeBilled   = "billed"
	BillingOutcomeNoOp     = "no_op"
	BillingOutcomeConflict = "conflict"
	BillingOutcomeFailed   = "failed"
)

// AttrOutcome labels a billing event counter sample with its outcome.
var AttrOutcome = attribute.Key("outcome")

// InvoiceTotalBuckets are bucket boundaries for invoice totals in cents.
var InvoiceTotalBuckets = []float64{100, 1000, 5000, 10000, 50000, 100000, 500000, 1000000}

// BillingMetrics tracks billing event outcomes and the money that moves
// through them. The application layer records into it after each billing
// event commits or aborts.
type BillingMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	eventsTotal         *Counter
	creditConsumedTotal *Counter
	creditGrantedTotal  *Counter
	invoiceTotal        *Histogram
}

// NewBillingMetrics creates a new BillingMetrics instance on the given meter.
func NewBillingMetrics(meter metric.Meter, logger *zap.Logger) (*BillingMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BillingMetrics{
		meter:  meter,
		logger: logger,
	}

	var err error

	bm.eventsTotal, err = NewCounter(
		meter,
		"billing_events_total",
		"Total number of billing events by outcome",
		"{events}",
	)
	if err != nil {
		return nil, err
	}

	bm.creditConsumedTotal, err = NewCounter(
		meter,
		"billing_credit_consumed_cents_total",
		"Total credit consumed from account balances, in cents",
		"{cents}",
	)
	if err != nil {
		return nil, err
	}

	bm.creditGrantedTotal, err = NewCounter(
		meter,
		"billing_credit_granted_cents_total",
		"Total credit granted back to account balances, in cents",
		"{cents}",
	)
	if err != nil {
		return nil, err
	}

	bm.invoiceTotal, err = NewHistogram(meter, HistogramOpts{
		Name:        "billing_invoice_total_cents",
		Description: "Distribution of committed invoice totals, in cents",
		Unit:        "{cents}",
		Boundaries:  InvoiceTotalBuckets,
	})
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// RecordBilled records a committed billing event and its invoice total.
func (bm *BillingMetrics) RecordBilled(ctx context.Context, invoiceTotal int64) {
	bm.eventsTotal.Inc(ctx, AttrOutcome.String(BillingOutcomeBilled))
	bm.invoiceTotal.Record(ctx, float64(invoiceTotal))
}

// RecordNoOp records a billing event that found no unbilled orders.
func (bm *BillingMetrics) RecordNoOp(ctx context.Context) {
	bm.eventsTotal.Inc(ctx, AttrOutcome.String(BillingOutcomeNoOp))
}

// RecordConflict records a billing event aborted by a concurrent billing of
// the same orders.
func (bm *BillingMetrics) RecordConflict(ctx context.Context) {
	bm.eventsTotal.Inc(ctx, AttrOutcome.String(BillingOutcomeConflict))
}

// RecordFailure records a billing event aborted by an infrastructure or
// domain failure.
func (bm *BillingMetrics) RecordFailure(ctx context.Context) {
	bm.eventsTotal.Inc(ctx, AttrOutcome.String(BillingOutcomeFailed))
}

// RecordCreditConsumed records credit debited from an account toward an
// invoice.
func (bm *BillingMetrics) RecordCreditConsumed(ctx context.Context, amount int64) {
	if amount <= 0 {
		return
	}
	bm.creditConsumedTotal.Add(ctx, amount)
}

// RecordCreditGranted records credit transferred from an invoice back to an
// account.
func (bm *BillingMetrics) RecordCreditGranted(ctx context.Context, amount int64) {
	if amount <= 0 {
		return
	}
	bm.creditGrantedTotal.Add(ctx, amount)
}
