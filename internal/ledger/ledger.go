// Package ledger implements the core of the split ledger: recording expenses with their
// splits, deriving group balances, and recording settlements.
//
// Every operation re-reads the store; nothing is cached between calls.
// Errors are always *Error values carrying a Kind.
package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/events"
	"github.com/mmynk/splitledger/internal/models"
)

// Option configures a recorder or engine.
type Option func(*options)

type options struct {
	publisher events.Publisher
	now       func() time.Time
}

// WithPublisher sets where committed changes are announced. Defaults to events.NopPublisher;
// a nil p keeps the default.
func WithPublisher(p events.Publisher) Option {
	return func(o *options) {
		if p != nil {
			o.publisher = p
		}
	}
}

// WithClock overrides the time source used for settlement timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{publisher: events.NopPublisher{}, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// publish announces a committed change. Failures are logged, never returned.
func (o options) publish(ctx context.Context, event events.Event) {
	if err := o.publisher.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "Failed to publish ledger event",
			"type", event.Type,
			"subject_id", event.SubjectID,
			"error", err)
	}
}

var hundred = decimal.NewFromInt(100)

// checkAmount validates a money amount: positive (or non-negative when allowZero),
// at most models.MaxAmount, with at most two fractional digits.
func checkAmount(op, field string, amount decimal.Decimal, allowZero bool) error {
	if amount.IsNegative() || (!allowZero && amount.IsZero()) {
		if allowZero {
			return validationError(op, "%s must not be negative", field)
		}
		return validationError(op, "%s must be greater than zero", field)
	}
	if amount.GreaterThan(models.MaxAmount) {
		return validationError(op, "%s must be at most %s", field, models.MaxAmount.StringFixed(2))
	}
	if !amount.Mul(hundred).IsInteger() {
		return validationError(op, "%s %s has more than two decimal places", field, amount)
	}
	return nil
}
