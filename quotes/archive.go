package quotes

import (
	"context"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// PriceRecorder persists fetched prices.
type PriceRecorder interface {
	RecordPrice(ctx context.Context, symbol string, price decimal.Decimal) error
}

// Archive records every quote the wrapped provider returns. Recording
// errors are logged and never fail the lookup.
type Archive struct {
	next     Provider
	recorder PriceRecorder
	log      log.FieldLogger
}

func NewArchive(next Provider, recorder PriceRecorder, logger log.FieldLogger) *Archive {
	return &Archive{next: next, recorder: recorder, log: logger}
}

func (a *Archive) Lookup(ctx context.Context, symbol string) (Quote, error) {
	quote, err := a.next.Lookup(ctx, symbol)
	if err != nil {
		return Quote{}, err
	}
	if err := a.recorder.RecordPrice(ctx, quote.Symbol, quote.Price); err != nil {
		a.log.WithError(err).WithField("symbol", quote.Symbol).Warn("failed to archive price")
	}
	return quote, nil
}
