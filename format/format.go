// Package format renders money and timestamps for display.
package format

import (
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// TimeLayout is the layout used for ledger timestamps.
const TimeLayout = "2006-01-02 15:04:05"

// USD formats an amount in dollars, e.g. $1,234.56. Amounts are rounded to
// the nearest cent.
func USD(amount decimal.Decimal) string {
	cur := money.GetCurrency(money.USD)
	cents := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(cents.IntPart())
}

// Timestamp formats t in UTC with TimeLayout.
func Timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimeLayout)
}
