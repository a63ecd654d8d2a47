// Package quotes looks up stock prices from an upstream provider.
package quotes

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrSymbolNotFound      = errors.New("symbol not found")
	ErrProviderUnavailable = errors.New("quote provider unavailable")
)

type Quote struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
}

// Provider resolves a ticker symbol to its current quote.
type Provider interface {
	Lookup(ctx context.Context, symbol string) (Quote, error)
}

// Normalize trims and upper-cases a ticker symbol.
func Normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
