package testutil

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"stocks-simulator/quotes"
)

// StubProvider serves fixed quotes. Unknown symbols yield
// quotes.ErrSymbolNotFound; symbols marked with Fail yield
// quotes.ErrProviderUnavailable.
type StubProvider struct {
	mu      sync.Mutex
	quotes  map[string]quotes.Quote
	failing map[string]bool
	calls   int
}

func NewStubProvider() *StubProvider {
	return &StubProvider{quotes: map[string]quotes.Quote{}, failing: map[string]bool{}}
}

// Set registers a quote with a price given as a decimal string.
func (p *StubProvider) Set(symbol, name, price string) *StubProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.quotes[symbol] = quotes.Quote{Symbol: symbol, Name: name, Price: decimal.RequireFromString(price)}
	return p
}

func (p *StubProvider) Fail(symbol string, fail bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failing[symbol] = fail
}

func (p *StubProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func (p *StubProvider) Lookup(ctx context.Context, symbol string) (quotes.Quote, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++

	symbol = quotes.Normalize(symbol)
	if p.failing[symbol] {
		return quotes.Quote{}, quotes.ErrProviderUnavailable
	}
	q, ok := p.quotes[symbol]
	if !ok {
		return quotes.Quote{}, quotes.ErrSymbolNotFound
	}
	return q, nil
}
