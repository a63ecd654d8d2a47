package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DefaultAlphaVantageURL = "https://www.alphavantage.co/query"

type alphaVantageResponse struct {
	GlobalQuote struct {
		Symbol string `json:"01. symbol"`
		Price  string `json:"05. price"`
	} `json:"Global Quote"`
	BestMatches []struct {
		Symbol string `json:"1. symbol"`
		Name   string `json:"2. name"`
	} `json:"bestMatches"`
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

// AlphaVantage is a Provider backed by the Alpha Vantage query API.
type AlphaVantage struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewAlphaVantage(apiKey, baseURL string, timeout time.Duration) *AlphaVantage {
	if baseURL == "" {
		baseURL = DefaultAlphaVantageURL
	}
	return &AlphaVantage{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (a *AlphaVantage) Lookup(ctx context.Context, symbol string) (Quote, error) {
	symbol = Normalize(symbol)
	if symbol == "" {
		return Quote{}, ErrSymbolNotFound
	}

	var result alphaVantageResponse
	if err := a.query(ctx, url.Values{"function": {"GLOBAL_QUOTE"}, "symbol": {symbol}}, &result); err != nil {
		return Quote{}, err
	}

	if result.GlobalQuote.Symbol == "" || result.GlobalQuote.Price == "" {
		return Quote{}, ErrSymbolNotFound
	}
	price, err := decimal.NewFromString(result.GlobalQuote.Price)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: bad price %q", ErrProviderUnavailable, result.GlobalQuote.Price)
	}
	if !price.IsPositive() {
		return Quote{}, ErrSymbolNotFound
	}

	quote := Quote{
		Symbol: Normalize(result.GlobalQuote.Symbol),
		Name:   result.GlobalQuote.Symbol,
		Price:  price,
	}
	// A missing display name is not worth failing the quote over.
	if name, err := a.name(ctx, quote.Symbol); err == nil && name != "" {
		quote.Name = name
	}
	return quote, nil
}

func (a *AlphaVantage) name(ctx context.Context, symbol string) (string, error) {
	var result alphaVantageResponse
	if err := a.query(ctx, url.Values{"function": {"SYMBOL_SEARCH"}, "keywords": {symbol}}, &result); err != nil {
		return "", err
	}
	for _, match := range result.BestMatches {
		if strings.EqualFold(match.Symbol, symbol) {
			return match.Name, nil
		}
	}
	return "", nil
}

func (a *AlphaVantage) query(ctx context.Context, params url.Values, out *alphaVantageResponse) error {
	params.Set("apikey", a.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrProviderUnavailable, err)
	}

	switch {
	case out.ErrorMessage != "":
		return fmt.Errorf("%w: %s", ErrProviderUnavailable, out.ErrorMessage)
	case out.Note != "":
		return fmt.Errorf("%w: %s", ErrProviderUnavailable, out.Note)
	case out.Information != "":
		return fmt.Errorf("%w: %s", ErrProviderUnavailable, out.Information)
	}
	return nil
}
