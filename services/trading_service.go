package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"stocks-simulator/models"
	"stocks-simulator/quotes"
)

// MaxShares bounds the share count of a single order.
const MaxShares = 1_000_000_000

type TradingService struct {
	store  Store
	quotes quotes.Provider
	log    log.FieldLogger
}

func NewTradingService(store Store, provider quotes.Provider, logger log.FieldLogger) *TradingService {
	return &TradingService{store: store, quotes: provider, log: logger}
}

// Position is one priced holding. When the quote could not be fetched
// Priced is false and Price and Value are zero.
type Position struct {
	Symbol string
	Name   string
	Shares int64
	Price  decimal.Decimal
	Value  decimal.Decimal
	Priced bool
}

type Portfolio struct {
	Cash      decimal.Decimal
	Positions []Position
	Total     decimal.Decimal
	// Incomplete is set when at least one position could not be priced.
	Incomplete bool
}

// HistoryEntry is a ledger row prepared for display: Shares is unsigned.
type HistoryEntry struct {
	Symbol string
	Name   string
	Type   string
	Shares int64
	Price  decimal.Decimal
	Amount decimal.Decimal
	At     time.Time
}

// Quote resolves a symbol. Unknown symbols and provider failures are both
// reported as ErrInvalidSymbol.
func (s *TradingService) Quote(ctx context.Context, symbol string) (quotes.Quote, error) {
	symbol = quotes.Normalize(symbol)
	if symbol == "" {
		return quotes.Quote{}, ErrInvalidSymbol
	}

	quote, err := s.quotes.Lookup(ctx, symbol)
	if err != nil {
		s.log.WithError(err).WithField("symbol", symbol).Info("quote lookup failed")
		return quotes.Quote{}, ErrInvalidSymbol
	}
	return quote, nil
}

func (s *TradingService) Buy(ctx context.Context, userID uint, symbol string, shares int64) (*models.Transaction, error) {
	if shares <= 0 || shares > MaxShares {
		return nil, ErrInvalidShares
	}

	quote, err := s.Quote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	cost := quote.Price.Mul(decimal.NewFromInt(shares))

	var entry *models.Transaction
	err = s.store.InTransaction(ctx, func(tx Store) error {
		user, err := tx.LockUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("load user %d: %w", userID, err)
		}
		if cost.GreaterThan(user.Cash) {
			return ErrInsufficientCash
		}

		entry = &models.Transaction{
			UserID: userID,
			Symbol: quote.Symbol,
			Name:   quote.Name,
			Shares: shares,
			Price:  quote.Price,
			Amount: cost,
			Type:   models.TypeBuy,
		}
		if err := tx.AppendTransaction(ctx, entry); err != nil {
			return err
		}
		return tx.SetCash(ctx, userID, user.Cash.Sub(cost))
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(log.Fields{
		"user_id": userID,
		"symbol":  entry.Symbol,
		"shares":  shares,
		"amount":  cost.StringFixed(2),
	}).Info("bought shares")
	return entry, nil
}

func (s *TradingService) Sell(ctx context.Context, userID uint, symbol string, shares int64) (*models.Transaction, error) {
	if shares <= 0 || shares > MaxShares {
		return nil, ErrInvalidShares
	}

	quote, err := s.Quote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	proceeds := quote.Price.Mul(decimal.NewFromInt(shares))

	var entry *models.Transaction
	err = s.store.InTransaction(ctx, func(tx Store) error {
		user, err := tx.LockUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("load user %d: %w", userID, err)
		}

		net, err := tx.NetShares(ctx, userID, quote.Symbol)
		if err != nil {
			return err
		}
		if net <= 0 {
			return ErrNotOwned
		}
		if shares > net {
			return ErrInsufficientShares
		}

		entry = &models.Transaction{
			UserID: userID,
			Symbol: quote.Symbol,
			Name:   quote.Name,
			Shares: -shares,
			Price:  quote.Price,
			Amount: proceeds,
			Type:   models.TypeSell,
		}
		if err := tx.AppendTransaction(ctx, entry); err != nil {
			return err
		}
		return tx.SetCash(ctx, userID, user.Cash.Add(proceeds))
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(log.Fields{
		"user_id": userID,
		"symbol":  entry.Symbol,
		"shares":  shares,
		"amount":  proceeds.StringFixed(2),
	}).Info("sold shares")
	return entry, nil
}

// Portfolio prices every current holding. A failed quote leaves its row
// unpriced instead of failing the whole view.
func (s *TradingService) Portfolio(ctx context.Context, userID uint) (*Portfolio, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user %d: %w", userID, err)
	}
	holdings, err := s.store.Holdings(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := &Portfolio{Cash: user.Cash, Total: user.Cash}
	for _, h := range holdings {
		pos := Position{Symbol: h.Symbol, Name: h.Name, Shares: h.Shares}

		quote, err := s.quotes.Lookup(ctx, h.Symbol)
		if err != nil {
			s.log.WithError(err).WithField("symbol", h.Symbol).Warn("could not price holding")
			p.Incomplete = true
		} else {
			pos.Price = quote.Price
			pos.Value = quote.Price.Mul(decimal.NewFromInt(h.Shares))
			pos.Priced = true
			p.Total = p.Total.Add(pos.Value)
		}
		p.Positions = append(p.Positions, pos)
	}
	return p, nil
}

func (s *TradingService) History(ctx context.Context, userID uint) ([]HistoryEntry, error) {
	entries, err := s.store.Transactions(ctx, userID)
	if err != nil {
		return nil, err
	}

	history := make([]HistoryEntry, 0, len(entries))
	for _, e := range entries {
		shares := e.Shares
		if shares < 0 {
			shares = -shares
		}
		history = append(history, HistoryEntry{
			Symbol: e.Symbol,
			Name:   e.Name,
			Type:   e.Type,
			Shares: shares,
			Price:  e.Price,
			Amount: e.Amount,
			At:     e.CreatedAt,
		})
	}
	return history, nil
}

// OwnedSymbols lists the symbols the user currently holds.
func (s *TradingService) OwnedSymbols(ctx context.Context, userID uint) ([]string, error) {
	holdings, err := s.store.Holdings(ctx, userID)
	if err != nil {
		return nil, err
	}
	symbols := make([]string, 0, len(holdings))
	for _, h := range holdings {
		symbols = append(symbols, h.Symbol)
	}
	return symbols, nil
}
