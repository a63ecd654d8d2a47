// Package testutil provides in-memory stand-ins for the store, the quote
// provider and the session store.
package testutil

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"stocks-simulator/models"
	"stocks-simulator/services"
)

// QuietLogger returns a logger that discards everything.
func QuietLogger() *log.Logger {
	l := log.New()
	l.SetOutput(io.Discard)
	return l
}

type memState struct {
	users   []models.User
	ledger  []models.Transaction
	prices  []models.StockPrice
	nextTx  uint
	clock   time.Time
	failing map[string]error
}

func (s *memState) clone() *memState {
	c := *s
	c.users = append([]models.User(nil), s.users...)
	c.ledger = append([]models.Transaction(nil), s.ledger...)
	c.prices = append([]models.StockPrice(nil), s.prices...)
	return &c
}

// MemStore is an in-memory services.Store. InTransaction snapshots the
// state and restores it when fn fails.
type MemStore struct {
	mu    sync.Mutex
	state *memState
}

var _ services.Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{state: &memState{
		clock:   time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC),
		failing: map[string]error{},
	}}
}

// FailOn makes the named operation return err until cleared with a nil err.
func (m *MemStore) FailOn(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.state.failing, op)
		return
	}
	m.state.failing[op] = err
}

// Ledger returns a copy of every ledger row in insertion order.
func (m *MemStore) Ledger() []models.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Transaction(nil), m.state.ledger...)
}

// Users returns a copy of every user.
func (m *MemStore) Users() []models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.User(nil), m.state.users...)
}

// Prices returns the archived prices.
func (m *MemStore) Prices() []models.StockPrice {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.StockPrice(nil), m.state.prices...)
}

func (m *MemStore) locked(fn func(s *memState) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(m.state)
}

func (m *MemStore) CreateUser(ctx context.Context, user *models.User) error {
	return m.locked(func(s *memState) error { return s.createUser(user) })
}

func (m *MemStore) FindUsersByUsername(ctx context.Context, username string) ([]models.User, error) {
	var users []models.User
	err := m.locked(func(s *memState) (err error) {
		users, err = s.findUsers(username)
		return err
	})
	return users, err
}

func (m *MemStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user *models.User
	err := m.locked(func(s *memState) (err error) {
		user, err = s.getUser(id)
		return err
	})
	return user, err
}

func (m *MemStore) LockUser(ctx context.Context, id uint) (*models.User, error) {
	return m.GetUser(ctx, id)
}

func (m *MemStore) SetCash(ctx context.Context, id uint, cash decimal.Decimal) error {
	return m.locked(func(s *memState) error { return s.setCash(id, cash) })
}

func (m *MemStore) AppendTransaction(ctx context.Context, entry *models.Transaction) error {
	return m.locked(func(s *memState) error { return s.append(entry) })
}

func (m *MemStore) NetShares(ctx context.Context, userID uint, symbol string) (int64, error) {
	var net int64
	err := m.locked(func(s *memState) (err error) {
		net, err = s.netShares(userID, symbol)
		return err
	})
	return net, err
}

func (m *MemStore) Holdings(ctx context.Context, userID uint) ([]models.Holding, error) {
	var holdings []models.Holding
	err := m.locked(func(s *memState) (err error) {
		holdings, err = s.holdings(userID)
		return err
	})
	return holdings, err
}

func (m *MemStore) Transactions(ctx context.Context, userID uint) ([]models.Transaction, error) {
	var entries []models.Transaction
	err := m.locked(func(s *memState) (err error) {
		entries, err = s.transactions(userID)
		return err
	})
	return entries, err
}

func (m *MemStore) InTransaction(ctx context.Context, fn func(tx services.Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.state.clone()
	if err := fn(&memTx{state: m.state}); err != nil {
		m.state = snapshot
		return err
	}
	return nil
}

func (m *MemStore) RecordPrice(ctx context.Context, symbol string, price decimal.Decimal) error {
	return m.locked(func(s *memState) error {
		s.prices = append(s.prices, models.StockPrice{Symbol: symbol, Price: price})
		return nil
	})
}

// memTx runs against the state already locked by InTransaction.
type memTx struct {
	state *memState
}

func (t *memTx) CreateUser(ctx context.Context, user *models.User) error {
	return t.state.createUser(user)
}

func (t *memTx) FindUsersByUsername(ctx context.Context, username string) ([]models.User, error) {
	return t.state.findUsers(username)
}

func (t *memTx) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return t.state.getUser(id)
}

func (t *memTx) LockUser(ctx context.Context, id uint) (*models.User, error) {
	return t.state.getUser(id)
}

func (t *memTx) SetCash(ctx context.Context, id uint, cash decimal.Decimal) error {
	return t.state.setCash(id, cash)
}

func (t *memTx) AppendTransaction(ctx context.Context, entry *models.Transaction) error {
	return t.state.append(entry)
}

func (t *memTx) NetShares(ctx context.Context, userID uint, symbol string) (int64, error) {
	return t.state.netShares(userID, symbol)
}

func (t *memTx) Holdings(ctx context.Context, userID uint) ([]models.Holding, error) {
	return t.state.holdings(userID)
}

func (t *memTx) Transactions(ctx context.Context, userID uint) ([]models.Transaction, error) {
	return t.state.transactions(userID)
}

func (t *memTx) InTransaction(ctx context.Context, fn func(tx services.Store) error) error {
	return fn(t)
}

func (s *memState) createUser(user *models.User) error {
	if err := s.failing["CreateUser"]; err != nil {
		return err
	}
	for _, u := range s.users {
		if u.Username == user.Username {
			return models.ErrDuplicate
		}
	}
	user.ID = uint(len(s.users) + 1)
	user.CreatedAt = s.clock
	user.UpdatedAt = s.clock
	s.users = append(s.users, *user)
	return nil
}

func (s *memState) findUsers(username string) ([]models.User, error) {
	var users []models.User
	for _, u := range s.users {
		if u.Username == username {
			users = append(users, u)
		}
	}
	return users, nil
}

func (s *memState) getUser(id uint) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *memState) setCash(id uint, cash decimal.Decimal) error {
	if err := s.failing["SetCash"]; err != nil {
		return err
	}
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].Cash = cash
			return nil
		}
	}
	return models.ErrNotFound
}

func (s *memState) append(entry *models.Transaction) error {
	if err := s.failing["AppendTransaction"]; err != nil {
		return err
	}
	s.nextTx++
	s.clock = s.clock.Add(time.Minute)
	entry.ID = s.nextTx
	entry.CreatedAt = s.clock
	s.ledger = append(s.ledger, *entry)
	return nil
}

func (s *memState) netShares(userID uint, symbol string) (int64, error) {
	var net int64
	for _, e := range s.ledger {
		if e.UserID == userID && e.Symbol == symbol {
			net += e.Shares
		}
	}
	return net, nil
}

func (s *memState) holdings(userID uint) ([]models.Holding, error) {
	bySymbol := map[string]*models.Holding{}
	for _, e := range s.ledger {
		if e.UserID != userID {
			continue
		}
		h, ok := bySymbol[e.Symbol]
		if !ok {
			h = &models.Holding{Symbol: e.Symbol, Name: e.Name}
			bySymbol[e.Symbol] = h
		}
		h.Shares += e.Shares
	}

	var holdings []models.Holding
	for _, h := range bySymbol {
		if h.Shares > 0 {
			holdings = append(holdings, *h)
		}
	}
	sort.Slice(holdings, func(i, j int) bool { return holdings[i].Symbol < holdings[j].Symbol })
	return holdings, nil
}

func (s *memState) transactions(userID uint) ([]models.Transaction, error) {
	var entries []models.Transaction
	for i := len(s.ledger) - 1; i >= 0; i-- {
		if s.ledger[i].UserID == userID {
			entries = append(entries, s.ledger[i])
		}
	}
	return entries, nil
}
