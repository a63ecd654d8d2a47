// Package handlers serves the HTML pages of the simulator.
package handlers

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"stocks-simulator/models"
	"stocks-simulator/quotes"
	"stocks-simulator/services"
	"stocks-simulator/session"
)

type AuthService interface {
	Register(ctx context.Context, username, password, confirmation string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
}

type TradingService interface {
	Quote(ctx context.Context, symbol string) (quotes.Quote, error)
	Buy(ctx context.Context, userID uint, symbol string, shares int64) (*models.Transaction, error)
	Sell(ctx context.Context, userID uint, symbol string, shares int64) (*models.Transaction, error)
	Portfolio(ctx context.Context, userID uint) (*services.Portfolio, error)
	History(ctx context.Context, userID uint) ([]services.HistoryEntry, error)
	OwnedSymbols(ctx context.Context, userID uint) ([]string, error)
}

type Sessions interface {
	Create(ctx context.Context, userID uint, flash string) (*session.Session, string, error)
	Load(ctx context.Context, token string) (*session.Session, error)
	Save(ctx context.Context, sess *session.Session) error
	Destroy(ctx context.Context, id string) error
}

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

type Deps struct {
	Auth     AuthService
	Trading  TradingService
	Sessions Sessions
	Log      log.FieldLogger

	// SecureCookie marks the session cookie Secure.
	SecureCookie bool
	// Checks are run by the health endpoint, keyed by dependency name.
	Checks map[string]Check
	// HealthTimeout bounds each health check.
	HealthTimeout time.Duration
}

type Handler struct {
	auth     AuthService
	trading  TradingService
	sessions Sessions
	log      log.FieldLogger

	secureCookie  bool
	checks        map[string]Check
	healthTimeout time.Duration
}

func New(d Deps) *Handler {
	timeout := d.HealthTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Handler{
		auth:          d.Auth,
		trading:       d.Trading,
		sessions:      d.Sessions,
		log:           d.Log,
		secureCookie:  d.SecureCookie,
		checks:        d.Checks,
		healthTimeout: timeout,
	}
}
