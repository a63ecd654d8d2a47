package services

import (
	"context"

	"github.com/shopspring/decimal"

	"stocks-simulator/models"
)

// Store is the persistence the services need. Implementations return
// models.ErrNotFound and models.ErrDuplicate for missing rows and unique
// violations.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUsersByUsername(ctx context.Context, username string) ([]models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	// LockUser reads the user row and holds it until the surrounding
	// transaction ends.
	LockUser(ctx context.Context, id uint) (*models.User, error)
	SetCash(ctx context.Context, id uint, cash decimal.Decimal) error

	AppendTransaction(ctx context.Context, entry *models.Transaction) error
	NetShares(ctx context.Context, userID uint, symbol string) (int64, error)
	Holdings(ctx context.Context, userID uint) ([]models.Holding, error)
	Transactions(ctx context.Context, userID uint) ([]models.Transaction, error)

	// InTransaction runs fn against a Store bound to one database
	// transaction. It commits when fn returns nil and rolls back otherwise.
	InTransaction(ctx context.Context, fn func(tx Store) error) error
}
