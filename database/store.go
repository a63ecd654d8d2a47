package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stocks-simulator/models"
	"stocks-simulator/services"
)

// Store is the gorm-backed implementation of services.Store.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrDuplicate
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *Store) FindUsersByUsername(ctx context.Context, username string) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("find users by username: %w", err)
	}
	return users, nil
}

func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.firstUser(s.db.WithContext(ctx), id)
}

func (s *Store) LockUser(ctx context.Context, id uint) (*models.User, error) {
	return s.firstUser(s.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (s *Store) firstUser(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &user, nil
}

func (s *Store) SetCash(ctx context.Context, id uint, cash decimal.Decimal) error {
	result := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("cash", cash)
	if result.Error != nil {
		return fmt.Errorf("update cash for user %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *Store) AppendTransaction(ctx context.Context, entry *models.Transaction) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("record transaction: %w", err)
	}
	return nil
}

func (s *Store) NetShares(ctx context.Context, userID uint, symbol string) (int64, error) {
	var net int64
	err := s.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("CAST(COALESCE(SUM(shares), 0) AS BIGINT)").
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Scan(&net).Error
	if err != nil {
		return 0, fmt.Errorf("net shares of %s: %w", symbol, err)
	}
	return net, nil
}

func (s *Store) Holdings(ctx context.Context, userID uint) ([]models.Holding, error) {
	var holdings []models.Holding
	err := s.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("symbol, MAX(name) AS name, CAST(SUM(shares) AS BIGINT) AS shares").
		Where("user_id = ?", userID).
		Group("symbol").
		Having("SUM(shares) > 0").
		Order("symbol").
		Scan(&holdings).Error
	if err != nil {
		return nil, fmt.Errorf("holdings: %w", err)
	}
	return holdings, nil
}

func (s *Store) Transactions(ctx context.Context, userID uint) ([]models.Transaction, error) {
	var entries []models.Transaction
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("transactions: %w", err)
	}
	return entries, nil
}

func (s *Store) InTransaction(ctx context.Context, fn func(tx services.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// RecordPrice archives a quote fetched from the upstream provider.
func (s *Store) RecordPrice(ctx context.Context, symbol string, price decimal.Decimal) error {
	entry := models.StockPrice{Symbol: symbol, Price: price}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("archive price of %s: %w", symbol, err)
	}
	return nil
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
