package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type User struct {
	ID           uint            `gorm:"primaryKey"`
	Username     string          `gorm:"size:64;uniqueIndex;not null"`
	Hash         string          `gorm:"not null"`
	Cash         decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Transactions []Transaction `gorm:"constraint:OnDelete:CASCADE"`
}
