package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeBuy  = "Buy"
	TypeSell = "Sell"
)

// Transaction is an append-only ledger row. Shares is positive for a buy
// and negative for a sell; Amount is always Price * |Shares|.
type Transaction struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"index;not null"`
	Symbol    string          `gorm:"size:16;index;not null"`
	Name      string          `gorm:"not null"`
	Shares    int64           `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	Amount    decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	Type      string          `gorm:"size:4;not null"`
	CreatedAt time.Time       `gorm:"index"`
}

// Holding is the net position of a user in one symbol.
type Holding struct {
	Symbol string
	Name   string
	Shares int64
}
