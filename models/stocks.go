package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockPrice is one archived quote fetched from the upstream provider.
type StockPrice struct {
	gorm.Model
	Symbol string          `gorm:"size:16;index;not null"`
	Price  decimal.Decimal `gorm:"type:numeric(18,4);not null"`
}
