package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Title    string          `gorm:"not null" json:"title"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Featured bool            `gorm:"not null;default:false" json:"featured"`

	CategoryID uint     `gorm:"not null" json:"-"`
	Category   Category `json:"category"`

	CartLines  []CartLine  `json:"-"`
	OrderItems []OrderItem `json:"-"`
}
