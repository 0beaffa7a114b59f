package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem is an immutable snapshot copied from a cart line when the order
// is placed. It never reflects later menu item price changes.
type OrderItem struct {
	gorm.Model
	OrderID uint  `gorm:"not null" json:"order"`
	Order   Order `json:"-"`

	MenuItemID uint     `gorm:"not null" json:"-"`
	MenuItem   MenuItem `json:"menuitem"`

	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	LinePrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"line_price"`
}
