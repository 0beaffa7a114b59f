package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartLine is one (user, menu item) row. Adding the same item again merges
// into the existing line instead of creating a second one.
type CartLine struct {
	gorm.Model
	UserID uint `gorm:"not null;uniqueIndex:idx_cart_user_item" json:"-"`
	User   User `json:"-"`

	MenuItemID uint     `gorm:"not null;uniqueIndex:idx_cart_user_item" json:"-"`
	MenuItem   MenuItem `json:"menuitem"`

	Quantity int `gorm:"not null" json:"quantity"`

	// UnitPrice is the menu item price snapshotted when the line was created;
	// later catalog price changes never touch it.
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	LinePrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"line_price"`
}
