package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	OrderRef string `gorm:"uniqueIndex;not null" json:"order_ref"`

	UserID uint `gorm:"not null" json:"-"`
	User   User `json:"-"`

	DeliveryCrewID *uint `json:"-"`
	DeliveryCrew   *User `json:"-"`

	// Status false = not delivered yet, true = delivered.
	Status bool            `gorm:"not null;default:false" json:"status"`
	Total  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Date   time.Time       `gorm:"not null" json:"date"`

	OrderItems []OrderItem `json:"-"`
}
