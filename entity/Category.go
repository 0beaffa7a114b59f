package entity

import (
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Slug  string `gorm:"uniqueIndex;not null" json:"slug"`
	Title string `gorm:"not null" json:"title"`

	// Hide relation to keep payloads small
	MenuItems []MenuItem `json:"-"`
}
