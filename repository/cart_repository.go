package repository

import (
	"errors"

	"github.com/PeterHwu/bar-api/entity"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// Lines returns the user's cart in insertion order, menu item embedded.
func (r *CartRepository) Lines(userID uint) ([]entity.CartLine, error) {
	return r.lines(r.DB, userID)
}

// LinesIn is Lines against an open transaction, so the snapshot and any
// follow-up writes see the same cart state.
func (r *CartRepository) LinesIn(tx *gorm.DB, userID uint) ([]entity.CartLine, error) {
	return r.lines(tx, userID)
}

func (r *CartRepository) lines(db *gorm.DB, userID uint) ([]entity.CartLine, error) {
	var lines []entity.CartLine
	err := db.Where("user_id = ?", userID).
		Preload("MenuItem").
		Preload("MenuItem.Category").
		Order("id").
		Find(&lines).Error
	return lines, err
}

// UpsertLine merges qty into the existing (user, menu item) line or creates a
// new one snapshotting unitPrice. The existing row is locked for the duration
// of the transaction on backends that support it; sqlite serializes writers
// on its own.
func (r *CartRepository) UpsertLine(tx *gorm.DB, userID uint, item *entity.MenuItem, qty int) (*entity.CartLine, bool, error) {
	q := tx.Where("user_id = ? AND menu_item_id = ?", userID, item.ID)
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var line entity.CartLine
	err := q.First(&line).Error
	if err == nil {
		line.Quantity += qty
		line.LinePrice = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		if err := tx.Save(&line).Error; err != nil {
			return nil, false, err
		}
		return &line, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	line = entity.CartLine{
		UserID:     userID,
		MenuItemID: item.ID,
		Quantity:   qty,
		UnitPrice:  item.Price,
		LinePrice:  item.Price.Mul(decimal.NewFromInt(int64(qty))),
	}
	if err := tx.Create(&line).Error; err != nil {
		return nil, false, err
	}
	return &line, true, nil
}

// RemoveLines deletes only the given lines, so a line added after the
// caller's snapshot stays in the cart.
func (r *CartRepository) RemoveLines(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return tx.Unscoped().Where("id IN ?", ids).Delete(&entity.CartLine{}).Error
}

// Clear removes the rows for real: a soft-deleted line would still collide
// with the (user, menu item) unique index when the item is added again.
func (r *CartRepository) Clear(tx *gorm.DB, userID uint) error {
	return tx.Unscoped().Where("user_id = ?", userID).Delete(&entity.CartLine{}).Error
}
