package services

import (
	"errors"

	"github.com/PeterHwu/bar-api/entity"
	"github.com/PeterHwu/bar-api/pkg/apperr"
	"github.com/PeterHwu/bar-api/repository"
	"gorm.io/gorm"
)

type CartService struct {
	DB          *gorm.DB
	CartRepo    *repository.CartRepository
	CatalogRepo *repository.CatalogRepository
	UserRepo    *repository.UserRepository
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, cat *repository.CatalogRepository, ur *repository.UserRepository) *CartService {
	return &CartService{DB: db, CartRepo: cr, CatalogRepo: cat, UserRepo: ur}
}

type AddToCartIn struct {
	MenuItemID uint `json:"menuitem_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required"`
}

// Add merges quantity into the user's existing line for this menu item, or
// creates a new line snapshotting the current catalog price. The existing
// line keeps its recorded unit price; only quantity and line price move.
func (s *CartService) Add(p Principal, in *AddToCartIn) (*CartLineView, bool, error) {
	if in.Quantity <= 0 {
		return nil, false, apperr.Validation("quantity must be a positive integer")
	}

	item, err := s.CatalogRepo.GetMenuItem(in.MenuItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, apperr.NotFound("menu item does not exist")
		}
		return nil, false, err
	}

	user, err := s.UserRepo.FindByID(p.UserID)
	if err != nil {
		return nil, false, err
	}

	var (
		line    *entity.CartLine
		created bool
	)
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		line, created, err = s.CartRepo.UpsertLine(tx, p.UserID, item, in.Quantity)
		return err
	})
	if err != nil {
		return nil, false, err
	}

	line.MenuItem = *item
	view := newCartLineView(line, user.Username)
	return &view, created, nil
}

// List returns the user's cart lines in insertion order. An empty cart is a
// valid result, not an error; the HTTP layer turns it into a no-content
// signal.
func (s *CartService) List(p Principal) ([]CartLineView, error) {
	user, err := s.UserRepo.FindByID(p.UserID)
	if err != nil {
		return nil, err
	}
	lines, err := s.CartRepo.Lines(p.UserID)
	if err != nil {
		return nil, err
	}
	out := make([]CartLineView, 0, len(lines))
	for i := range lines {
		out = append(out, newCartLineView(&lines[i], user.Username))
	}
	return out, nil
}

func (s *CartService) Clear(p Principal) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.Clear(tx, p.UserID)
	})
}
