package services

import (
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/PeterHwu/bar-api/entity"
	"github.com/PeterHwu/bar-api/pkg/apperr"
	"github.com/PeterHwu/bar-api/repository"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 2
	maxPageSize     = 100
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type CatalogService struct {
	Repo *repository.CatalogRepository
}

func NewCatalogService(repo *repository.CatalogRepository) *CatalogService {
	return &CatalogService{Repo: repo}
}

// ---------------- Categories ----------------

func (s *CatalogService) ListCategories() ([]entity.Category, error) {
	cats, err := s.Repo.ListCategories()
	if err != nil {
		return nil, err
	}
	if len(cats) == 0 {
		return nil, apperr.NotFound("category list is empty")
	}
	return cats, nil
}

type CategoryIn struct {
	Slug  string `json:"slug" binding:"required"`
	Title string `json:"title" binding:"required"`
}

func (s *CatalogService) CreateCategory(in *CategoryIn) (*entity.Category, error) {
	if !slugPattern.MatchString(in.Slug) {
		return nil, apperr.Validation("slug must be URL-safe (lowercase letters, digits, hyphens)")
	}
	count, err := s.Repo.CountCategoryBySlug(in.Slug)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Validation("category with this slug already exists")
	}
	cat := &entity.Category{Slug: in.Slug, Title: in.Title}
	if err := s.Repo.CreateCategory(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// ---------------- Menu items ----------------

type MenuItemListIn struct {
	Ordering     string
	CategoryName string
	Page         int
	PageSize     int
}

type MenuItemPage struct {
	Items    []entity.MenuItem `json:"items"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

func (s *CatalogService) ListMenuItems(in *MenuItemListIn) (*MenuItemPage, error) {
	if in.Ordering != "" && in.Ordering != "price" && in.Ordering != "-price" {
		return nil, apperr.Validation("invalid ordering parameter, use 'price' or '-price'")
	}
	if in.Page <= 0 {
		in.Page = 1
	}
	if in.PageSize <= 0 {
		in.PageSize = defaultPageSize
	}
	if in.PageSize > maxPageSize {
		in.PageSize = maxPageSize
	}

	items, total, err := s.Repo.ListMenuItems(repository.MenuItemQuery{
		Ordering:     in.Ordering,
		CategoryName: in.CategoryName,
		Page:         in.Page,
		PageSize:     in.PageSize,
	})
	if err != nil {
		return nil, err
	}
	if in.CategoryName != "" && total == 0 {
		return nil, apperr.NotFound(fmt.Sprintf("category: '%s' does not exist", in.CategoryName))
	}

	return &MenuItemPage{Items: items, Total: total, Page: in.Page, PageSize: in.PageSize}, nil
}

type MenuItemIn struct {
	Title      string          `json:"title" binding:"required"`
	Price      decimal.Decimal `json:"price" binding:"required"`
	CategoryID uint            `json:"category" binding:"required"`
	Featured   bool            `json:"featured"`
}

func (s *CatalogService) CreateMenuItem(in *MenuItemIn) (*entity.MenuItem, error) {
	if !in.Price.IsPositive() {
		return nil, apperr.Validation("price must be a positive decimal")
	}
	ok, err := s.Repo.CategoryExists(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("category does not exist")
	}

	item := &entity.MenuItem{
		Title:      in.Title,
		Price:      in.Price,
		CategoryID: in.CategoryID,
		Featured:   in.Featured,
	}
	if err := s.Repo.CreateMenuItem(item); err != nil {
		return nil, err
	}
	return s.Repo.GetMenuItem(item.ID)
}

type MenuItemUpdateIn struct {
	Title      *string          `json:"title"`
	Price      *decimal.Decimal `json:"price"`
	CategoryID *uint            `json:"category"`
	Featured   *bool            `json:"featured"`
}

func (s *CatalogService) UpdateMenuItem(id uint, in *MenuItemUpdateIn) (*entity.MenuItem, error) {
	item, err := s.Repo.GetMenuItem(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("menu item not found")
		}
		return nil, err
	}

	if in.Title != nil {
		item.Title = *in.Title
	}
	if in.Price != nil {
		if !in.Price.IsPositive() {
			return nil, apperr.Validation("price must be a positive decimal")
		}
		item.Price = *in.Price
	}
	if in.CategoryID != nil {
		ok, err := s.Repo.CategoryExists(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperr.NotFound("category does not exist")
		}
		item.CategoryID = *in.CategoryID
	}
	if in.Featured != nil {
		item.Featured = *in.Featured
	}

	if err := s.Repo.SaveMenuItem(item); err != nil {
		return nil, err
	}
	return s.Repo.GetMenuItem(item.ID)
}

// SetFeatured is the PATCH path: only the featured flag moves.
func (s *CatalogService) SetFeatured(id uint, featured *bool) (*entity.MenuItem, error) {
	if featured == nil {
		return nil, apperr.Validation("status field is required")
	}
	if _, err := s.Repo.GetMenuItem(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("menu item not found")
		}
		return nil, err
	}
	if err := s.Repo.UpdateFeatured(id, *featured); err != nil {
		return nil, err
	}
	return s.Repo.GetMenuItem(id)
}

// ExportXLSX writes the whole menu as a spreadsheet, one row per item.
func (s *CatalogService) ExportXLSX(w io.Writer) error {
	items, _, err := s.Repo.ListMenuItems(repository.MenuItemQuery{})
	if err != nil {
		return err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Menu")
	if err != nil {
		return err
	}

	header := sheet.AddRow()
	for _, h := range []string{"ID", "Title", "Price", "Category", "Featured"} {
		header.AddCell().SetString(h)
	}
	for _, it := range items {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(it.ID))
		row.AddCell().SetString(it.Title)
		row.AddCell().SetString(it.Price.StringFixed(2))
		row.AddCell().SetString(it.Category.Title)
		row.AddCell().SetBool(it.Featured)
	}

	return file.Write(w)
}
