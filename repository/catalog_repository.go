package repository

import (
	"github.com/PeterHwu/bar-api/entity"
	"gorm.io/gorm"
)

type CatalogRepository struct{ DB *gorm.DB }

func NewCatalogRepository(db *gorm.DB) *CatalogRepository { return &CatalogRepository{DB: db} }

// ---------------- Categories ----------------

func (r *CatalogRepository) ListCategories() ([]entity.Category, error) {
	var cats []entity.Category
	err := r.DB.Order("id").Find(&cats).Error
	return cats, err
}

func (r *CatalogRepository) CreateCategory(c *entity.Category) error {
	return r.DB.Create(c).Error
}

func (r *CatalogRepository) CountCategoryBySlug(slug string) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.Category{}).Where("slug = ?", slug).Count(&count).Error
	return count, err
}

func (r *CatalogRepository) CategoryExists(id uint) (bool, error) {
	var count int64
	if err := r.DB.Model(&entity.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ---------------- Menu items ----------------

// MenuItemQuery carries the list filters the menu endpoint accepts.
type MenuItemQuery struct {
	Ordering     string // "", "price" or "-price"
	CategoryName string // case-insensitive exact title match
	Page         int
	PageSize     int
}

func (r *CatalogRepository) ListMenuItems(q MenuItemQuery) ([]entity.MenuItem, int64, error) {
	db := r.DB.Model(&entity.MenuItem{}).Preload("Category")

	if q.CategoryName != "" {
		db = db.Joins("JOIN categories ON categories.id = menu_items.category_id").
			Where("LOWER(categories.title) = LOWER(?)", q.CategoryName)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch q.Ordering {
	case "price":
		db = db.Order("price ASC")
	case "-price":
		db = db.Order("price DESC")
	default:
		db = db.Order("menu_items.id")
	}

	if q.PageSize > 0 {
		offset := 0
		if q.Page > 1 {
			offset = (q.Page - 1) * q.PageSize
		}
		db = db.Limit(q.PageSize).Offset(offset)
	}

	var items []entity.MenuItem
	err := db.Find(&items).Error
	return items, total, err
}

func (r *CatalogRepository) GetMenuItem(id uint) (*entity.MenuItem, error) {
	var m entity.MenuItem
	if err := r.DB.Preload("Category").First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *CatalogRepository) CreateMenuItem(m *entity.MenuItem) error {
	return r.DB.Create(m).Error
}

func (r *CatalogRepository) SaveMenuItem(m *entity.MenuItem) error {
	return r.DB.Save(m).Error
}

func (r *CatalogRepository) UpdateFeatured(id uint, featured bool) error {
	return r.DB.Model(&entity.MenuItem{}).Where("id = ?", id).Update("featured", featured).Error
}
