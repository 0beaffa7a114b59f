package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/PeterHwu/bar-api/entity"
	"github.com/PeterHwu/bar-api/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens an isolated in-memory database per test. The shared-cache
// name keeps all pooled connections on the same database.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Category{}, &entity.MenuItem{},
		&entity.CartLine{},
		&entity.Order{}, &entity.OrderItem{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string, role entity.Role) *entity.User {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	u := &entity.User{Username: username, Password: string(hash), Role: role}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func createCategory(t *testing.T, db *gorm.DB, slug, title string) *entity.Category {
	t.Helper()
	c := &entity.Category{Slug: slug, Title: title}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("create category %s: %v", slug, err)
	}
	return c
}

func createMenuItem(t *testing.T, db *gorm.DB, title, price string, categoryID uint) *entity.MenuItem {
	t.Helper()
	m := &entity.MenuItem{
		Title:      title,
		Price:      decimal.RequireFromString(price),
		CategoryID: categoryID,
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("create menu item %s: %v", title, err)
	}
	return m
}

func newCartService(db *gorm.DB) *CartService {
	return NewCartService(db,
		repository.NewCartRepository(db),
		repository.NewCatalogRepository(db),
		repository.NewUserRepository(db))
}

func newOrderService(db *gorm.DB, clearCart bool) *OrderService {
	return NewOrderService(db,
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewUserRepository(db),
		clearCart)
}

func asPrincipal(u *entity.User) Principal {
	return Principal{UserID: u.ID, Role: u.Role}
}
