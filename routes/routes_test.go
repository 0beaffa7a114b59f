package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PeterHwu/bar-api/configs"
	"github.com/PeterHwu/bar-api/entity"
	"github.com/PeterHwu/bar-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "testsecret"

func setupServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

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
		t.Fatalf("migrate: %v", err)
	}

	cfg := &configs.Config{
		JWTSecret:        testSecret,
		JWTTTL:           time.Hour,
		ClearCartOnOrder: true,
	}
	r := gin.New()
	RegisterRoutes(r, db, cfg)
	return r, db
}

func seedUser(t *testing.T, db *gorm.DB, username string, role entity.Role) (*entity.User, string) {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	u := &entity.User{Username: username, Password: string(hash), Role: role}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	token, err := utils.GenerateToken(u.ID, role, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("token for %s: %v", username, err)
	}
	return u, token
}

func seedMenuItem(t *testing.T, db *gorm.DB, title, price string) *entity.MenuItem {
	t.Helper()
	cat := entity.Category{Slug: strings.ToLower(title), Title: title + " Category"}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	m := &entity.MenuItem{Title: title, Price: decimal.RequireFromString(price), CategoryID: cat.ID}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("seed menu item: %v", err)
	}
	return m
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticationAndAuthorizationGates(t *testing.T) {
	r, db := setupServer(t)
	_, customerToken := seedUser(t, db, "alice", entity.RoleCustomer)

	// no principal at all
	w := doJSON(t, r, http.MethodGet, "/cart/menu-items", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	// garbage token
	w = doJSON(t, r, http.MethodGet, "/cart/menu-items", "not-a-jwt", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", w.Code)
	}

	// authenticated but role-forbidden: customer creating a menu item
	w = doJSON(t, r, http.MethodPost, "/menu-items", customerToken, gin.H{
		"title": "Pasta", "price": "9.99", "category": 1,
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-manager create, got %d", w.Code)
	}
	var count int64
	db.Model(&entity.MenuItem{}).Count(&count)
	if count != 0 {
		t.Fatalf("forbidden create must not persist a menu item")
	}
}

func TestCustomerOrderFlow(t *testing.T) {
	r, db := setupServer(t)
	_, aliceToken := seedUser(t, db, "alice", entity.RoleCustomer)
	item := seedMenuItem(t, db, "Pasta", "9.99")

	// empty cart signal
	w := doJSON(t, r, http.MethodGet, "/cart/menu-items", aliceToken, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for empty cart, got %d", w.Code)
	}

	// placing from an empty cart fails and creates nothing
	w = doJSON(t, r, http.MethodPost, "/cart/orders", aliceToken, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty-cart order, got %d", w.Code)
	}
	var orders int64
	db.Model(&entity.Order{}).Count(&orders)
	if orders != 0 {
		t.Fatalf("empty-cart order persisted")
	}

	// add 2 x 9.99
	w = doJSON(t, r, http.MethodPost, "/cart/menu-items", aliceToken, gin.H{
		"menuitem_id": item.ID, "quantity": 2,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for new cart line, got %d: %s", w.Code, w.Body)
	}
	var lineResp struct {
		Data struct {
			User      string          `json:"user"`
			Quantity  int             `json:"quantity"`
			UnitPrice decimal.Decimal `json:"unit_price"`
			LinePrice decimal.Decimal `json:"line_price"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &lineResp); err != nil {
		t.Fatalf("decode line: %v", err)
	}
	if lineResp.Data.User != "alice" || lineResp.Data.Quantity != 2 {
		t.Fatalf("line wrong: %+v", lineResp.Data)
	}
	if !lineResp.Data.UnitPrice.Equal(decimal.RequireFromString("9.99")) ||
		!lineResp.Data.LinePrice.Equal(decimal.RequireFromString("19.98")) {
		t.Fatalf("line prices wrong: %+v", lineResp.Data)
	}

	// same item again merges, 200 not 201
	w = doJSON(t, r, http.MethodPost, "/cart/menu-items", aliceToken, gin.H{
		"menuitem_id": item.ID, "quantity": 1,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for merged line, got %d", w.Code)
	}

	// place the order
	w = doJSON(t, r, http.MethodPost, "/cart/orders", aliceToken, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for order, got %d: %s", w.Code, w.Body)
	}
	var orderResp struct {
		Data struct {
			ID    uint            `json:"id"`
			Total decimal.Decimal `json:"total"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &orderResp); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if !orderResp.Data.Total.Equal(decimal.RequireFromString("29.97")) {
		t.Fatalf("order total expected 29.97, got %s", orderResp.Data.Total)
	}

	// cart cleared by the order transaction
	w = doJSON(t, r, http.MethodGet, "/cart/menu-items", aliceToken, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("cart should be empty after placing, got %d", w.Code)
	}

	// order shows up in the customer's list
	w = doJSON(t, r, http.MethodGet, "/cart/orders", aliceToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for order list, got %d", w.Code)
	}
}

func TestAssignCrewAndStatusUpdate(t *testing.T) {
	r, db := setupServer(t)
	_, aliceToken := seedUser(t, db, "alice", entity.RoleCustomer)
	_, bobToken := seedUser(t, db, "bob", entity.RoleDelivery)
	_, malloryToken := seedUser(t, db, "mallory", entity.RoleDelivery)
	_, managerToken := seedUser(t, db, "mgr", entity.RoleManager)
	item := seedMenuItem(t, db, "Pasta", "9.99")

	doJSON(t, r, http.MethodPost, "/cart/menu-items", aliceToken, gin.H{"menuitem_id": item.ID, "quantity": 1})
	w := doJSON(t, r, http.MethodPost, "/cart/orders", aliceToken, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("place: %d", w.Code)
	}
	var placed struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &placed); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// customers cannot assign crew
	w = doJSON(t, r, http.MethodPost, "/assign-delivery-crew", aliceToken, gin.H{
		"order_username": "alice", "delivery_crew_username": "bob",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer assign, got %d", w.Code)
	}

	// manager assigns bob
	w = doJSON(t, r, http.MethodPost, "/assign-delivery-crew", managerToken, gin.H{
		"order_username": "alice", "delivery_crew_username": "bob",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("assign: %d %s", w.Code, w.Body)
	}

	// assigning a nonexistent crew member fails and changes nothing
	w = doJSON(t, r, http.MethodPost, "/assign-delivery-crew", managerToken, gin.H{
		"order_username": "alice", "delivery_crew_username": "ghost",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown crew, got %d", w.Code)
	}

	// mallory was never assigned: her list is empty and her PATCH is rejected
	w = doJSON(t, r, http.MethodGet, "/orders", malloryToken, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for unassigned crew list, got %d", w.Code)
	}
	patch := fmt.Sprintf("/orders/%d", placed.Data.ID)
	w = doJSON(t, r, http.MethodPatch, patch, malloryToken, gin.H{"status": true})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-assigned crew patch, got %d", w.Code)
	}

	// bob sees the order and delivers it
	w = doJSON(t, r, http.MethodGet, "/orders", bobToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("assigned crew list: %d", w.Code)
	}
	w = doJSON(t, r, http.MethodPatch, patch, bobToken, gin.H{"status": true})
	if w.Code != http.StatusOK {
		t.Fatalf("assigned crew patch: %d %s", w.Code, w.Body)
	}

	var order entity.Order
	db.First(&order, placed.Data.ID)
	if !order.Status {
		t.Fatalf("order not marked delivered")
	}

	// missing status field on the patch body
	w = doJSON(t, r, http.MethodPatch, patch, bobToken, gin.H{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing status, got %d", w.Code)
	}

	// admins pass the gate and may touch any order
	_, adminToken := seedUser(t, db, "root", entity.RoleAdmin)
	w = doJSON(t, r, http.MethodPatch, patch, adminToken, gin.H{"status": false})
	if w.Code != http.StatusOK {
		t.Fatalf("admin patch: %d %s", w.Code, w.Body)
	}
	db.First(&order, placed.Data.ID)
	if order.Status {
		t.Fatalf("admin update not applied")
	}
}

func TestManagerCatalogEndpoints(t *testing.T) {
	r, db := setupServer(t)
	_, managerToken := seedUser(t, db, "mgr", entity.RoleManager)

	w := doJSON(t, r, http.MethodPost, "/categories", managerToken, gin.H{
		"slug": "mains", "title": "Mains",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create category: %d %s", w.Code, w.Body)
	}
	var cat struct {
		Data entity.Category `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &cat); err != nil {
		t.Fatalf("decode category: %v", err)
	}

	w = doJSON(t, r, http.MethodPost, "/menu-items", managerToken, gin.H{
		"title": "Pasta", "price": "9.99", "category": cat.Data.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create menu item: %d %s", w.Code, w.Body)
	}

	// featured PATCH with required status field
	w = doJSON(t, r, http.MethodPatch, "/menu-items/1", managerToken, gin.H{"status": true})
	if w.Code != http.StatusOK {
		t.Fatalf("patch featured: %d %s", w.Code, w.Body)
	}
	var item entity.MenuItem
	db.First(&item, 1)
	if !item.Featured {
		t.Fatalf("featured flag not persisted")
	}

	w = doJSON(t, r, http.MethodGet, "/menu-items/export", managerToken, nil)
	if w.Code != http.StatusOK || w.Body.Len() == 0 {
		t.Fatalf("export: %d, %d bytes", w.Code, w.Body.Len())
	}
}

func TestGroupEndpoints(t *testing.T) {
	r, db := setupServer(t)
	_, adminToken := seedUser(t, db, "root", entity.RoleAdmin)
	_, managerToken := seedUser(t, db, "mgr", entity.RoleManager)
	seedUser(t, db, "alice", entity.RoleCustomer)

	// managers are not admins here
	w := doJSON(t, r, http.MethodPost, "/groups/manager/users", managerToken, gin.H{"username": "alice"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for manager, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/groups/manager/users", adminToken, gin.H{"username": "alice"})
	if w.Code != http.StatusOK {
		t.Fatalf("promote: %d %s", w.Code, w.Body)
	}
	var alice entity.User
	db.Where("username = ?", "alice").First(&alice)
	if alice.Role != entity.RoleManager {
		t.Fatalf("role not updated: %s", alice.Role)
	}

	w = doJSON(t, r, http.MethodGet, "/groups/manager/users", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("members: %d", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, "/groups/manager/users", adminToken, gin.H{"username": "alice"})
	if w.Code != http.StatusOK {
		t.Fatalf("demote: %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/groups/delivery/users", adminToken, gin.H{"username": "ghost"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d", w.Code)
	}
}
