package services

import (
	"testing"

	"github.com/PeterHwu/bar-api/pkg/apperr"
	"github.com/shopspring/decimal"
)

func TestCartAddMergesRepeatedLines(t *testing.T) {
	db := testDB(t)
	alice := createUser(t, db, "alice", "customer")
	cat := createCategory(t, db, "drinks", "Drinks")
	item := createMenuItem(t, db, "Espresso", "3.50", cat.ID)

	svc := newCartService(db)
	p := asPrincipal(alice)

	for i := 0; i < 3; i++ {
		if _, _, err := svc.Add(p, &AddToCartIn{MenuItemID: item.ID, Quantity: 2}); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}

	lines, err := svc.List(p)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(lines))
	}
	if lines[0].Quantity != 6 {
		t.Fatalf("quantity expected 6, got %d", lines[0].Quantity)
	}
	want := decimal.RequireFromString("21.00")
	if !lines[0].LinePrice.Equal(want) {
		t.Fatalf("line price expected %s, got %s", want, lines[0].LinePrice)
	}
}

func TestCartAddKeepsSnapshotPriceOnMerge(t *testing.T) {
	db := testDB(t)
	alice := createUser(t, db, "alice", "customer")
	cat := createCategory(t, db, "drinks", "Drinks")
	item := createMenuItem(t, db, "Espresso", "3.50", cat.ID)

	svc := newCartService(db)
	p := asPrincipal(alice)

	if _, _, err := svc.Add(p, &AddToCartIn{MenuItemID: item.ID, Quantity: 1}); err != nil {
		t.Fatalf("first add: %v", err)
	}

	// catalog price change between adds must not move the recorded unit price
	if err := db.Model(item).Update("price", decimal.RequireFromString("9.00")).Error; err != nil {
		t.Fatalf("update price: %v", err)
	}
	if _, _, err := svc.Add(p, &AddToCartIn{MenuItemID: item.ID, Quantity: 2}); err != nil {
		t.Fatalf("second add: %v", err)
	}

	lines, err := svc.List(p)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !lines[0].UnitPrice.Equal(decimal.RequireFromString("3.50")) {
		t.Fatalf("unit price moved: %s", lines[0].UnitPrice)
	}
	if !lines[0].LinePrice.Equal(decimal.RequireFromString("10.50")) {
		t.Fatalf("line price expected 10.50, got %s", lines[0].LinePrice)
	}
}

func TestCartAddRejectsBadInput(t *testing.T) {
	db := testDB(t)
	alice := createUser(t, db, "alice", "customer")
	cat := createCategory(t, db, "drinks", "Drinks")
	item := createMenuItem(t, db, "Espresso", "3.50", cat.ID)

	svc := newCartService(db)
	p := asPrincipal(alice)

	if _, _, err := svc.Add(p, &AddToCartIn{MenuItemID: item.ID, Quantity: 0}); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for zero quantity, got %v", err)
	}
	if _, _, err := svc.Add(p, &AddToCartIn{MenuItemID: 9999, Quantity: 1}); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not-found error for missing item, got %v", err)
	}

	lines, err := svc.List(p)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("rejected adds must not create lines, got %d", len(lines))
	}
}

func TestCartListEmptyIsNotAnError(t *testing.T) {
	db := testDB(t)
	alice := createUser(t, db, "alice", "customer")

	svc := newCartService(db)
	lines, err := svc.List(asPrincipal(alice))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(lines))
	}
}

func TestCartAddAliceScenario(t *testing.T) {
	db := testDB(t)
	alice := createUser(t, db, "alice", "customer")
	cat := createCategory(t, db, "mains", "Mains")
	item := createMenuItem(t, db, "Pasta", "9.99", cat.ID)

	svc := newCartService(db)
	line, created, err := svc.Add(asPrincipal(alice), &AddToCartIn{MenuItemID: item.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !created {
		t.Fatalf("expected a new line")
	}
	if line.User != "alice" {
		t.Fatalf("user expected alice, got %s", line.User)
	}
	if !line.UnitPrice.Equal(decimal.RequireFromString("9.99")) {
		t.Fatalf("unit price expected 9.99, got %s", line.UnitPrice)
	}
	if !line.LinePrice.Equal(decimal.RequireFromString("19.98")) {
		t.Fatalf("line price expected 19.98, got %s", line.LinePrice)
	}
}
