package services

import (
	"errors"
	"time"

	"github.com/PeterHwu/bar-api/entity"
	"github.com/PeterHwu/bar-api/pkg/apperr"
	"github.com/PeterHwu/bar-api/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	CartRepo *repository.CartRepository
	UserRepo *repository.UserRepository

	// ClearCartOnOrder empties the cart in the same transaction that creates
	// the order. On by default; the retention mode exists for backward
	// compatibility with clients that re-read the cart after checkout.
	ClearCartOnOrder bool
}

func NewOrderService(db *gorm.DB, repo *repository.OrderRepository, cartRepo *repository.CartRepository, userRepo *repository.UserRepository, clearCart bool) *OrderService {
	return &OrderService{DB: db, Repo: repo, CartRepo: cartRepo, UserRepo: userRepo, ClearCartOnOrder: clearCart}
}

func newOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

type PlacedOrder struct {
	ID       uint            `json:"id"`
	OrderRef string          `json:"order_ref"`
	Total    decimal.Decimal `json:"total"`
}

// Place converts the user's cart into an order. The cart is read inside the
// same transaction that writes the order, and only the lines that were
// snapshotted get removed, so a line added concurrently is neither lost nor
// half-ordered.
func (s *OrderService) Place(p Principal) (*PlacedOrder, error) {
	var out PlacedOrder
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		lines, err := s.CartRepo.LinesIn(tx, p.UserID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return apperr.Workflow("cart is empty")
		}

		order := entity.Order{
			OrderRef: newOrderRef(),
			UserID:   p.UserID,
			Status:   false,
			Total:    decimal.Zero,
			Date:     time.Now(),
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		total := decimal.Zero
		for _, line := range lines {
			// Preload of a deleted menu item leaves the zero value behind.
			if line.MenuItem.ID == 0 {
				return apperr.Workflow("menu item in cart is no longer available")
			}
			oi := entity.OrderItem{
				OrderID:    order.ID,
				MenuItemID: line.MenuItemID,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
				LinePrice:  line.LinePrice,
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
			total = total.Add(line.LinePrice)
		}

		if err := s.Repo.UpdateTotal(tx, order.ID, total); err != nil {
			return err
		}

		if s.ClearCartOnOrder {
			ids := make([]uint, 0, len(lines))
			for _, line := range lines {
				ids = append(ids, line.ID)
			}
			if err := s.CartRepo.RemoveLines(tx, ids); err != nil {
				return err
			}
		}

		out = PlacedOrder{ID: order.ID, OrderRef: order.OrderRef, Total: total}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type AssignCrewIn struct {
	OrderUsername        string `json:"order_username"`
	DeliveryCrewUsername string `json:"delivery_crew_username"`
}

// AssignCrew attaches a delivery crew member to the customer's most recent
// order. The assignee must actually hold the delivery role.
func (s *OrderService) AssignCrew(in *AssignCrewIn) (*OrderView, error) {
	if in.OrderUsername == "" {
		return nil, apperr.Validation("order username is required")
	}
	if in.DeliveryCrewUsername == "" {
		return nil, apperr.Validation("delivery crew username is required")
	}

	customer, err := s.UserRepo.FindByUsername(in.OrderUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user does not exist")
		}
		return nil, err
	}

	order, err := s.Repo.LatestForUser(customer.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("no orders found for user " + customer.Username)
		}
		return nil, err
	}

	crew, err := s.UserRepo.FindByUsername(in.DeliveryCrewUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("delivery crew user does not exist")
		}
		return nil, err
	}
	if !crew.IsDelivery() {
		return nil, apperr.Workflow("user " + crew.Username + " is not in the delivery crew")
	}

	if err := s.Repo.AssignCrew(order.ID, crew.ID); err != nil {
		return nil, err
	}

	updated, err := s.Repo.GetOrder(order.ID)
	if err != nil {
		return nil, err
	}
	view := newOrderView(updated)
	return &view, nil
}

type UpdateStatusIn struct {
	Status *bool `json:"status"`
}

// UpdateStatus flips the delivered flag on a single order fetched by id.
// Delivery crew may only touch orders assigned to them; managers and admins
// may touch any.
func (s *OrderService) UpdateStatus(p Principal, orderID uint, in *UpdateStatusIn) (*OrderView, error) {
	if in.Status == nil {
		return nil, apperr.Validation("status field is required")
	}

	order, err := s.Repo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, err
	}

	switch {
	case p.IsManager() || p.IsAdmin():
		// allowed on any order
	case p.IsDelivery():
		if order.DeliveryCrewID == nil || *order.DeliveryCrewID != p.UserID {
			return nil, apperr.Forbidden("order is not assigned to you")
		}
	default:
		return nil, apperr.Forbidden("only delivery crew or managers can update order status")
	}

	if err := s.Repo.UpdateStatus(order.ID, *in.Status); err != nil {
		return nil, err
	}

	updated, err := s.Repo.GetOrder(order.ID)
	if err != nil {
		return nil, err
	}
	view := newOrderView(updated)
	return &view, nil
}

// ListForCustomer returns only the principal's own orders.
func (s *OrderService) ListForCustomer(p Principal) ([]OrderView, error) {
	orders, err := s.Repo.ListForUser(p.UserID)
	if err != nil {
		return nil, err
	}
	return newOrderViews(orders), nil
}

// ListForCrew returns only orders assigned to the principal.
func (s *OrderService) ListForCrew(p Principal) ([]OrderView, error) {
	orders, err := s.Repo.ListForCrew(p.UserID)
	if err != nil {
		return nil, err
	}
	return newOrderViews(orders), nil
}

func (s *OrderService) ListAll() ([]OrderView, error) {
	orders, err := s.Repo.ListAll()
	if err != nil {
		return nil, err
	}
	return newOrderViews(orders), nil
}

// Items returns the snapshot rows of one order. Customers only see their
// own orders; other people's orders look absent, not forbidden.
func (s *OrderService) Items(p Principal, orderID uint) ([]entity.OrderItem, error) {
	order, err := s.Repo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, err
	}
	if p.IsCustomer() && order.UserID != p.UserID {
		return nil, apperr.NotFound("order not found")
	}
	return s.Repo.GetOrderItems(orderID)
}
