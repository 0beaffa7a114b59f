package repository

import (
	"github.com/PeterHwu/bar-api/entity"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) UpdateTotal(tx *gorm.DB, orderID uint, total decimal.Decimal) error {
	return tx.Model(&entity.Order{}).Where("id = ?", orderID).Update("total", total).Error
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Preload("User").Preload("DeliveryCrew").First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// LatestForUser picks the most recent order for the user: newest date first,
// highest id breaking same-date ties.
func (r *OrderRepository) LatestForUser(userID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.Where("user_id = ?", userID).
		Order("date DESC").Order("id DESC").
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) ListForUser(userID uint) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.Where("user_id = ?", userID).
		Preload("User").Preload("DeliveryCrew").
		Order("id DESC").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) ListForCrew(crewID uint) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.Where("delivery_crew_id = ?", crewID).
		Preload("User").Preload("DeliveryCrew").
		Order("id DESC").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) ListAll() ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.Preload("User").Preload("DeliveryCrew").
		Order("id DESC").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) GetOrderItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Where("order_id = ?", orderID).
		Preload("MenuItem").
		Preload("MenuItem.Category").
		Order("id").
		Find(&items).Error
	return items, err
}

func (r *OrderRepository) AssignCrew(orderID, crewID uint) error {
	return r.DB.Model(&entity.Order{}).Where("id = ?", orderID).
		Update("delivery_crew_id", crewID).Error
}

func (r *OrderRepository) UpdateStatus(orderID uint, status bool) error {
	return r.DB.Model(&entity.Order{}).Where("id = ?", orderID).
		Update("status", status).Error
}
