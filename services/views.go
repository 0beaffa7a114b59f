package services

import (
	"time"

	"github.com/PeterHwu/bar-api/entity"
	"github.com/shopspring/decimal"
)

// Response shapes: user references come out as usernames, menu items are
// embedded in cart and order item rows.

type CartLineView struct {
	ID        uint            `json:"id"`
	User      string          `json:"user"`
	MenuItem  entity.MenuItem `json:"menuitem"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LinePrice decimal.Decimal `json:"line_price"`
}

func newCartLineView(line *entity.CartLine, username string) CartLineView {
	return CartLineView{
		ID:        line.ID,
		User:      username,
		MenuItem:  line.MenuItem,
		Quantity:  line.Quantity,
		UnitPrice: line.UnitPrice,
		LinePrice: line.LinePrice,
	}
}

type OrderView struct {
	ID           uint            `json:"id"`
	OrderRef     string          `json:"order_ref"`
	User         string          `json:"user"`
	DeliveryCrew *string         `json:"delivery_crew"`
	Status       bool            `json:"status"`
	Total        decimal.Decimal `json:"total"`
	Date         time.Time       `json:"date"`
}

func newOrderView(o *entity.Order) OrderView {
	v := OrderView{
		ID:       o.ID,
		OrderRef: o.OrderRef,
		User:     o.User.Username,
		Status:   o.Status,
		Total:    o.Total,
		Date:     o.Date,
	}
	if o.DeliveryCrew != nil {
		name := o.DeliveryCrew.Username
		v.DeliveryCrew = &name
	}
	return v
}

func newOrderViews(orders []entity.Order) []OrderView {
	out := make([]OrderView, 0, len(orders))
	for i := range orders {
		out = append(out, newOrderView(&orders[i]))
	}
	return out
}
