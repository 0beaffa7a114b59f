package controllers

import (
	"strconv"

	"github.com/PeterHwu/bar-api/pkg/resp"
	"github.com/PeterHwu/bar-api/services"
	"github.com/gin-gonic/gin"
)

type OrderController struct{ Svc *services.OrderService }

func NewOrderController(s *services.OrderService) *OrderController { return &OrderController{Svc: s} }

// POST /cart/orders places an order from the cart
func (h *OrderController) Place(c *gin.Context) {
	out, err := h.Svc.Place(principal(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, out)
}

// GET /cart/orders lists the customer's own orders
func (h *OrderController) ListMine(c *gin.Context) {
	orders, err := h.Svc.ListForCustomer(principal(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	if len(orders) == 0 {
		resp.NoContent(c)
		return
	}
	resp.OK(c, orders)
}

// GET /cart/orders/:id/items lists the snapshot rows of one of the customer's orders
func (h *OrderController) ListMyItems(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}
	items, err := h.Svc.Items(principal(c), uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, items)
}

// POST /assign-delivery-crew
func (h *OrderController) AssignCrew(c *gin.Context) {
	var req services.AssignCrewIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := h.Svc.AssignCrew(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}

// GET /orders lists orders assigned to the delivery crew principal
func (h *OrderController) ListAssigned(c *gin.Context) {
	orders, err := h.Svc.ListForCrew(principal(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	if len(orders) == 0 {
		resp.NoContent(c)
		return
	}
	resp.OK(c, orders)
}

// PATCH /orders/:id updates the delivered flag
func (h *OrderController) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}
	var req services.UpdateStatusIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := h.Svc.UpdateStatus(principal(c), uint(id), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}

// GET /manage/orders lists every order, for managers and admins
func (h *OrderController) ListAll(c *gin.Context) {
	orders, err := h.Svc.ListAll()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, orders)
}
