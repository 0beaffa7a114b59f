package controllers

import (
	"github.com/PeterHwu/bar-api/pkg/resp"
	"github.com/PeterHwu/bar-api/services"
	"github.com/PeterHwu/bar-api/utils"
	"github.com/gin-gonic/gin"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

func principal(c *gin.Context) services.Principal {
	return services.Principal{UserID: utils.CurrentUserID(c), Role: utils.CurrentRole(c)}
}

// GET /cart/menu-items
func (h *CartController) List(c *gin.Context) {
	lines, err := h.Svc.List(principal(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	// empty cart is a signal, not an error
	if len(lines) == 0 {
		resp.NoContent(c)
		return
	}
	resp.OK(c, lines)
}

// POST /cart/menu-items adds or merges a line
func (h *CartController) Add(c *gin.Context) {
	var req services.AddToCartIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "menuitem_id and quantity are required")
		return
	}
	line, created, err := h.Svc.Add(principal(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	if created {
		resp.Created(c, line)
		return
	}
	resp.OK(c, line)
}

// DELETE /cart/menu-items
func (h *CartController) Clear(c *gin.Context) {
	if err := h.Svc.Clear(principal(c)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.NoContent(c)
}
