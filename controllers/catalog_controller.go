package controllers

import (
	"strconv"

	"github.com/PeterHwu/bar-api/pkg/resp"
	"github.com/PeterHwu/bar-api/services"
	"github.com/gin-gonic/gin"
)

type CatalogController struct{ Svc *services.CatalogService }

func NewCatalogController(s *services.CatalogService) *CatalogController {
	return &CatalogController{Svc: s}
}

// GET /categories
func (h *CatalogController) ListCategories(c *gin.Context) {
	cats, err := h.Svc.ListCategories()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cats)
}

// POST /categories
func (h *CatalogController) CreateCategory(c *gin.Context) {
	var req services.CategoryIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cat, err := h.Svc.CreateCategory(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, cat)
}

// GET /menu-items?ordering=&category_name=&page=&page_size=
func (h *CatalogController) ListMenuItems(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))
	in := services.MenuItemListIn{
		Ordering:     c.Query("ordering"),
		CategoryName: c.Query("category_name"),
		Page:         page,
		PageSize:     pageSize,
	}
	out, err := h.Svc.ListMenuItems(&in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /menu-items
func (h *CatalogController) CreateMenuItem(c *gin.Context) {
	var req services.MenuItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := h.Svc.CreateMenuItem(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, item)
}

// PUT /menu-items/:id
func (h *CatalogController) UpdateMenuItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid menu item id")
		return
	}
	var req services.MenuItemUpdateIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := h.Svc.UpdateMenuItem(uint(id), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, item)
}

// PATCH /menu-items/:id updates the featured flag only
func (h *CatalogController) PatchFeatured(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid menu item id")
		return
	}
	var req struct {
		Status *bool `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := h.Svc.SetFeatured(uint(id), req.Status)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, item)
}

// GET /menu-items/export
func (h *CatalogController) ExportMenuItems(c *gin.Context) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="menu-items.xlsx"`)
	if err := h.Svc.ExportXLSX(c.Writer); err != nil {
		resp.Error(c, err)
		return
	}
}
