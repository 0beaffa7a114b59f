package controllers

import (
	"net/http"

	"github.com/PeterHwu/bar-api/entity"
	"github.com/PeterHwu/bar-api/pkg/resp"
	"github.com/PeterHwu/bar-api/services"
	"github.com/gin-gonic/gin"
)

type GroupController struct{ Svc *services.GroupService }

func NewGroupController(s *services.GroupService) *GroupController { return &GroupController{Svc: s} }

type groupMemberIn struct {
	Username string `json:"username" binding:"required"`
}

// GET /groups/:role/users
func (h *GroupController) Members(c *gin.Context) {
	users, err := h.Svc.Members(c.Param("role"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	if len(users) == 0 {
		resp.NoContent(c)
		return
	}
	resp.OK(c, users)
}

// POST /groups/manager/users
func (h *GroupController) AddManager(c *gin.Context) {
	var req groupMemberIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	msg, err := h.Svc.Promote(req.Username, entity.RoleManager)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Message(c, http.StatusOK, msg)
}

// DELETE /groups/manager/users
func (h *GroupController) RemoveManager(c *gin.Context) {
	var req groupMemberIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	msg, err := h.Svc.Demote(req.Username)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Message(c, http.StatusOK, msg)
}

// POST /groups/delivery/users
func (h *GroupController) AddDelivery(c *gin.Context) {
	var req groupMemberIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	msg, err := h.Svc.Promote(req.Username, entity.RoleDelivery)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Message(c, http.StatusOK, msg)
}
