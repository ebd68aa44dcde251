package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Adam-Mik/Projekt-zespolowy/internal/delta"
	"github.com/Adam-Mik/Projekt-zespolowy/internal/middleware"
	"github.com/Adam-Mik/Projekt-zespolowy/internal/service"
)

// GroupHandler serves the /api/groups/ resource.
type GroupHandler struct {
	groups *service.GroupService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groups *service.GroupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

type groupRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// List handles GET /api/groups/?last_sync=<timestamp>.
// The watermark narrows the membership-scoped result set; an unparseable
// value falls back to a full snapshot.
func (h *GroupHandler) List(c *gin.Context) {
	watermark := delta.ParseWatermark(c.Query("last_sync"))

	groups, err := h.groups.List(c.Request.Context(), middleware.UserID(c), watermark)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, groups)
}

// Create handles POST /api/groups/. The creator auto-joins the group.
func (h *GroupHandler) Create(c *gin.Context) {
	var req groupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderBindError(c)
		return
	}

	group, err := h.groups.Create(c.Request.Context(), middleware.UserID(c), req.Name)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, group)
}

// Get handles GET /api/groups/{id}/. Non-members get a 404, never a 403.
func (h *GroupHandler) Get(c *gin.Context) {
	group, err := h.groups.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, group)
}

// Update handles PUT /api/groups/{id}/.
func (h *GroupHandler) Update(c *gin.Context) {
	var req groupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderBindError(c)
		return
	}

	group, err := h.groups.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Name, req.Members)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, group)
}

// Delete handles DELETE /api/groups/{id}/ as a soft delete.
func (h *GroupHandler) Delete(c *gin.Context) {
	if err := h.groups.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Balances handles GET /api/groups/{id}/balances/.
func (h *GroupHandler) Balances(c *gin.Context) {
	balances, settlements, err := h.groups.Balances(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"balances":    balances,
		"settlements": settlements,
	})
}
