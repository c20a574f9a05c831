package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"splitledger/internal/middleware"
	"splitledger/internal/service"
)

type groupHandlers struct {
	groups *service.GroupService
}

func (h *groupHandlers) create(c *gin.Context) {
	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := h.groups.CreateGroup(c.Request.Context(), middleware.UserEmail(c), req.Name, req.Members)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toGroupResponse(group))
}

func (h *groupHandlers) list(c *gin.Context) {
	groups, err := h.groups.ListGroups(c.Request.Context(), middleware.UserEmail(c))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]groupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, toGroupResponse(g))
	}
	c.JSON(http.StatusOK, gin.H{"groups": out})
}

func (h *groupHandlers) get(c *gin.Context) {
	group, err := h.groups.GetGroup(c.Request.Context(), middleware.UserEmail(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGroupResponse(group))
}

func (h *groupHandlers) activity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	activities, err := h.groups.ListActivity(c.Request.Context(), middleware.UserEmail(c), c.Param("id"), limit)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]activityResponse, 0, len(activities))
	for _, a := range activities {
		out = append(out, toActivityResponse(a))
	}
	c.JSON(http.StatusOK, gin.H{"activity": out})
}
