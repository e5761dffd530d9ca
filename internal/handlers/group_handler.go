package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "borrowtrack/internal/errors"
	"borrowtrack/internal/services"
)

// GroupHandler handles group-related requests.
type GroupHandler struct {
	groupService services.GroupServicer
	auditService services.AuditServicer
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groupService services.GroupServicer, auditService services.AuditServicer) *GroupHandler {
	return &GroupHandler{groupService: groupService, auditService: auditService}
}

// CreateGroupRequest represents the request payload for creating a group
type CreateGroupRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// GroupResponse represents a group in the response
type GroupResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateGroup handles the creation of a new group
// @Summary     Create a group
// @Description Create a new customer group for the authenticated user
// @Tags        groups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateGroupRequest true "Group details"
// @Success     201 {object} GroupResponse "Group created"
// @Failure     400 {object} ErrorResponse "Invalid input or duplicate name"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /groups [post]
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	group, err := h.groupService.CreateGroup(userID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_GROUP", "group", group.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusCreated, gin.H{"group": group})
}

// GetGroups handles the retrieval of all groups for the authenticated user
// @Summary     List groups
// @Description Get all customer groups for the authenticated user, ordered by name
// @Tags        groups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} GroupResponse "Groups"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /groups [get]
func (h *GroupHandler) GetGroups(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	groups, err := h.groupService.GetUserGroups(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// GetGroupByID handles the retrieval of a specific group
// @Summary     Get group by ID
// @Description Get a specific group by ID
// @Tags        groups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Group ID"
// @Success     200 {object} GroupResponse "Group details"
// @Failure     400 {object} ErrorResponse "Invalid group ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Group not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /groups/{id} [get]
func (h *GroupHandler) GetGroupByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	groupID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	group, err := h.groupService.GetGroupByID(userID, groupID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"group": group})
}
