package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/unimeet/unimeet-api/internal/domain/entity"
	"github.com/unimeet/unimeet-api/internal/domain/service"
)

type AdminHandler struct {
	userService   *service.UserService
	notifyService *service.NotifyService
}

func NewAdminHandler(userService *service.UserService, notifyService *service.NotifyService) *AdminHandler {
	return &AdminHandler{
		userService:   userService,
		notifyService: notifyService,
	}
}

func (h *AdminHandler) GetUsers(c *gin.Context) {
	users, err := h.userService.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

type updateRoleReq struct {
	Role          string `json:"role" binding:"required"`
	ManagedClubID *uint  `json:"managedClubId"`
}

func (h *AdminHandler) UpdateRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	role, ok := entity.ParseRole(req.Role)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "unknown role"})
		return
	}

	user, err := h.userService.UpdateRole(c.Request.Context(), id, role, req.ManagedClubID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) ToggleActive(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.ToggleActive(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetNotifications lists the notification audit trail with optional status,
// user and club filters.
func (h *AdminHandler) GetNotifications(c *gin.Context) {
	var filter entity.NotificationFilter

	if raw := c.Query("status"); raw != "" {
		status, ok := entity.ParseNotificationStatus(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "unknown status"})
			return
		}
		filter.Status = &status
	}
	if raw := c.Query("userId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid userId"})
			return
		}
		uid := uint(id)
		filter.UserID = &uid
	}
	if raw := c.Query("clubId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid clubId"})
			return
		}
		cid := uint(id)
		filter.ClubID = &cid
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize

	result, err := h.notifyService.ListLogs(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AdminHandler) RetryFailedNotifications(c *gin.Context) {
	count, err := h.notifyService.RetryFailed(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"retried": count})
}
