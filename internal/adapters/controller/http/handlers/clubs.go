package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/unimeet/unimeet-api/internal/adapters/controller/http/middlewares"
	"github.com/unimeet/unimeet-api/internal/domain/common/errorz"
	"github.com/unimeet/unimeet-api/internal/domain/dto"
	"github.com/unimeet/unimeet-api/internal/domain/entity"
	"github.com/unimeet/unimeet-api/internal/domain/service"
)

type ClubHandler struct {
	clubService       *service.ClubService
	membershipService *service.MembershipService
}

func NewClubHandler(clubService *service.ClubService, membershipService *service.MembershipService) *ClubHandler {
	return &ClubHandler{
		clubService:       clubService,
		membershipService: membershipService,
	}
}

func (h *ClubHandler) GetAll(c *gin.Context) {
	clubs, err := h.clubService.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clubs)
}

func (h *ClubHandler) GetAllDetailed(c *gin.Context) {
	clubs, err := h.clubService.GetAllDetailed(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clubs)
}

// GetAllWithFollowing answers anonymous callers with isFollowing=false on
// every club.
func (h *ClubHandler) GetAllWithFollowing(c *gin.Context) {
	clubs, err := h.clubService.GetAllWithFollowing(c.Request.Context(), middlewares.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clubs)
}

func (h *ClubHandler) GetJoined(c *gin.Context) {
	clubs, err := h.clubService.GetJoined(c.Request.Context(), middlewares.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clubs)
}

func (h *ClubHandler) GetProfile(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	profile, err := h.clubService.GetProfile(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = errorz.ErrClubNotFound
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ClubHandler) Follow(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.membershipService.Follow(c.Request.Context(), middlewares.UserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *ClubHandler) Unfollow(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.membershipService.Unfollow(c.Request.Context(), middlewares.UserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

type createClubReq struct {
	Name            string     `json:"name" binding:"required"`
	Description     string     `json:"description"`
	Purpose         string     `json:"purpose"`
	ProfileImageURL string     `json:"profileImageUrl"`
	FoundedDate     *time.Time `json:"foundedDate"`
	ManagerID       *uint      `json:"managerId"`
}

func (h *ClubHandler) Create(c *gin.Context) {
	var req createClubReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	club, err := h.clubService.Create(c.Request.Context(), &entity.Club{
		Name:            req.Name,
		Description:     req.Description,
		Purpose:         req.Purpose,
		ProfileImageURL: req.ProfileImageURL,
		FoundedDate:     req.FoundedDate,
		ManagerID:       req.ManagerID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewClubDetailedFromEntity(*club))
}

func (h *ClubHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.clubService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
