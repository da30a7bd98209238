package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unimeet/unimeet-api/internal/adapters/controller/http/middlewares"
	"github.com/unimeet/unimeet-api/internal/domain/service"
)

type EventHandler struct {
	eventService          *service.EventService
	recommendationService *service.RecommendationService
}

func NewEventHandler(eventService *service.EventService, recommendationService *service.RecommendationService) *EventHandler {
	return &EventHandler{
		eventService:          eventService,
		recommendationService: recommendationService,
	}
}

type eventReq struct {
	ClubID      uint       `json:"clubId" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Location    string     `json:"location" binding:"required"`
	StartAt     time.Time  `json:"startAt" binding:"required"`
	EndAt       *time.Time `json:"endAt"`
	Quota       int        `json:"quota" binding:"required"`
	Description string     `json:"description"`
	IsPublic    *bool      `json:"isPublic"`
}

func (r eventReq) toInput() service.EventInput {
	isPublic := true
	if r.IsPublic != nil {
		isPublic = *r.IsPublic
	}
	return service.EventInput{
		ClubID:      r.ClubID,
		Title:       r.Title,
		Location:    r.Location,
		StartAt:     r.StartAt,
		EndAt:       r.EndAt,
		Quota:       r.Quota,
		Description: r.Description,
		IsPublic:    isPublic,
	}
}

func (h *EventHandler) Create(c *gin.Context) {
	var req eventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), middlewares.UserID(c), req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req eventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	event, err := h.eventService.Update(c.Request.Context(), middlewares.UserID(c), id, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// Cancel handles DELETE; events are only ever soft-cancelled.
func (h *EventHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.eventService.Cancel(c.Request.Context(), middlewares.UserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *EventHandler) GetAll(c *gin.Context) {
	events, err := h.eventService.GetAll(c.Request.Context(), middlewares.UserID(c), boolQuery(c, "includeCancelled"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	event, err := h.eventService.Get(c.Request.Context(), middlewares.UserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Feed(c *gin.Context) {
	events, err := h.eventService.Feed(
		c.Request.Context(), middlewares.UserID(c),
		boolQuery(c, "upcomingOnly"), boolQuery(c, "includeCancelled"),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) Upcoming(c *gin.Context) {
	events, err := h.eventService.Upcoming(c.Request.Context(), middlewares.UserID(c), boolQuery(c, "includeCancelled"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) Join(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.eventService.Join(c.Request.Context(), middlewares.UserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *EventHandler) Leave(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.eventService.Leave(c.Request.Context(), middlewares.UserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *EventHandler) AddFavorite(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.eventService.AddFavorite(c.Request.Context(), middlewares.UserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *EventHandler) RemoveFavorite(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.eventService.RemoveFavorite(c.Request.Context(), middlewares.UserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *EventHandler) Favorites(c *gin.Context) {
	events, err := h.eventService.Favorites(c.Request.Context(), middlewares.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) Recommendations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if limit < 0 {
		limit = 0
	}

	events, err := h.recommendationService.GetRecommendations(c.Request.Context(), middlewares.UserID(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func boolQuery(c *gin.Context, name string) bool {
	return c.Query(name) == "true"
}
