package http

import (
	"github.com/gin-gonic/gin"

	"github.com/unimeet/unimeet-api/internal/adapters/controller/http/handlers"
	"github.com/unimeet/unimeet-api/internal/adapters/controller/http/middlewares"
	"github.com/unimeet/unimeet-api/pkg/jwt"
)

type Handlers struct {
	Auth  *handlers.AuthHandler
	Club  *handlers.ClubHandler
	Event *handlers.EventHandler
	Admin *handlers.AdminHandler
}

func NewRouter(jwtManager *jwt.Manager, h Handlers, debug bool) *gin.Engine {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	auth := middlewares.Auth(jwtManager)
	optionalAuth := middlewares.OptionalAuth(jwtManager)

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/request-verification", h.Auth.RequestVerification)
		authGroup.GET("/verify-email", h.Auth.VerifyEmail)
		authGroup.POST("/set-password", h.Auth.SetPassword)
		authGroup.POST("/request-password-reset", h.Auth.RequestPasswordReset)
		authGroup.POST("/verify-reset-code", h.Auth.VerifyResetCode)
		authGroup.GET("/notification-preferences", auth, h.Auth.GetNotificationPreferences)
		authGroup.PUT("/notification-preferences", auth, h.Auth.UpdateNotificationPreferences)
	}

	clubGroup := r.Group("/api/clubs")
	{
		clubGroup.GET("", h.Club.GetAll)
		clubGroup.GET("/detailed", h.Club.GetAllDetailed)
		clubGroup.GET("/with-following", optionalAuth, h.Club.GetAllWithFollowing)
		clubGroup.GET("/joined", auth, h.Club.GetJoined)
		clubGroup.GET("/:id/profile", h.Club.GetProfile)
		clubGroup.POST("/:id/follow", auth, h.Club.Follow)
		clubGroup.DELETE("/:id/follow", auth, h.Club.Unfollow)
		clubGroup.POST("", auth, middlewares.RequireAdmin(), h.Club.Create)
		clubGroup.DELETE("/:id", auth, middlewares.RequireAdmin(), h.Club.Delete)
	}

	eventGroup := r.Group("/api/events")
	{
		eventGroup.GET("", optionalAuth, h.Event.GetAll)
		eventGroup.GET("/upcoming", auth, h.Event.Upcoming)
		eventGroup.GET("/feed", auth, h.Event.Feed)
		eventGroup.GET("/favorites", auth, h.Event.Favorites)
		eventGroup.GET("/recommendations", auth, h.Event.Recommendations)
		eventGroup.GET("/:id", optionalAuth, h.Event.Get)
		eventGroup.POST("", auth, h.Event.Create)
		eventGroup.PUT("/:id", auth, h.Event.Update)
		eventGroup.DELETE("/:id", auth, h.Event.Cancel)
		eventGroup.POST("/:id/join", auth, h.Event.Join)
		eventGroup.DELETE("/:id/join", auth, h.Event.Leave)
		eventGroup.POST("/:id/favorite", auth, h.Event.AddFavorite)
		eventGroup.DELETE("/:id/favorite", auth, h.Event.RemoveFavorite)
	}

	adminGroup := r.Group("/api/admin")
	adminGroup.Use(auth, middlewares.RequireAdmin())
	{
		adminGroup.GET("/users", h.Admin.GetUsers)
		adminGroup.POST("/users/:id/role", h.Admin.UpdateRole)
		adminGroup.POST("/users/:id/toggle-active", h.Admin.ToggleActive)
		adminGroup.GET("/notifications", h.Admin.GetNotifications)
		adminGroup.POST("/notifications/retry-failed", h.Admin.RetryFailedNotifications)
	}

	return r
}
