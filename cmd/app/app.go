package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"github.com/unimeet/unimeet-api/internal/adapters/config"
	httpController "github.com/unimeet/unimeet-api/internal/adapters/controller/http"
	"github.com/unimeet/unimeet-api/internal/adapters/controller/http/handlers"
	"github.com/unimeet/unimeet-api/internal/adapters/database/postgres"
	"github.com/unimeet/unimeet-api/internal/adapters/database/redis"
	"github.com/unimeet/unimeet-api/internal/adapters/logger"
	"github.com/unimeet/unimeet-api/internal/domain/service"
	"github.com/unimeet/unimeet-api/pkg/jwt"
	"github.com/unimeet/unimeet-api/pkg/smtp"
)

type App struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Logger *logger.Logger

	notifyService *service.NotifyService
	router        *gin.Engine
	addr          string
}

func New(cfg *config.Config) (*App, error) {
	appLogger, err := logger.Named("app")
	if err != nil {
		return nil, err
	}

	smtpClient := smtp.NewClient(
		cfg.SMTPDialer,
		viper.GetString("service.smtp.from"),
		viper.GetString("service.smtp.domain"),
	)
	jwtManager := jwt.NewManager(viper.GetString("service.auth.jwt-secret"))

	userStorage := postgres.NewUserStorage(cfg.Database)
	clubStorage := postgres.NewClubStorage(cfg.Database)
	memberStorage := postgres.NewClubMemberStorage(cfg.Database)
	eventStorage := postgres.NewEventStorage(cfg.Database)
	attendeeStorage := postgres.NewEventAttendeeStorage(cfg.Database)
	favoriteStorage := postgres.NewFavoriteEventStorage(cfg.Database)
	notificationStorage := postgres.NewNotificationStorage(cfg.Database)

	notifyLogger, err := logger.Named("notify")
	if err != nil {
		return nil, err
	}

	clientBaseURL := viper.GetString("service.client-base-url")

	notifyService := service.NewNotifyService(
		eventStorage, clubStorage, memberStorage, notificationStorage,
		smtpClient, clientBaseURL, notifyLogger,
	)
	userService := service.NewUserService(
		userStorage, cfg.Redis.Tokens, cfg.Redis.Codes, smtpClient, jwtManager,
		viper.GetString("service.auth.allowed-email-domain"),
		clientBaseURL, appLogger,
	)
	clubService := service.NewClubService(clubStorage, memberStorage)
	membershipService := service.NewMembershipService(memberStorage, eventStorage, attendeeStorage)
	eventService := service.NewEventService(
		eventStorage, attendeeStorage, favoriteStorage,
		memberStorage, clubStorage, userStorage, notifyService,
	)
	recommendationService := service.NewRecommendationService(
		clubStorage, memberStorage, attendeeStorage, eventStorage,
	)

	router := httpController.NewRouter(jwtManager, httpController.Handlers{
		Auth:  handlers.NewAuthHandler(userService),
		Club:  handlers.NewClubHandler(clubService, membershipService),
		Event: handlers.NewEventHandler(eventService, recommendationService),
		Admin: handlers.NewAdminHandler(userService, notifyService),
	}, viper.GetBool("settings.debug"))

	return &App{
		DB:            cfg.Database,
		Redis:         cfg.Redis,
		Logger:        appLogger,
		notifyService: notifyService,
		addr: fmt.Sprintf("%s:%d",
			viper.GetString("service.http.host"),
			viper.GetInt("service.http.port"),
		),
		router: router,
	}, nil
}

// Start runs the notification worker and then serves HTTP until the process
// is stopped.
func (a *App) Start(ctx context.Context) error {
	a.notifyService.Start(ctx)
	a.Logger.Infof("listening on %s", a.addr)
	return a.router.Run(a.addr)
}
