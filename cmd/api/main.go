package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"famchat/internal/config"
	"famchat/internal/database"
	"famchat/internal/middleware"
	"famchat/internal/modules/auth"
	"famchat/internal/modules/bot"
	"famchat/internal/modules/calls"
	"famchat/internal/modules/chat"
	"famchat/internal/modules/notification"
	"famchat/internal/modules/profile"
	"famchat/internal/modules/status"
	jwtsvc "famchat/internal/pkg/jwt"
	"famchat/internal/pkg/media"
	"famchat/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	statusRepo := repository.NewStatusRepository(db)
	chatRepo := repository.NewChatRepository(db)
	callRepo := repository.NewCallRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	cleaner := media.NewCDNCleaner(cfg.MediaAPIBaseURL, cfg.MediaCloudName, cfg.MediaAPIKey, cfg.MediaAPISecret)
	broker := status.NewBroker()

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	statusService := status.NewService(statusRepo, userRepo, cleaner, broker, cfg.StatusTTL)
	statusHandler := status.NewHandler(statusService)
	statusWS := status.NewWSHandler(statusService, j, cfg.FeedRefreshInterval)

	notifService := notification.NewService(notifRepo)
	notifHandler := notification.NewHandler(notifService)

	botService := bot.NewService()
	botHandler := bot.NewHandler(botService)

	// With no bot account configured, messages to bot-flagged users get no
	// canned reply. A configured account must exist (cmd/seed creates one)
	// and gets the bot flag set here if a manual insert missed it.
	var responder chat.Responder
	if cfg.BotUserID != 0 {
		if err := bot.EnsureAccount(context.Background(), userRepo, cfg.BotUserID); err != nil {
			log.Fatalf("BOT_USER_ID=%d: %v (run cmd/seed or unset BOT_USER_ID)", cfg.BotUserID, err)
		}
		responder = botService
	}

	chatHub := chat.NewHub()
	chatService := chat.NewService(chatRepo, userRepo, notifService, responder)
	chatHandler := chat.NewHandler(chatService, chatHub)
	chatWS := chat.NewWSHandler(chatHub, j)

	callsService := calls.NewService(callRepo, userRepo)
	callsHandler := calls.NewHandler(callsService)

	profileService := profile.NewService(userRepo)
	profileHandler := profile.NewHandler(profileService)

	r := gin.Default()
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			statusHandler.RegisterRoutes(protected)
			chatHandler.RegisterRoutes(protected)
			callsHandler.RegisterRoutes(protected)
			profileHandler.RegisterRoutes(protected)
			notifHandler.RegisterRoutes(protected)
			botHandler.RegisterRoutes(protected)
		}
	}

	// Websocket auth rides in ?token= so these sit outside the JWT middleware.
	r.GET("/ws/chat", chatWS.HandleWebSocket)
	r.GET("/ws/statuses", statusWS.HandleFeed)

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
