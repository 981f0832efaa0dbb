package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/agent"
	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/catalog"
	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/config"
	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/handlers"
	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/logger"
	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/middleware"
	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/session"
	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/sse"
	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/store"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}
}

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.Development, logger.InfoLevel); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	storage, err := session.NewFileStorage(cfg.SessionFile)
	if err != nil {
		logger.Get().Fatal("failed to open session storage", zap.Error(err))
	}

	sessions := session.NewManager(storage, cfg.Passcode, cfg.SessionSecret)
	sessions.Watch(time.Second)
	defer sessions.Close()

	conversations := store.New()
	bills := catalog.NewLoader(catalog.OSReader{}, cfg.BillsDir)
	client := agent.NewClient(cfg.AgentBaseURL, cfg.AgentEndpoint, cfg.AgentTimeout)
	streams := sse.NewRegistry()

	// Discovery-mode probing is slow by design; run it off the request path.
	go bills.Load(nil)

	h := handlers.New(conversations, bills, client, sessions, streams)

	router := gin.Default()
	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})
	router.Use(middleware.CorsMiddleware)

	router.GET("/healthz", h.HandleHealth)
	router.POST("/api/login", h.HandleLogin)

	api := router.Group("/api")
	api.Use(middleware.SessionAuth(sessions))
	{
		api.POST("/logout", h.HandleLogout)

		api.GET("/conversations", h.HandleGetConversations)
		api.POST("/conversations", h.HandleCreateConversation)
		api.POST("/conversations/:id/select", h.HandleSelectConversation)
		api.PUT("/conversations/:id/title", h.HandleRenameConversation)
		api.DELETE("/conversations/:id", h.HandleDeleteConversation)
		api.POST("/conversations/:id/messages", h.HandleSendMessage)
		api.POST("/conversations/:id/address", h.HandleAddressSubmit)

		api.POST("/analyzer/:bill/messages", h.HandleAnalyzerMessage)

		api.GET("/bills", h.HandleGetBills)
		api.GET("/bills/search", h.HandleSearchBills)

		api.GET("/stream/:id", h.HandleStream)
	}

	debug := router.Group("/debug")
	debug.Use(middleware.DebugAuthMiddleware(cfg.DebugAPIKey))
	{
		debug.POST("/agent", h.HandleDebugAgent)
	}

	logger.Get().Info("server starting",
		zap.String("port", cfg.Port),
		zap.String("agent_base_url", cfg.AgentBaseURL))

	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Get().Fatal("failed to start server", zap.Error(err))
	}
}
