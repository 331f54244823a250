package main

import (
	"log"
	"time"

	"cardapio_digital/internal/broadcast"
	"cardapio_digital/internal/config"
	"cardapio_digital/internal/database"
	"cardapio_digital/internal/handlers"
	"cardapio_digital/internal/redis"
	"cardapio_digital/internal/repository"
	"cardapio_digital/internal/services"
	"cardapio_digital/pkg/asaas"
	"cardapio_digital/pkg/whatsapp"

	"github.com/gin-gonic/gin"
	openai "github.com/sashabaranov/go-openai"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.Seed(db, cfg.RestaurantSlug); err != nil {
		log.Fatal("Failed to seed database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// External clients
	asaasClient := asaas.NewClient(cfg.AsaasAPIKey, cfg.AsaasBaseURL)
	whatsappClient := whatsapp.NewClient(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppFrom)

	var completionClient services.CompletionClient
	if cfg.OpenAIAPIKey != "" {
		completionClient = openai.NewClient(cfg.OpenAIAPIKey)
	} else {
		log.Println("OPENAI_API_KEY not set, assistant will serve fallback responses")
	}

	// Realtime hub shared by every mutating handler
	hub := broadcast.NewHub()

	// Initialize repositories
	restaurantRepo := repository.NewRestaurantRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	menuItemRepo := repository.NewMenuItemRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	chatRepo := repository.NewChatRepository(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	reservationRepo := repository.NewReservationRepository(db)

	// Initialize services
	sessionTTL := time.Duration(cfg.SessionTimeout) * time.Second
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	orderService := services.NewOrderService(orderRepo)
	menuService := services.NewMenuService(menuItemRepo, categoryRepo, redisClient, cacheTTL)
	aiService := services.NewAIService(completionClient, cfg.OpenAIModel, menuItemRepo, orderRepo, chatRepo, redisClient, sessionTTL)
	paymentService := services.NewPaymentService(asaasClient, paymentRepo, orderRepo)
	whatsappService := services.NewWhatsAppService(whatsappClient, cfg.FrontendURL)
	reservationService := services.NewReservationService(reservationRepo, whatsappService)
	analyticsService := services.NewAnalyticsService(orderRepo, menuItemRepo)
	userService := services.NewUserService(userRepo, redisClient, sessionTTL)

	// Initialize handlers
	tenant := handlers.NewTenant(restaurantRepo, cfg.RestaurantSlug)
	menuHandler := handlers.NewMenuHandler(tenant, menuService)
	orderHandler := handlers.NewOrderHandler(tenant, orderService, hub)
	aiHandler := handlers.NewAIHandler(tenant, aiService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, hub)
	webhookHandler := handlers.NewWebhookHandler(paymentService, whatsappService, hub)
	adminHandler := handlers.NewAdminHandler(tenant, menuService, analyticsService, auditRepo, chatRepo, hub, cfg.FrontendURL)
	reservationHandler := handlers.NewReservationHandler(tenant, reservationService, hub)
	authHandler := handlers.NewAuthHandler(userService)
	wsHandler := handlers.NewWSHandler(hub)

	// Setup routes
	router := gin.Default()

	router.GET("/ws", wsHandler.Connect)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "OK", "timestamp": time.Now().Format(time.RFC3339)})
		})

		api.GET("/menu", menuHandler.GetMenu)

		api.POST("/orders", orderHandler.CreateOrder)
		api.GET("/orders", orderHandler.ListOrders)
		api.PUT("/orders/:id/status", orderHandler.UpdateStatus)

		api.POST("/ai/chat", aiHandler.Chat)

		api.POST("/payments/pix", paymentHandler.CreatePix)
		api.POST("/payments/card", paymentHandler.CreateCard)
		api.GET("/payments/:id/status", paymentHandler.GetStatus)
		api.GET("/orders/:id/payments", paymentHandler.ListOrderPayments)

		api.POST("/webhooks/asaas", webhookHandler.HandleAsaas)
		api.POST("/webhooks/whatsapp", webhookHandler.HandleWhatsApp)

		api.GET("/reservations", reservationHandler.ListByDate)
		api.GET("/reservations/availability", reservationHandler.CheckAvailability)
		api.POST("/reservations", reservationHandler.CreateReservation)

		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)

		admin := api.Group("/admin")
		{
			admin.GET("/menu", adminHandler.ListMenuItems)
			admin.POST("/menu", adminHandler.CreateMenuItem)
			admin.PUT("/menu/:id", adminHandler.UpdateMenuItem)
			admin.DELETE("/menu/:id", adminHandler.DeleteMenuItem)

			admin.GET("/categories", adminHandler.ListCategories)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

			admin.GET("/orders", orderHandler.ListOrders)
			admin.PUT("/orders/:id/status", orderHandler.UpdateStatus)
			admin.DELETE("/orders/:id", orderHandler.DeleteOrder)

			admin.GET("/analytics", adminHandler.Analytics)
			admin.GET("/reports/data", adminHandler.ReportData)
			admin.GET("/tables/:table/qrcode", adminHandler.TableQRCode)
			admin.GET("/charlie/stats", adminHandler.AssistantStats)
			admin.GET("/audit", adminHandler.AuditLog)
		}
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
