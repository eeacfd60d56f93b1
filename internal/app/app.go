package app

import (
	"database/sql"
	"fmt"
	"log"

	"societyportal/internal/config"
	"societyportal/internal/handlers"
	"societyportal/internal/pdf"
	"societyportal/internal/repositories"
	"societyportal/internal/routes"
	"societyportal/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "societyportal/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)

	// === Services ===
	authService := services.NewAuthService(
		cfg.Auth.JWTSecret,
		cfg.AccessTTLDuration(),
		cfg.RefreshTTLDuration(),
	)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	// Telegram notifications are optional; nil when not configured
	notifier, err := services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.AdminChatID)
	if err != nil {
		log.Printf("Telegram disabled: %v", err)
		notifier = nil
	}

	userService := services.NewUserService(userRepo, authService, notifier)
	otpService := services.NewOTPService(
		services.NewMemoryPendingStore(),
		userService,
		emailService,
		cfg.OTPTTLDuration(),
	)

	pdfGen := pdf.NewRosterGenerator(cfg.Files.RootDir)
	reportService := services.NewReportService(userService, pdfGen)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, authService)
	userHandler := handlers.NewUserHandler()
	verifyHandler := handlers.NewVerifyHandler(otpService)
	reportHandler := handlers.NewReportHandler(reportService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authService,
		userService,
		authHandler,
		userHandler,
		verifyHandler,
		reportHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server is running on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
