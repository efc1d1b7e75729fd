package app

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/HariSeldon343/NexioSolution-sub000/docs"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/config"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/handlers"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/middleware"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/pdf"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/repositories"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/routes"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/services"
)

func Run() {
	cfg := config.LoadConfig()

	if cfg.Auth.JWTSecret != "" {
		middleware.JWTKey = []byte(cfg.Auth.JWTSecret)
	}

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	companyRepo := repositories.NewCompanyRepository(db)
	eventRepo := repositories.NewEventRepository(db)
	taskRepo := repositories.NewTaskRepository(db)

	// === Notification channels + dispatcher ===
	var channels []services.NotificationChannel
	if cfg.Email.SMTPHost != "" {
		channels = append(channels, services.NewEmailChannel(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPassword,
			cfg.Email.FromEmail,
		))
	}
	if tg := services.NewTelegramChannel(cfg.Telegram.BotToken); tg != nil {
		channels = append(channels, tg)
	}
	dispatcher := services.NewAsyncDispatcher(userRepo, channels...)
	defer dispatcher.Close()

	// === Services ===
	userService := services.NewUserService(userRepo)
	eventService := services.NewEventService(eventRepo, dispatcher)
	taskService := services.NewTaskService(taskRepo, dispatcher)

	// agenda PDF export (put a UTF-8 TTF at assets/fonts/DejaVuSans.ttf)
	agendaGen := pdf.NewAgendaGenerator(cfg.Files.RootDir, "assets/fonts/DejaVuSans.ttf")

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	companyHandler := handlers.NewCompanyHandler(companyRepo)
	calendarHandler := handlers.NewCalendarHandler(eventService, taskService, agendaGen)
	eventHandler := handlers.NewEventHandler(eventService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authHandler,
		userHandler,
		companyHandler,
		calendarHandler,
		eventHandler,
		taskHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server failed: ", err)
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
