package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sivalije58/NexTalk/internal/config"
	"github.com/Sivalije58/NexTalk/internal/database"
	"github.com/Sivalije58/NexTalk/internal/handler"
	"github.com/Sivalije58/NexTalk/internal/middleware"
	"github.com/Sivalije58/NexTalk/internal/repository"
	"github.com/Sivalije58/NexTalk/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg := config.Load()

	// Database
	db, err := database.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(context.Background(), db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations applied successfully")

	// Repositories
	messageRepo := repository.NewMessageRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Services
	hub := service.NewHub()
	chatSvc := service.NewChatService(messageRepo, hub, cfg.DBTimeout)
	userSvc := service.NewUserService(userRepo, cfg.DBTimeout)

	// Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
		BodyLimit:    1 * 1024 * 1024, // 1MB
	})

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(cors.New())

	// Health
	healthH := handler.NewHealthHandler(db, hub)
	app.Get("/health", healthH.Health)
	app.Get("/ready", healthH.Ready)

	// API v1
	v1 := app.Group("/api/v1")

	messageH := handler.NewMessageHandler(chatSvc)
	v1.Get("/messages", messageH.List)
	v1.Post("/messages", messageH.Post)
	v1.Put("/messages/:id", messageH.Edit)
	v1.Delete("/messages/:id", messageH.Delete)
	v1.Delete("/messages", messageH.Clear)

	userH := handler.NewUserHandler(userSvc)
	v1.Post("/login", middleware.RateLimit(10, time.Minute), userH.Login)
	v1.Get("/users", userH.List)
	v1.Get("/users/:username", userH.Check)
	v1.Delete("/users/:username", userH.Delete)

	// WebSocket
	wsH := handler.NewWSHandler(hub)
	app.Get("/ws", wsH.Upgrade)

	// Start hub
	go hub.Run()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	log.Printf("NexTalk backend running on :%s (%s)", cfg.Port, cfg.Env)

	<-quit
	log.Println("Shutting down...")
	_ = app.ShutdownWithTimeout(5 * time.Second)
	hub.Shutdown()
	log.Println("Server stopped")
}
