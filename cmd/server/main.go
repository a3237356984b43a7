package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lifepulse-backend/internal/config"
	"lifepulse-backend/internal/database"
	"lifepulse-backend/internal/handlers"
	"lifepulse-backend/internal/middleware"
	"lifepulse-backend/internal/repository"
	"lifepulse-backend/internal/router"
	"lifepulse-backend/internal/services"
	"lifepulse-backend/internal/websocket"
	"lifepulse-backend/internal/worker"
)

func main() {
	log.Println("🚀 Starting LifePulse Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	profileRepo := repository.NewProfileRepo(pool)
	pregnancyRepo := repository.NewPregnancyRepo(pool)
	reminderRepo := repository.NewReminderRepo(pool)
	sosRepo := repository.NewSosRepo(pool)

	// ──── Step 5: Initialize Gemini Client ────
	geminiService, err := services.NewGeminiService(services.GeminiConfig{
		APIKey:          cfg.GeminiAPIKey,
		Model:           cfg.GeminiModel,
		Temperature:     cfg.GeminiTemperature,
		TopP:            cfg.GeminiTopP,
		TopK:            cfg.GeminiTopK,
		MaxOutputTokens: cfg.GeminiMaxTokens,
		SafetyThreshold: cfg.GeminiSafety,
		ConcurrentReqs:  cfg.GeminiConcurrentReqs,
	})
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer geminiService.Close()
	log.Println("✓ Gemini client initialized")

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	emailService := services.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	authService := services.NewAuthService(userRepo, redisClients.Queue, jwtAuth)
	hospitalService := services.NewHospitalService()
	pregnancyService := services.NewPregnancyService(pregnancyRepo, profileRepo)
	sosService := services.NewSOSService(sosRepo, profileRepo, hospitalService, emailService, redisClients.Queue)
	attachmentValidator := services.NewAttachmentValidator(cfg.MaxAttachmentMB)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	chatHandler := handlers.NewChatHandler(geminiService, attachmentValidator, cfg.MaxMessageChars)
	hospitalHandler := handlers.NewHospitalHandler(hospitalService)
	profileHandler := handlers.NewProfileHandler(profileRepo)
	pregnancyHandler := handlers.NewPregnancyHandler(pregnancyService)
	reminderHandler := handlers.NewReminderHandler(reminderRepo)
	sosHandler := handlers.NewSOSHandler(sosService)

	// ──── Step 6: Start Reminder Dispatcher ────
	reminderPool := worker.NewPool(redisClients.Queue, reminderRepo, 2)
	reminderPool.Start()
	log.Println("✓ Reminder dispatcher started")

	// ──── Step 7: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.PubSub, cfg.JWTSecret)
	log.Println("✓ WebSocket hub started")

	// ──── Step 8: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		authHandler,
		chatHandler,
		hospitalHandler,
		profileHandler,
		pregnancyHandler,
		reminderHandler,
		sosHandler,
		wsHub,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // Gemini calls can run long
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		reminderPool.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ LifePulse Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
