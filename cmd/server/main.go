package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bimatch/internal/cache"
	"bimatch/internal/config"
	"bimatch/internal/repository"
	"bimatch/internal/service"
	"bimatch/internal/transport/rest"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis connection
	redisAddr := strings.TrimPrefix(cfg.RedisAddr, "redis://")

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize repositories and caches
	participantRepo := repository.NewParticipantRepo(db)
	sessionCache := cache.NewSessionCache(rdb)

	// Initialize services
	tokenSvc := service.NewTokenService(cfg.SessionSecret)
	sessionSvc := service.NewSessionService(sessionCache, participantRepo, tokenSvc, cfg.AssetBaseURL)

	// Create router with container
	container := &rest.Container{
		SessionService: sessionSvc,
		TokenService:   tokenSvc,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/sessions")
		log.Println("  POST /v1/contact/validate")
		log.Println("  PUT  /v1/sessions/{id}/contact/fields/{field}")
		log.Println("  POST /v1/sessions/{id}/contact")
		log.Println("  GET  /v1/sessions/{id}/dilemmas/current")
		log.Println("  POST /v1/sessions/{id}/decisions")
		log.Println("  GET  /v1/sessions/{id}/result")
		log.Println("  GET  /v1/sessions/{id}/contact/export")
		log.Println("  GET  /v1/profiles/{profileId}")
		log.Println("  WS   /v1/ws/sessions/{id}/gesture")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
