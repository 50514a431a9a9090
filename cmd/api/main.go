package main

import (
	"context"
	"log"

	"ugandapi-chat/config"
	"ugandapi-chat/internal/assistant"
	"ugandapi-chat/internal/domain/chat"
	"ugandapi-chat/internal/domain/user"
	"ugandapi-chat/internal/handler"
	"ugandapi-chat/internal/moderation"
	goredis "ugandapi-chat/internal/redis"
	"ugandapi-chat/internal/repository"
	"ugandapi-chat/internal/server"
	"ugandapi-chat/internal/services"
	"ugandapi-chat/internal/storage"
	"ugandapi-chat/pkg/database"
	"ugandapi-chat/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	l := logger.New(cfg.AppMode)
	logger.SetGlobalLogger(l)

	// Connect to Database
	database.Connect(cfg)

	if err := database.DB.AutoMigrate(
		&user.User{},
		&chat.Message{},
	); err != nil {
		log.Fatalf("Failed to apply GORM migrations: %v", err)
	}

	goredis.Initialize(goredis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
	})
	redisClient := goredis.GetClient()

	userRepo := repository.NewUserRepository(database.DB)
	messageRepo := repository.NewMessageRepository(database.DB)

	var threadStore repository.ThreadStore
	if cfg.ThreadStore == config.ThreadStoreFile {
		l.Warnf("using legacy shared thread file %s: all callers share one conversation", cfg.ThreadFile)
		threadStore = repository.NewFileThreadStore(cfg.ThreadFile)
	} else {
		threadStore = goredis.NewThreadStore(redisClient, goredis.DefaultThreadTTL)
	}

	assistantClient, err := assistant.NewClient(assistant.Config{
		APIKey:      cfg.OpenAIAPIKey,
		BaseURL:     cfg.OpenAIBaseURL,
		AssistantID: cfg.AssistantID,
	})
	if err != nil {
		log.Fatalf("Failed to create assistant client: %v", err)
	}

	guard := moderation.NewOpenAIGuard(moderation.Config{
		APIKey:     cfg.OpenAIAPIKey,
		BaseURL:    cfg.OpenAIBaseURL,
		TopicModel: cfg.TopicModel,
	})

	userService := services.NewUserService(userRepo, cfg)
	authService := services.NewAuthService(userRepo, cfg)
	chatService := services.NewChatService(assistantClient, guard, threadStore, messageRepo, l)

	var objectStore services.ObjectStore
	if cfg.S3Bucket != "" {
		s3Client, err := storage.NewClient(context.Background(), storage.S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
		})
		if err != nil {
			log.Fatalf("Failed to create s3 client: %v", err)
		}
		objectStore = s3Client
	}
	archiveService := services.NewArchiveService(messageRepo, objectStore, l)

	limiter := goredis.NewRateLimiter(redisClient, goredis.DefaultRateLimitConfig())

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		User:  handler.NewUserHandler(userService),
		Auth:  handler.NewAuthHandler(authService),
		Chat:  handler.NewChatHandler(chatService),
		Item:  handler.NewItemHandler(),
		Admin: handler.NewAdminHandler(archiveService),
	}, authService, limiter)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}
