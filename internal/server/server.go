package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ugandapi-chat/config"
	"ugandapi-chat/internal/handler"
	"ugandapi-chat/internal/middleware"
	"ugandapi-chat/internal/redis"
	"ugandapi-chat/internal/services"
	"ugandapi-chat/internal/transport/httpdto"
	"ugandapi-chat/pkg/database"
	"ugandapi-chat/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	User  *handler.UserHandler
	Auth  *handler.AuthHandler
	Chat  *handler.ChatHandler
	Item  *handler.ItemHandler
	Admin *handler.AdminHandler
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.AppPort),
			Handler: engine,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

// Engine exposes the underlying gin engine, mainly for httptest.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// SetupRoutes wires the route table. limiter may be nil, in which case
// no rate limiting is applied.
func (s *Server) SetupRoutes(handlers *Handlers, authService *services.AuthService, limiter *redis.RateLimiter) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.CORSMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	s.engine.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(); err != nil {
			c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	authLimit := noopMiddleware()
	messageLimit := noopMiddleware()
	if limiter != nil {
		authLimit = middleware.AuthRateLimitMiddleware(limiter)
		messageLimit = middleware.MessageRateLimitMiddleware(limiter)
	}

	s.engine.POST("/users/register", authLimit, handlers.User.Register)
	s.engine.POST("/api/token", authLimit, handlers.Auth.Token)

	chats := s.engine.Group("/chats")
	{
		chats.GET("", handlers.Chat.List)
		chats.GET("/:messageId", handlers.Chat.Get)
		chats.POST("", middleware.AuthMiddleware(authService), messageLimit, handlers.Chat.Post)
	}

	s.engine.POST("/items/", middleware.AuthMiddleware(authService), handlers.Item.Items)

	admin := s.engine.Group("/admin", middleware.AuthMiddleware(authService))
	{
		admin.POST("/archive", handlers.Admin.Archive)
	}
}

func noopMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
	}
}

func (s *Server) Start() error {
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Errorf("Error in starting the server: %s", err)
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	if s.logger != nil {
		s.logger.Infof("Server is running on :%s", s.config.AppPort)
	}

	<-quit

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Infof("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}

	return nil
}
