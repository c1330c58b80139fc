package configuration

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/YashRana52/INSTRAGRAM/internal/db"
	"github.com/YashRana52/INSTRAGRAM/internal/handler"
	"github.com/YashRana52/INSTRAGRAM/internal/hub"
	"github.com/YashRana52/INSTRAGRAM/internal/model"
	"github.com/YashRana52/INSTRAGRAM/internal/repo"
	"github.com/YashRana52/INSTRAGRAM/internal/service"
)

type Container struct {
	UserHandler    handler.UserHandler
	PostHandler    handler.PostHandler
	MessageHandler handler.MessageHandler
	Hub            *hub.Hub
	Config         Config
	Logger         *zap.Logger

	// private - for cleanup
	mongoDatabase *mongo.Database
}

func configPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "config.json"
}

func BuildContainer() (*Container, error) {
	config, err := LoadConfig(configPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	con, err := db.OpenConnection(config.Mongo.Uri, config.Mongo.Database)
	if err != nil {
		return nil, err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	usersRepo := db.NewRepository[model.User](con, config.Mongo.UsersCollection)
	postsRepo := db.NewRepository[model.Post](con, config.Mongo.PostsCollection)
	commentsRepo := db.NewRepository[model.Comment](con, config.Mongo.CommentsCollection)
	messagesRepo := db.NewRepository[model.Message](con, config.Mongo.MessagesCollection)
	conversationsRepo := db.NewRepository[model.Conversation](con, config.Mongo.ConversationsCollection)

	userRepo := repo.NewUserRepository(usersRepo, logger)
	postRepo := repo.NewPostRepository(postsRepo, commentsRepo, logger)
	messageRepo := repo.NewMessageRepository(messagesRepo, conversationsRepo, logger)

	// presence registry is owned here and injected, never a package global
	registry := hub.NewRegistry()
	socketHub := hub.NewHub(registry, config.AllowedOrigins)

	userService := service.NewUserService(userRepo, socketHub, logger)
	postService := service.NewPostService(postRepo, userRepo, socketHub, logger)
	messageService := service.NewMessageService(messageRepo, userRepo, socketHub, logger)

	return &Container{
		UserHandler:    handler.NewUserHandler(userService),
		PostHandler:    handler.NewPostHandler(postService),
		MessageHandler: handler.NewMessageHandler(messageService),
		Hub:            socketHub,
		Config:         *config,
		Logger:         logger,
		mongoDatabase:  con,
	}, nil
}

// Close gracefully shuts down all connections
func (c *Container) Close() error {
	// Stop the hub first (closes all WebSocket connections)
	if c.Hub != nil {
		c.Hub.Stop()
	}

	// Sync logger
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}

	// Close MongoDB connection pool
	if c.mongoDatabase != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.mongoDatabase.Client().Disconnect(ctx); err != nil {
			return fmt.Errorf("failed to close MongoDB connection: %w", err)
		}
	}

	return nil
}
