package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	_ "patchwork/docs" // swagger docs

	"patchwork/internal/auth"
	"patchwork/internal/config"
	"patchwork/internal/db"
	"patchwork/internal/handler"
	"patchwork/internal/model"
	"patchwork/internal/repository"
	"patchwork/internal/router"
	"patchwork/internal/service"
)

// @title Patchwork Catalog API
// @version 1.0
// @description REST catalog of patchwork projects, fabrics and blocks with bearer-token authentication.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := db.NewMongo(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal("mongo init", zap.Error(err))
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	database := client.Database(cfg.MongoDB)

	// Repositories, one per store collection
	userRepo := repository.NewUserRepository(database.Collection("users"))
	projectRepo := repository.NewCatalogRepository[model.Project](database.Collection("projects"), "projects")
	fabricRepo := repository.NewCatalogRepository[model.Fabric](database.Collection("fabrics"), "fabrics")
	blockRepo := repository.NewCatalogRepository[model.Block](database.Collection("blocks"), "blocks")

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Services
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, logger)
	userHandler := handler.NewUserHandler(userService, userRepo, logger)
	projectHandler := handler.NewCatalogHandler[model.Project]("project", projectRepo, logger)
	fabricHandler := handler.NewCatalogHandler[model.Fabric]("fabric", fabricRepo, logger)
	blockHandler := handler.NewCatalogHandler[model.Block]("block", blockRepo, logger)

	e := echo.New()
	router.Register(e, jwtService, userRepo, authHandler, userHandler, projectHandler, fabricHandler, blockHandler)

	addr := ":" + cfg.ServerPort
	logger.Info("server starting", zap.String("addr", addr))
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server start", zap.Error(err))
	}
}
