// Command seed prepares a database for the catalog server: it creates the
// unique indexes the insert probes rely on and registers an initial admin
// user when one does not exist yet.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"patchwork/internal/config"
	"patchwork/internal/crypto"
	"patchwork/internal/db"
	"patchwork/internal/model"
	"patchwork/internal/repository"
)

func main() {
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := db.NewMongo(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal("mongo init", zap.Error(err))
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	database := client.Database(cfg.MongoDB)

	// Unique indexes are the real guard-rail behind the check-then-act
	// uniqueness probes in the repositories.
	indexes := map[string]string{
		"users":    "email",
		"projects": "name",
		"fabrics":  "name",
		"blocks":   "name",
	}
	for coll, field := range indexes {
		_, err := database.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			logger.Fatal("create index", zap.String("collection", coll), zap.Error(err))
		}
		logger.Info("index ensured", zap.String("collection", coll), zap.String("field", field))
	}

	email := getEnv("ADMIN_EMAIL", "admin@patchwork.local")
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		logger.Info("ADMIN_PASSWORD not set, skipping admin user")
		return
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		logger.Fatal("hash admin password", zap.Error(err))
	}

	users := repository.NewUserRepository(database.Collection("users"))
	admin := &model.User{
		Name:     getEnv("ADMIN_NAME", "Administrator"),
		Email:    email,
		Password: hash,
		Admin:    true,
	}
	if _, err := users.Insert(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			logger.Info("admin user already present", zap.String("email", email))
			return
		}
		logger.Fatal("insert admin user", zap.Error(err))
	}
	logger.Info("admin user created", zap.String("email", email))
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
