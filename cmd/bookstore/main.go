package main

import (
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"bookstore/pkg/config"
	"bookstore/pkg/database"
	"bookstore/pkg/routes"
	"bookstore/pkg/token"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	log.Info("starting bookstore service", zap.String("port", cfg.Port))

	db := database.Init(cfg, log)
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenExpiry)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(ginzap.Ginzap(log, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(log, true))
	r.Use(cors.Default())

	routes.SetupRoutes(r, db, tokens, log)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
