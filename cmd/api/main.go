package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/BruksfildServices01/barber-marketplace/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-marketplace/internal/db"
	"github.com/BruksfildServices01/barber-marketplace/internal/middleware"
	"github.com/BruksfildServices01/barber-marketplace/internal/notification"
	"github.com/BruksfildServices01/barber-marketplace/internal/retention"
	"github.com/BruksfildServices01/barber-marketplace/internal/routes"
	"github.com/BruksfildServices01/barber-marketplace/internal/timezone"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	norm, err := timezone.NewNormalizer(cfg.DefaultUTCOffset)
	if err != nil {
		log.Fatalf("invalid DEFAULT_UTC_OFFSET: %v", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)

	sweeper := retention.NewSweeper(
		db,
		rdb,
		notification.NewService(db),
		cfg.RetentionDays,
		time.Duration(cfg.SweepIntervalMin)*time.Minute,
	)
	sweeper.Start(context.Background())

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, norm)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
