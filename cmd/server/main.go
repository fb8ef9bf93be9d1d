package main // Entry point package

import (
	"log" // Logging library
	"time"

	"github.com/joho/godotenv"    // .env loading for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/railwatch/train-issue-service/internal/config"
	"github.com/railwatch/train-issue-service/internal/database"
	"github.com/railwatch/train-issue-service/internal/handler"
	"github.com/railwatch/train-issue-service/internal/otp"
	"github.com/railwatch/train-issue-service/internal/queue"
	"github.com/railwatch/train-issue-service/internal/repository"
	"github.com/railwatch/train-issue-service/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the env directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the OTP store and the auth rate limiter. When it is not
	// reachable the client is nil: codes fall back to the in-process map
	// and rate limiting is disabled.
	rdb := config.NewRedisClient()
	var codes otp.Store
	if rdb != nil {
		codes = otp.NewRedisStore(rdb, 10*time.Minute)
	} else {
		log.Printf("redis unavailable; using in-memory OTP store")
		codes = otp.NewMemoryStore()
	}

	users := repository.NewUserRepo(db)
	reports := repository.NewReportRepo(db)

	authHandler := handler.NewAuthHandler(cfg, users, codes)
	reportHandler := handler.NewReportHandler(reports)
	adminHandler := handler.NewAdminHandler(users, reports)

	// Background consumer turns queued OTP and contact events into lines
	// in logs/notification.log. Reconnects forever on broker trouble.
	go queue.StartNotificationConsumer()

	e := echo.New()
	router.RegisterRoutes(e, cfg, rdb, authHandler, reportHandler, adminHandler)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
