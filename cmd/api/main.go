package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/bellagenda/salon-scheduler/internal/config"
	dbpkg "github.com/bellagenda/salon-scheduler/internal/db"
	infraRepo "github.com/bellagenda/salon-scheduler/internal/infra/repository"
	"github.com/bellagenda/salon-scheduler/internal/middleware"
	"github.com/bellagenda/salon-scheduler/internal/realtime"
	"github.com/bellagenda/salon-scheduler/internal/routes"
)

func main() {

	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	hub := realtime.NewHub()

	// With Redis configured, events go through the pub/sub channel so every
	// instance fans out to its own sockets. Without it, the dispatcher
	// broadcasts straight to the local hub.
	var pub realtime.Publisher
	if cfg.RedisAddr != "" {
		bridge := realtime.NewBridge(cfg.RedisAddr)
		defer bridge.Close()
		go bridge.Run(context.Background(), hub)
		pub = bridge
	}

	dispatcher := realtime.NewDispatcher(infraRepo.NewNotificationGormStore(db), hub, pub)
	defer dispatcher.Close()

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "connections": hub.ConnCount()})
	})

	routes.RegisterRoutes(r, db, cfg, hub, dispatcher)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
