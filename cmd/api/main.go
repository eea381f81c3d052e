package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/slotcal/slotcal-api/internal/cache"
	"github.com/slotcal/slotcal-api/internal/config"
	dbpkg "github.com/slotcal/slotcal-api/internal/db"
	"github.com/slotcal/slotcal-api/internal/mailer"
	"github.com/slotcal/slotcal-api/internal/middleware"
	"github.com/slotcal/slotcal-api/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	sender := mailer.New(cfg)
	pageCache := cache.New(cfg)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, sender, pageCache)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
