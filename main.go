package main

import (
	"log"
	"net/http"
	"time"

	"messmate-api/config"
	"messmate-api/handlers"
	"messmate-api/middleware"
	"messmate-api/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}
	cfg.Apply()
	gin.SetMode(cfg.GinMode)

	// Initialize database
	config.InitDB(cfg)
	if cfg.SeedData {
		if err := config.Seed(config.DB); err != nil {
			log.Fatal("Failed to seed sample data: ", err)
		}
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(handlers.Log))
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	r.GET("/health", handlers.Health)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the MessMate Canteen API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"STUDENT", "STAFF", "ADMIN"},
		})
	})

	routes.SetupRoutes(r)

	log.Printf("🚀 Server running on http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func corsConfig(origins []string) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cc.AllowAllOrigins = true
		return cc
	}
	cc.AllowOrigins = origins
	cc.AllowCredentials = true
	return cc
}
