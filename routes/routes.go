package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"imovelmatch/handlers"
)

// SetupRoutes wires the chat API onto the router.
func SetupRoutes(r *gin.Engine, chatHandler *handlers.ChatHandler, db *gorm.DB) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", handlers.HealthHandler(db))

	api := r.Group("/api")
	{
		api.POST("/chat", chatHandler.HandleChat)
		api.DELETE("/sessions/:id", chatHandler.EndSession)
	}
}
