package router

import (
	"votex/internal/handlers"
	"votex/internal/middleware"
	"votex/internal/polls"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	authHandler := handlers.NewAuthHandler(db)
	pollHandler := handlers.NewPollHandler(polls.NewService(db))

	r.Use(middleware.LoadUser(db))

	// Public routes
	api := r.Group("/api")
	{
		api.GET("/health", handlers.Health)
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.GET("/logout", authHandler.Logout)
	}

	// Protected routes
	authorized := r.Group("/api")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/profile", authHandler.Profile)

		authorized.POST("/polls", pollHandler.Create)                   // create poll
		authorized.GET("/polls", pollHandler.List)                      // public polls + own
		authorized.GET("/polls/:id", pollHandler.Get)                   // poll view
		authorized.POST("/polls/:id/verify", pollHandler.VerifyPassword) // check private poll password
		authorized.POST("/polls/:id/vote", pollHandler.Vote)            // cast vote
		authorized.DELETE("/polls/:id", pollHandler.Delete)             // owner-only, cascades
	}
}
