package handlers

import (
	"net/http"
	"votex/internal/middleware"
	"votex/internal/models"

	"github.com/gin-gonic/gin"
)

// CurrentUser returns the session user loaded by middleware.LoadUser, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		return user.(*models.User)
	}
	return nil
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
