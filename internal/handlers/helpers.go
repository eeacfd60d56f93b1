package handlers

import (
	"github.com/gin-gonic/gin"

	"societyportal/internal/middleware"
	"societyportal/internal/models"
)

func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(middleware.ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
