package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/AbdulmosenAlmuzaini/mezan/internal/domain"
)

// CurrentUser returns the user the Auth middleware stored in the gin
// context. Only call it on routes behind the middleware.
func CurrentUser(c *gin.Context) *domain.User {
	v, _ := c.Get("user")
	user, _ := v.(*domain.User)
	return user
}
