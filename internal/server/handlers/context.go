package handlers

import "github.com/gin-gonic/gin"

// Context keys populated by the auth middleware.
const (
	CtxUserID   = "userID"
	CtxUsername = "username"
	CtxRole     = "role"
)

func usernameFrom(c *gin.Context) string {
	v, _ := c.Get(CtxUsername)
	s, _ := v.(string)
	return s
}
