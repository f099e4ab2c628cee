package router

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hallbook/internal/auth"
	"hallbook/internal/domain/models"
	"hallbook/internal/server/handlers"
)

// PageAuthorizer decides whether an account may open a back-office page.
type PageAuthorizer interface {
	Authorize(ctx context.Context, userID, page string) (bool, error)
}

// authMiddleware verifies the access token and stores the identity on the
// request context. The token is read from x-auth-token or, alternatively, a
// Bearer Authorization header.
func authMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("x-auth-token")
		if raw == "" {
			if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
				raw = strings.TrimPrefix(h, "Bearer ")
			}
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token, authorization denied"})
			return
		}

		id, err := auth.ParseToken(secret, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token is not valid"})
			return
		}

		c.Set(handlers.CtxUserID, id.UserID)
		c.Set(handlers.CtxUsername, id.Username)
		c.Set(handlers.CtxRole, id.Role)
		c.Next()
	}
}

// adminOnly rejects any identity whose token role is not admin.
func adminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(handlers.CtxRole)
		if role != string(models.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
			return
		}
		c.Next()
	}
}

// requirePage gates a route on the caller's page allow-list. The page is
// resolved per request so routes sharing a handler can map to different
// pages.
func requirePage(authz PageAuthorizer, logger *zap.Logger, page func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get(handlers.CtxUserID)
		id, _ := userID.(string)

		p := page(c)
		if p == "" {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "Not found"})
			return
		}

		ok, err := authz.Authorize(c.Request.Context(), id, p)
		if err != nil {
			logger.Error("page authorization failed", zap.String("page", p), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access to this page is not allowed"})
			return
		}
		c.Next()
	}
}

func staticPage(page string) func(*gin.Context) string {
	return func(*gin.Context) string { return page }
}

// settingsPage maps the settings route parameter onto its page identifier.
func settingsPage(c *gin.Context) string {
	switch c.Param("type") {
	case "my":
		return models.PageMySettings
	case "customer":
		return models.PageCustomerSettings
	}
	return ""
}
