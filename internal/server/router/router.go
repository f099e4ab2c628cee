package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hallbook/internal/domain/models"
	"hallbook/internal/server/handlers"
)

// Handlers bundles the HTTP handler set the router wires up.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Settings *handlers.SettingsHandler
	Contract *handlers.ContractHandler
	Studio   *handlers.StudioHandler
	User     *handlers.UserHandler
	Report   *handlers.ReportHandler
	Activity *handlers.ActivityHandler
}

// New wires the Gin engine with routes and middlewares. Payloads with
// unknown fields are rejected outright.
func New(h Handlers, authz PageAuthorizer, jwtSecret string, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	gin.EnableJsonDecoderDisallowUnknownFields()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)

	authed := api.Group("", authMiddleware(jwtSecret))

	authed.GET("/settings/:type", requirePage(authz, logger, settingsPage), h.Settings.Get)
	authed.POST("/settings/:type", requirePage(authz, logger, settingsPage), h.Settings.Set)

	authed.GET("/contracts/search", requirePage(authz, logger, staticPage(models.PageHallContracts)), h.Contract.Search)
	authed.GET("/contracts/reporting", requirePage(authz, logger, staticPage(models.PageReporting)), h.Report.Monthly)
	authed.POST("/contracts", requirePage(authz, logger, staticPage(models.PageCreateContract)), h.Contract.Create)
	authed.PUT("/contracts/:id", requirePage(authz, logger, staticPage(models.PageCreateContract)), h.Contract.Update)
	authed.PATCH("/contracts/:id/status", requirePage(authz, logger, staticPage(models.PageHallContracts)), h.Contract.UpdateStatus)
	authed.DELETE("/contracts/:id", requirePage(authz, logger, staticPage(models.PageHallContracts)), h.Contract.Delete)

	authed.GET("/studio-contracts", requirePage(authz, logger, staticPage(models.PageStudioContracts)), h.Studio.List)
	authed.POST("/studio-contracts", requirePage(authz, logger, staticPage(models.PageStudioContract)), h.Studio.Create)
	authed.PUT("/studio-contracts/:id", requirePage(authz, logger, staticPage(models.PageStudioContract)), h.Studio.Update)
	authed.DELETE("/studio-contracts/:id", requirePage(authz, logger, staticPage(models.PageStudioContracts)), h.Studio.Delete)

	authed.GET("/users", requirePage(authz, logger, staticPage(models.PageUserManagement)), h.User.List)

	admin := authed.Group("", adminOnly())
	admin.POST("/users", h.User.Create)
	admin.PUT("/users/:id", h.User.Update)
	admin.GET("/logs", h.Activity.List)

	logger.Info("router initialized")

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
