package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hallbook/internal/service/activity"
)

// ActivityHandler serves the admin-only activity log listing.
type ActivityHandler struct {
	svc    *activity.Service
	logger *zap.Logger
}

// NewActivityHandler constructs the HTTP handler adapter.
func NewActivityHandler(svc *activity.Service, logger *zap.Logger) *ActivityHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityHandler{svc: svc, logger: logger}
}

// List returns the most recent activity entries.
func (h *ActivityHandler) List(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "100"), 10, 64)

	entries, err := h.svc.List(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed listing activity entries", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, entries)
}
