package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hallbook/internal/domain/models"
	"hallbook/internal/service/activity"
	"hallbook/internal/service/users"
)

// UserHandler serves account listing and management.
type UserHandler struct {
	svc      *users.Service
	activity *activity.Service
	logger   *zap.Logger
}

// NewUserHandler constructs the HTTP handler adapter.
func NewUserHandler(svc *users.Service, activitySvc *activity.Service, logger *zap.Logger) *UserHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserHandler{svc: svc, activity: activitySvc, logger: logger}
}

// List returns all accounts.
func (h *UserHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, list)
}

type createUserRequest struct {
	Username     string      `json:"username" binding:"required,min=3,max=64"`
	Password     string      `json:"password" binding:"required,min=6,max=128"`
	Role         models.Role `json:"role" binding:"omitempty,oneof=admin user"`
	AllowedPages []string    `json:"allowedPages"`
}

// Create registers a new account.
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}

	saved, err := h.svc.Create(c.Request.Context(), users.CreateInput{
		Username:     req.Username,
		Password:     req.Password,
		Role:         req.Role,
		AllowedPages: req.AllowedPages,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.activity.Record(c.Request.Context(), usernameFrom(c), "create", "user", saved.Username)
	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully"})
}

type updateUserRequest struct {
	Password     *string      `json:"password" binding:"omitempty,min=6,max=128"`
	Role         *models.Role `json:"role" binding:"omitempty,oneof=admin user"`
	AllowedPages *[]string    `json:"allowedPages"`
}

// Update applies a partial account update.
func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}
	if req.Password == nil && req.Role == nil && req.AllowedPages == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "at least one of password, role, allowedPages is required"})
		return
	}

	saved, err := h.svc.Update(c.Request.Context(), c.Param("id"), users.UpdateInput{
		Password:     req.Password,
		Role:         req.Role,
		AllowedPages: req.AllowedPages,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.activity.Record(c.Request.Context(), usernameFrom(c), "update", "user", saved.Username)
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

func (h *UserHandler) writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, users.ErrUserExists):
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
	case errors.Is(err, users.ErrAdminExists):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Admin user already exists"})
	case errors.Is(err, users.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	case errors.Is(err, users.ErrInvalidUserID):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
	case errors.Is(err, users.ErrUnknownPage):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		h.logger.Error("user operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
	}
}
