package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hallbook/internal/domain/models"
	"hallbook/internal/service/activity"
	"hallbook/internal/service/studio"
)

// StudioHandler serves the photo-studio contract CRUD.
type StudioHandler struct {
	svc      *studio.Service
	activity *activity.Service
	logger   *zap.Logger
}

// NewStudioHandler constructs the HTTP handler adapter.
func NewStudioHandler(svc *studio.Service, activitySvc *activity.Service, logger *zap.Logger) *StudioHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudioHandler{svc: svc, activity: activitySvc, logger: logger}
}

type studioContractRequest struct {
	FullName  string `json:"fullName" binding:"required"`
	GroomName string `json:"groomName"`
	BrideName string `json:"brideName"`
	Phone     string `json:"phone"`

	WeddingDate    string `json:"weddingDate"`
	EngagementDate string `json:"engagementDate"`
	HennaDate      string `json:"hennaDate"`
	InvoiceDate    string `json:"invoiceDate"`

	Services     []models.ServiceItem `json:"services" binding:"omitempty,dive"`
	Discount     float64              `json:"discount" binding:"min=0"`
	ExtraDetails string               `json:"extraDetails"`
}

func (r studioContractRequest) toModel() models.StudioContract {
	return models.StudioContract{
		FullName:       r.FullName,
		GroomName:      r.GroomName,
		BrideName:      r.BrideName,
		Phone:          r.Phone,
		WeddingDate:    r.WeddingDate,
		EngagementDate: r.EngagementDate,
		HennaDate:      r.HennaDate,
		InvoiceDate:    r.InvoiceDate,
		Services:       r.Services,
		Discount:       r.Discount,
		ExtraDetails:   r.ExtraDetails,
	}
}

// List returns all studio contracts.
func (h *StudioHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing studio contracts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create stores a new studio contract.
func (h *StudioHandler) Create(c *gin.Context) {
	var req studioContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}

	saved, err := h.svc.Create(c.Request.Context(), req.toModel())
	if err != nil {
		h.logger.Error("failed creating studio contract", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	h.activity.Record(c.Request.Context(), usernameFrom(c), "create", "studioContract", saved.ID.Hex())
	c.JSON(http.StatusCreated, saved)
}

// Update replaces a studio contract wholesale.
func (h *StudioHandler) Update(c *gin.Context) {
	var req studioContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}

	saved, err := h.svc.Update(c.Request.Context(), c.Param("id"), req.toModel())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.activity.Record(c.Request.Context(), usernameFrom(c), "update", "studioContract", saved.ID.Hex())
	c.JSON(http.StatusOK, saved)
}

// Delete removes a studio contract permanently.
func (h *StudioHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.activity.Record(c.Request.Context(), usernameFrom(c), "delete", "studioContract", c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "Studio contract deleted"})
}

func (h *StudioHandler) writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, studio.ErrContractNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Studio contract not found"})
	case errors.Is(err, studio.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid studio contract id"})
	default:
		h.logger.Error("studio contract operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
	}
}
