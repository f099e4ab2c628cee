package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hallbook/internal/domain/models"
	"hallbook/internal/service/activity"
	"hallbook/internal/service/contracts"
)

// ContractHandler serves the hall contract CRUD and search.
type ContractHandler struct {
	svc      *contracts.Service
	activity *activity.Service
	logger   *zap.Logger
}

// NewContractHandler constructs the HTTP handler adapter.
func NewContractHandler(svc *contracts.Service, activitySvc *activity.Service, logger *zap.Logger) *ContractHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContractHandler{svc: svc, activity: activitySvc, logger: logger}
}

// contractRequest mirrors the contract schema with binding rules. Unknown
// top-level fields are rejected by the engine-wide strict JSON decoder.
type contractRequest struct {
	ContractOwner    string `json:"contractOwner" binding:"required"`
	GroomFirstName   string `json:"groomFirstName" binding:"required"`
	GroomLastName    string `json:"groomLastName" binding:"required"`
	GroomNationalID  string `json:"groomNationalId" binding:"required"`
	SpouseFirstName  string `json:"spouseFirstName" binding:"required"`
	SpouseLastName   string `json:"spouseLastName" binding:"required"`
	SpouseNationalID string `json:"spouseNationalId" binding:"required"`
	Address          string `json:"address"`
	Phone            string `json:"phone"`
	Email            string `json:"email" binding:"omitempty,email"`

	EventDate string `json:"eventDate" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`

	InviteesCount     int    `json:"inviteesCount" binding:"min=0"`
	ServiceStaffCount int    `json:"serviceStaffCount" binding:"min=0"`
	JuiceCount        int    `json:"juiceCount" binding:"min=0"`
	TeaCount          int    `json:"teaCount" binding:"min=0"`
	FireworkCount     int    `json:"fireworkCount" binding:"min=0"`
	WaterCount        int    `json:"waterCount" binding:"min=0"`
	DinnerCount       int    `json:"dinnerCount" binding:"min=0"`
	DinnerType        string `json:"dinnerType"`

	IncludeCandle   bool `json:"includeCandle"`
	IncludeFlower   bool `json:"includeFlower"`
	IncludeJuice    bool `json:"includeJuice"`
	IncludeTea      bool `json:"includeTea"`
	IncludeFirework bool `json:"includeFirework"`
	IncludeWater    bool `json:"includeWater"`
	IncludeDinner   bool `json:"includeDinner"`

	Discount     float64            `json:"discount" binding:"min=0"`
	ExtraDetails string             `json:"extraDetails"`
	ExtraItems   []models.ExtraItem `json:"extraItems" binding:"omitempty,dive"`

	// Derived values as currently shown in the form; only the ones listed
	// in overriddenFields survive the server-side recompute.
	CustomerCosts models.CostBreakdown `json:"customerCosts"`
	InternalCosts models.CostBreakdown `json:"internalCosts"`

	Status models.ContractStatus `json:"status" binding:"omitempty,oneof=final reservation cancelled"`

	// OverriddenFields lists "perspective.field" references such as
	// "customer.entryFee".
	OverriddenFields []string `json:"overriddenFields"`
}

func (r contractRequest) toModel() models.Contract {
	return models.Contract{
		ContractOwner:     r.ContractOwner,
		GroomFirstName:    r.GroomFirstName,
		GroomLastName:     r.GroomLastName,
		GroomNationalID:   r.GroomNationalID,
		SpouseFirstName:   r.SpouseFirstName,
		SpouseLastName:    r.SpouseLastName,
		SpouseNationalID:  r.SpouseNationalID,
		Address:           r.Address,
		Phone:             r.Phone,
		Email:             r.Email,
		EventDate:         r.EventDate,
		StartTime:         r.StartTime,
		EndTime:           r.EndTime,
		InviteesCount:     r.InviteesCount,
		ServiceStaffCount: r.ServiceStaffCount,
		JuiceCount:        r.JuiceCount,
		TeaCount:          r.TeaCount,
		FireworkCount:     r.FireworkCount,
		WaterCount:        r.WaterCount,
		DinnerCount:       r.DinnerCount,
		DinnerType:        r.DinnerType,
		IncludeCandle:     r.IncludeCandle,
		IncludeFlower:     r.IncludeFlower,
		IncludeJuice:      r.IncludeJuice,
		IncludeTea:        r.IncludeTea,
		IncludeFirework:   r.IncludeFirework,
		IncludeWater:      r.IncludeWater,
		IncludeDinner:     r.IncludeDinner,
		Discount:          r.Discount,
		ExtraDetails:      r.ExtraDetails,
		ExtraItems:        r.ExtraItems,
		CustomerCosts:     r.CustomerCosts,
		InternalCosts:     r.InternalCosts,
		Status:            r.Status,
	}
}

// Create validates, prices and stores a new contract.
func (h *ContractHandler) Create(c *gin.Context) {
	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}

	saved, err := h.svc.Create(c.Request.Context(), req.toModel(), req.OverriddenFields)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.activity.Record(c.Request.Context(), usernameFrom(c), "create", "contract", saved.ID.Hex())
	c.JSON(http.StatusCreated, saved)
}

// Update replaces a contract wholesale.
func (h *ContractHandler) Update(c *gin.Context) {
	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}

	saved, err := h.svc.Update(c.Request.Context(), c.Param("id"), req.toModel(), req.OverriddenFields)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.activity.Record(c.Request.Context(), usernameFrom(c), "update", "contract", saved.ID.Hex())
	c.JSON(http.StatusOK, saved)
}

type statusRequest struct {
	Status models.ContractStatus `json:"status" binding:"required,oneof=final reservation cancelled"`
}

// UpdateStatus applies the narrow status-only patch.
func (h *ContractHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}

	if err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.activity.Record(c.Request.Context(), usernameFrom(c), "update-status", "contract", c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

// Delete removes a contract permanently.
func (h *ContractHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.activity.Record(c.Request.Context(), usernameFrom(c), "delete", "contract", c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "Contract deleted"})
}

// Search pages through contracts by owner name or event date.
func (h *ContractHandler) Search(c *gin.Context) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)

	res, err := h.svc.Search(c.Request.Context(), c.Query("searchTerm"), page, limit)
	if err != nil {
		h.logger.Error("contract search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ContractHandler) writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, contracts.ErrContractNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Contract not found"})
	case errors.Is(err, contracts.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid contract id"})
	case errors.Is(err, contracts.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid contract status"})
	case errors.Is(err, contracts.ErrUnknownOverrideField):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		h.logger.Error("contract operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
	}
}
