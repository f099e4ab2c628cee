package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hallbook/internal/domain/models"
	"hallbook/internal/service/activity"
)

// RateStore is the persistence surface the settings handler depends on.
type RateStore interface {
	Get(ctx context.Context, kind models.RateKind) (models.RateConfig, error)
	Set(ctx context.Context, kind models.RateKind, cfg models.RateConfig) (models.RateConfig, error)
}

// SettingsHandler serves the two rate configuration documents. The route
// parameter keeps the UI naming: "my" is the internal cost basis,
// "customer" the customer-facing price list.
type SettingsHandler struct {
	store    RateStore
	activity *activity.Service
	logger   *zap.Logger
}

// NewSettingsHandler constructs the HTTP handler adapter.
func NewSettingsHandler(store RateStore, activitySvc *activity.Service, logger *zap.Logger) *SettingsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsHandler{store: store, activity: activitySvc, logger: logger}
}

func rateKindFromParam(param string) (models.RateKind, bool) {
	switch param {
	case "my":
		return models.RateKindInternal, true
	case "customer":
		return models.RateKindCustomer, true
	}
	return "", false
}

// Get fetches the rate configuration, creating a zeroed document on first
// access.
func (h *SettingsHandler) Get(c *gin.Context) {
	kind, ok := rateKindFromParam(c.Param("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "settings type must be 'my' or 'customer'"})
		return
	}

	cfg, err := h.store.Get(c.Request.Context(), kind)
	if err != nil {
		h.logger.Error("failed loading settings", zap.String("kind", string(kind)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, cfg)
}

type settingsRequest struct {
	HourlyRate           float64 `json:"hourlyRate" binding:"min=0"`
	ExtraHourRate        float64 `json:"extraHourRate" binding:"min=0"`
	ServiceFeePerPerson  float64 `json:"serviceFeePerPerson" binding:"min=0"`
	TaxRatePercent       float64 `json:"taxRatePercent" binding:"min=0,max=100"`
	JuicePricePerPerson  float64 `json:"juicePricePerPerson" binding:"min=0"`
	TeaPricePerPerson    float64 `json:"teaPricePerPerson" binding:"min=0"`
	FireworkPricePerUnit float64 `json:"fireworkPricePerUnit" binding:"min=0"`
	CandlePrice          float64 `json:"candlePrice" binding:"min=0"`
	FlowerPrice          float64 `json:"flowerPrice" binding:"min=0"`
	WaterPricePerUnit    float64 `json:"waterPricePerUnit" binding:"min=0"`
	DinnerPricePerPerson float64 `json:"dinnerPricePerPerson" binding:"min=0"`
}

// Set validates and upserts the whole rate configuration.
func (h *SettingsHandler) Set(c *gin.Context) {
	kind, ok := rateKindFromParam(c.Param("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "settings type must be 'my' or 'customer'"})
		return
	}

	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}

	cfg := models.RateConfig{
		HourlyRate:           req.HourlyRate,
		ExtraHourRate:        req.ExtraHourRate,
		ServiceFeePerPerson:  req.ServiceFeePerPerson,
		TaxRatePercent:       req.TaxRatePercent,
		JuicePricePerPerson:  req.JuicePricePerPerson,
		TeaPricePerPerson:    req.TeaPricePerPerson,
		FireworkPricePerUnit: req.FireworkPricePerUnit,
		CandlePrice:          req.CandlePrice,
		FlowerPrice:          req.FlowerPrice,
		WaterPricePerUnit:    req.WaterPricePerUnit,
		DinnerPricePerPerson: req.DinnerPricePerPerson,
	}

	saved, err := h.store.Set(c.Request.Context(), kind, cfg)
	if err != nil {
		h.logger.Error("failed saving settings", zap.String("kind", string(kind)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	h.activity.Record(c.Request.Context(), usernameFrom(c), "update", "settings", string(kind))
	c.JSON(http.StatusOK, saved)
}
