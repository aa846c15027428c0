package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/camposoft/tambero/internal/domain/models"
	"github.com/camposoft/tambero/internal/service/cropsvc"
)

// CropHandler serves catalog, schedule, risk and planting endpoints.
type CropHandler struct {
	svc    *cropsvc.Service
	logger *zap.Logger
}

// NewCropHandler constructs the HTTP handler adapter.
func NewCropHandler(svc *cropsvc.Service, logger *zap.Logger) *CropHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CropHandler{svc: svc, logger: logger}
}

// ListSpecies returns the crop catalog.
func (h *CropHandler) ListSpecies(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListSpecies())
}

// Schedule returns the stage timeline for a species and planting date. An
// unknown species responds 200 with an empty list: that is a displayable
// state, not a client error.
func (h *CropHandler) Schedule(c *gin.Context) {
	plantingDate, err := time.Parse(models.DateLayout, c.Query("planting_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "planting_date must be YYYY-MM-DD"})
		return
	}

	var asOf time.Time
	if raw := c.Query("as_of"); raw != "" {
		asOf, err = time.Parse(models.DateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "as_of must be YYYY-MM-DD"})
			return
		}
	}

	entries := h.svc.Schedule(c.Param("id"), plantingDate, asOf)
	if entries == nil {
		entries = []models.ScheduleEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

type riskRequest struct {
	Samples []models.WeatherSample `json:"samples" binding:"required"`
}

// EvaluateRisk scores caller-supplied forecast samples.
func (h *CropHandler) EvaluateRisk(c *gin.Context) {
	var req riskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid risk payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.JSON(http.StatusOK, h.svc.AssessRisk(c.Param("id"), req.Samples))
}

// ForecastRisk fetches the forecast for a coordinate and scores it.
func (h *CropHandler) ForecastRisk(c *gin.Context) {
	latitude, errLat := strconv.ParseFloat(c.Query("latitude"), 64)
	longitude, errLon := strconv.ParseFloat(c.Query("longitude"), 64)
	if errLat != nil || errLon != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude are required"})
		return
	}

	assessment, err := h.svc.AssessForecastRisk(c.Request.Context(), c.Param("id"), latitude, longitude)
	if err != nil {
		h.logger.Error("forecast risk failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to fetch forecast"})
		return
	}

	c.JSON(http.StatusOK, assessment)
}

type registerPlantingRequest struct {
	SpeciesID    string  `json:"species_id" binding:"required"`
	PlotName     string  `json:"plot_name" binding:"required"`
	PlantingDate string  `json:"planting_date" binding:"required"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

// RegisterPlanting stores a planting for the daily risk sweep.
func (h *CropHandler) RegisterPlanting(c *gin.Context) {
	var req registerPlantingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid planting payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	plantingDate, err := time.Parse(models.DateLayout, req.PlantingDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "planting_date must be YYYY-MM-DD"})
		return
	}

	planting, err := h.svc.RegisterPlanting(c.Request.Context(), models.Planting{
		SpeciesID:    req.SpeciesID,
		PlotName:     req.PlotName,
		PlantingDate: plantingDate,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	})
	if err != nil {
		if errors.Is(err, cropsvc.ErrUnknownSpecies) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed registering planting", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to register planting"})
		return
	}

	c.JSON(http.StatusCreated, planting)
}

// ListPlantings returns every registered planting.
func (h *CropHandler) ListPlantings(c *gin.Context) {
	plantings, err := h.svc.ListPlantings(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing plantings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to list plantings"})
		return
	}
	if plantings == nil {
		plantings = []models.Planting{}
	}
	c.JSON(http.StatusOK, plantings)
}
