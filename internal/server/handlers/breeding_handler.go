package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/camposoft/tambero/internal/domain/models"
	"github.com/camposoft/tambero/internal/repository/mongodb"
	"github.com/camposoft/tambero/internal/service/breedingsvc"
)

// BreedingHandler handles breeding record HTTP operations.
type BreedingHandler struct {
	svc    *breedingsvc.Service
	logger *zap.Logger
}

// NewBreedingHandler constructs the HTTP handler adapter.
func NewBreedingHandler(svc *breedingsvc.Service, logger *zap.Logger) *BreedingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BreedingHandler{svc: svc, logger: logger}
}

type openBreedingRequest struct {
	Protocol     string `json:"protocol" binding:"required"`
	AnimalID     string `json:"animal_id" binding:"required"`
	BullID       string `json:"bull_id"`
	Observations string `json:"observations"`
}

// Open creates a breeding record when the registration form opens.
func (h *BreedingHandler) Open(c *gin.Context) {
	var req openBreedingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid breeding payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rec, err := h.svc.Open(c.Request.Context(), models.Protocol(req.Protocol), req.AnimalID, req.BullID, req.Observations)
	if err != nil {
		if errors.Is(err, breedingsvc.ErrUnknownProtocol) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed opening breeding record", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to open breeding record"})
		return
	}

	c.JSON(http.StatusCreated, rec)
}

type fieldChangeRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// ApplyChange runs one field edit through the derivation engine. The
// response carries the full updated record so the form can repaint every
// derived date at once.
func (h *BreedingHandler) ApplyChange(c *gin.Context) {
	var req fieldChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid field change payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	change, err := models.ParseFieldChange(req.Field, req.Value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.svc.ApplyChange(c.Request.Context(), c.Param("id"), change)
	if err != nil {
		h.respondError(c, err, "unable to apply field change")
		return
	}

	c.JSON(http.StatusOK, rec)
}

// Finalize marks the record as submitted.
func (h *BreedingHandler) Finalize(c *gin.Context) {
	rec, err := h.svc.Finalize(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "unable to finalize breeding record")
		return
	}

	c.JSON(http.StatusOK, rec)
}

// Get fetches one breeding record.
func (h *BreedingHandler) Get(c *gin.Context) {
	rec, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "unable to fetch breeding record")
		return
	}

	c.JSON(http.StatusOK, rec)
}

// List returns breeding records, optionally filtered by animal id.
func (h *BreedingHandler) List(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context(), c.Query("animal_id"))
	if err != nil {
		h.logger.Error("failed listing breeding records", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to list breeding records"})
		return
	}
	if records == nil {
		records = []models.BreedingRecord{}
	}
	c.JSON(http.StatusOK, records)
}

func (h *BreedingHandler) respondError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "breeding record not found"})
		return
	}
	h.logger.Error(fallback, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
}
