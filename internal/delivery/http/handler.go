package http

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eatwise/backend/internal/domain"
)

// AnalysisUsecase is the slice of the analysis service the handlers need.
type AnalysisUsecase interface {
	AnalyzeText(ctx context.Context, description string, profile domain.UserProfile) (*domain.MealAnalysis, error)
	AnalyzeImage(ctx context.Context, imageData []byte, profile domain.UserProfile) (*domain.MealAnalysis, error)
	GetAnalysis(ctx context.Context, id string) (*domain.MealAnalysis, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.MealAnalysis, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	analysis AnalysisUsecase
}

// NewHandler creates a new HTTP handler
func NewHandler(analysis AnalysisUsecase) *Handler {
	return &Handler{analysis: analysis}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "eatwise-backend",
		"version": "1.0.0",
	})
}

type analyzeTextRequest struct {
	Description string             `json:"description" binding:"required"`
	Profile     domain.UserProfile `json:"profile"`
}

// AnalyzeText handles text meal analysis requests
func (h *Handler) AnalyzeText(c *gin.Context) {
	var req analyzeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "description is required"})
		return
	}

	analysis, err := h.analysis.AnalyzeText(c.Request.Context(), req.Description, req.Profile)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

type analyzeImageRequest struct {
	Image   string             `json:"image" binding:"required"` // base64-encoded
	Profile domain.UserProfile `json:"profile"`
}

// AnalyzeImage handles food photo analysis requests
func (h *Handler) AnalyzeImage(c *gin.Context) {
	var req analyzeImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return
	}

	imageData, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image must be valid base64"})
		return
	}

	analysis, err := h.analysis.AnalyzeImage(c.Request.Context(), imageData, req.Profile)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// GetAnalysis returns one stored analysis by ID
func (h *Handler) GetAnalysis(c *gin.Context) {
	analysis, err := h.analysis.GetAnalysis(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// ListHistory returns recent analyses
func (h *Handler) ListHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	analyses, err := h.analysis.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"analyses": analyses})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAnalysisNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrModelAPIFailure):
		c.JSON(http.StatusBadGateway, gin.H{"error": "language model backend unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
