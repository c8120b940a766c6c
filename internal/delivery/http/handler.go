package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ogarmory/backend/internal/domain"
	"github.com/ogarmory/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	service *usecase.CatalogService
}

// NewHandler creates a new HTTP handler
func NewHandler(service *usecase.CatalogService) *Handler {
	return &Handler{service: service}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "armory-backend",
		"version": "1.0.0",
	})
}

// buildRequest is the payload for the build and reconcile endpoints:
// a product category and the raw listings to normalize
type buildRequest struct {
	Category string           `json:"category" binding:"required"`
	Products []domain.Listing `json:"products" binding:"required"`
}

// BuildCatalog normalizes a batch of raw listings into canonical
// products. Per-product failures come back in the errors list; the
// request only fails outright when the payload itself is unusable.
func (h *Handler) BuildCatalog(c *gin.Context) {
	var req buildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request: category and products are required",
		})
		return
	}

	source := usecase.NewStaticSource(req.Products)
	result, err := h.service.BuildCatalog(c.Request.Context(), source, req.Category)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Reconcile normalizes a batch and merges it into the existing catalog,
// matching incoming products against known ones by title similarity
func (h *Handler) Reconcile(c *gin.Context) {
	var req buildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request: category and products are required",
		})
		return
	}

	source := usecase.NewStaticSource(req.Products)
	built, err := h.service.BuildCatalog(c.Request.Context(), source, req.Category)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.service.Reconcile(c.Request.Context(), built.Products, nil)
	if err != nil {
		respondError(c, err)
		return
	}

	// Carry forward what the build phase already reported
	result.Warnings = append(built.Warnings, result.Warnings...)
	result.Errors = append(built.Errors, result.Errors...)

	c.JSON(http.StatusOK, result)
}

// respondError maps engine sentinel errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrInvalidListing):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrCatalogNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUpstreamAPIFailure):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
