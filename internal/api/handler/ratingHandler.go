package handler

import (
	"errors"
	"net/http"
	"strconv"

	"filmlog/internal/api/dto"
	"filmlog/internal/api/service"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	ratingService service.RatingService
}

func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
	}
}

// RegisterRoutes registers rating-related routes under the films group.
func (h *RatingHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.GET("/:film_id/ratings", h.List)
	rg.GET("/:film_id/ratings/average", h.GetAverage)
	rg.POST("/:film_id/rate", requireAuth, h.Rate)
	rg.DELETE("/:film_id/rate", requireAuth, h.Delete)
}

// Rate creates or updates the caller's rating for a film. A first rating is
// a 201; re-rating the same film is a 200.
// POST /api/films/:film_id/rate
func (h *RatingHandler) Rate(c *gin.Context) {
	filmID, err := strconv.ParseInt(c.Param("film_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid film ID"})
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.RateFilmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating, outcome, err := h.ratingService.RateFilm(c.Request.Context(), userID.(string), filmID, req.Value)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRatingValue):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrFilmNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	status := http.StatusOK
	if outcome == service.RateCreated {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"result": string(outcome), "rating": rating})
}

// Delete removes the caller's rating for a film.
// DELETE /api/films/:film_id/rate
func (h *RatingHandler) Delete(c *gin.Context) {
	filmID, err := strconv.ParseInt(c.Param("film_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid film ID"})
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.ratingService.DeleteRating(c.Request.Context(), userID.(string), filmID); err != nil {
		switch {
		case errors.Is(err, service.ErrFilmNotFound), errors.Is(err, service.ErrRatingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "rating deleted successfully"})
}

// List retrieves all ratings for a film with pagination.
// GET /api/films/:film_id/ratings?page=1&page_size=20
func (h *RatingHandler) List(c *gin.Context) {
	filmID, err := strconv.ParseInt(c.Param("film_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid film ID"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	ratings, total, err := h.ratingService.GetFilmRatings(c.Request.Context(), filmID, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrFilmNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  ratings,
		"total": total,
		"page":  page,
	})
}

// GetAverage recomputes and serves the film's aggregate rating.
// GET /api/films/:film_id/ratings/average
func (h *RatingHandler) GetAverage(c *gin.Context) {
	filmID, err := strconv.ParseInt(c.Param("film_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid film ID"})
		return
	}

	avg, err := h.ratingService.AverageForFilm(c.Request.Context(), filmID)
	if err != nil {
		if errors.Is(err, service.ErrFilmNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, avg)
}
