package handler

import (
	"net/http"
	"strconv"

	"filmlog/internal/api/dto"
	"filmlog/internal/api/service"

	"github.com/gin-gonic/gin"
)

type GenreHandler struct {
	genreService *service.GenreService
}

func NewGenreHandler(genreService *service.GenreService) *GenreHandler {
	return &GenreHandler{genreService: genreService}
}

func (h *GenreHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/:genre_id/films", h.FilmsByGenre)
	rg.POST("", requireAuth, h.Create)
}

// GET /api/genres
func (h *GenreHandler) List(c *gin.Context) {
	genres, err := h.genreService.ListGenres(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": genres})
}

// GET /api/genres/:genre_id/films
func (h *GenreHandler) FilmsByGenre(c *gin.Context) {
	genreID, err := strconv.ParseInt(c.Param("genre_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid genre ID"})
		return
	}

	films, err := h.genreService.FilmsByGenre(c.Request.Context(), genreID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": films})
}

// POST /api/genres
func (h *GenreHandler) Create(c *gin.Context) {
	var req dto.CreateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genre, err := h.genreService.CreateGenre(c.Request.Context(), req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, genre)
}
