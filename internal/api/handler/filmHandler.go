package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"filmlog/internal/api/dto"
	"filmlog/internal/api/service"

	"github.com/gin-gonic/gin"
)

type FilmHandler struct {
	filmService service.FilmService
}

func NewFilmHandler(filmService service.FilmService) *FilmHandler {
	return &FilmHandler{filmService: filmService}
}

// RegisterRoutes registers film catalogue routes. Reads are open to
// anonymous callers; catalogue management requires authentication.
func (h *FilmHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/:film_id", h.GetByID)
	rg.POST("", requireAuth, h.Create)
	rg.PUT("/:film_id", requireAuth, h.Update)
	rg.DELETE("/:film_id", requireAuth, h.Delete)
}

// List serves the catalogue with optional genre filtering and rating
// ordering.
// GET /api/films?genre=action,drama&ordering=-rating&page=1&page_size=20
func (h *FilmHandler) List(c *gin.Context) {
	var genres []string
	if raw := c.Query("genre"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				genres = append(genres, name)
			}
		}
	}
	ordering := c.Query("ordering")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	films, err := h.filmService.ListFilms(c.Request.Context(), genres, ordering, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, films)
}

// GetByID serves the film detail view.
// GET /api/films/:film_id
func (h *FilmHandler) GetByID(c *gin.Context) {
	filmID, err := strconv.ParseInt(c.Param("film_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid film ID"})
		return
	}

	film, err := h.filmService.GetFilm(c.Request.Context(), filmID)
	if err != nil {
		if errors.Is(err, service.ErrFilmNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "film not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, film)
}

// Create adds a film to the catalogue.
// POST /api/films
func (h *FilmHandler) Create(c *gin.Context) {
	var req dto.CreateFilmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	film, err := h.filmService.CreateFilm(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, film)
}

// Update edits a catalogue entry.
// PUT /api/films/:film_id
func (h *FilmHandler) Update(c *gin.Context) {
	filmID, err := strconv.ParseInt(c.Param("film_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid film ID"})
		return
	}

	var req dto.UpdateFilmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	film, err := h.filmService.UpdateFilm(c.Request.Context(), filmID, req)
	if err != nil {
		if errors.Is(err, service.ErrFilmNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "film not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, film)
}

// Delete removes a film; ratings, comments and list edges go with it.
// DELETE /api/films/:film_id
func (h *FilmHandler) Delete(c *gin.Context) {
	filmID, err := strconv.ParseInt(c.Param("film_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid film ID"})
		return
	}

	if err := h.filmService.DeleteFilm(c.Request.Context(), filmID); err != nil {
		if errors.Is(err, service.ErrFilmNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "film not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
