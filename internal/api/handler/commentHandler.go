package handler

import (
	"errors"
	"net/http"
	"strconv"

	"filmlog/internal/api/dto"
	"filmlog/internal/api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// RegisterRoutes registers comment routes under the films group. Creation
// uses optional auth: logged-in callers are recorded as authors, anonymous
// ones are not.
func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup, optionalAuth gin.HandlerFunc) {
	rg.GET("/:film_id/comments", h.ListByFilm)
	rg.POST("/:film_id/comments", optionalAuth, h.Create)
}

// Create posts a comment on a film.
// POST /api/films/:film_id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	filmID, err := strconv.ParseInt(c.Param("film_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid film ID"})
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// author stays nil for anonymous callers
	var authorID *string
	if userID, exists := c.Get("userID"); exists {
		id := userID.(string)
		authorID = &id
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), authorID, filmID, req.Text)
	if err != nil {
		if errors.Is(err, service.ErrFilmNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// ListByFilm retrieves all comments for a film with pagination.
// GET /api/films/:film_id/comments?page=1&page_size=20
func (h *CommentHandler) ListByFilm(c *gin.Context) {
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

	comments, err := h.commentService.GetFilmComments(c.Request.Context(), filmID, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrFilmNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, comments)
}
