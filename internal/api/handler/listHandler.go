package handler

import (
	"errors"
	"net/http"
	"strconv"

	"filmlog/internal/api/dto"
	"filmlog/internal/api/service"

	"github.com/gin-gonic/gin"
)

type ListHandler struct {
	listService service.ListService
}

func NewListHandler(listService service.ListService) *ListHandler {
	return &ListHandler{listService: listService}
}

// RegisterRoutes registers the list mutation routes; all of them require an
// authenticated owner.
func (h *ListHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.POST("/:list_id/films/:film_id", requireAuth, h.AddFilm)
	rg.DELETE("/:list_id/films/:film_id", requireAuth, h.RemoveFilm)
	rg.PATCH("/:list_id", requireAuth, h.UpdatePrivacy)
}

// RegisterUserRoutes hangs the read endpoint off the users group. Anonymous
// callers see only public lists.
func (h *ListHandler) RegisterUserRoutes(rg *gin.RouterGroup) {
	rg.GET("/:user_id/lists", h.GetUserLists)
}

func (h *ListHandler) pathIDs(c *gin.Context) (listID, filmID int64, ok bool) {
	listID, err := strconv.ParseInt(c.Param("list_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid list ID"})
		return 0, 0, false
	}
	filmID, err = strconv.ParseInt(c.Param("film_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid film ID"})
		return 0, 0, false
	}
	return listID, filmID, true
}

// AddFilm puts the film into the target list and sweeps it out of the
// caller's other lists.
// POST /api/lists/:list_id/films/:film_id
func (h *ListHandler) AddFilm(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	listID, filmID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	err := h.listService.AddFilmToList(c.Request.Context(), userID.(string), listID, filmID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrListNotFound), errors.Is(err, service.ErrFilmNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNotListOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "film added to list successfully"})
}

// RemoveFilm drops the membership edge; a film that was never in the list is
// a 400, not a 404.
// DELETE /api/lists/:list_id/films/:film_id
func (h *ListHandler) RemoveFilm(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	listID, filmID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	err := h.listService.RemoveFilmFromList(c.Request.Context(), userID.(string), listID, filmID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFilmNotInList):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrListNotFound), errors.Is(err, service.ErrFilmNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNotListOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "film removed from list successfully"})
}

// UpdatePrivacy sets the list's private flag.
// PATCH /api/lists/:list_id
func (h *ListHandler) UpdatePrivacy(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	listID, err := strconv.ParseInt(c.Param("list_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid list ID"})
		return
	}

	var req dto.UpdateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = h.listService.SetListPrivacy(c.Request.Context(), userID.(string), listID, *req.Private)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrListNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNotListOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "list privacy updated successfully"})
}

// GetUserLists returns a user's lists, filtered by privacy for everyone but
// the owner.
// GET /api/users/:user_id/lists
func (h *ListHandler) GetUserLists(c *gin.Context) {
	ownerID := c.Param("user_id")
	requesterID := c.GetString("userID") // empty for anonymous callers

	lists, err := h.listService.GetUserLists(c.Request.Context(), requesterID, ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, lists)
}
