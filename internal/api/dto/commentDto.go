package dto

import (
	"time"

	"filmlog/internal/api/models"
)

// CreateCommentRequest for posting a comment on a film
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required,min=1"`
}

// CommentResponse for returning comment information. Author is nil for
// anonymous comments and for comments whose author deleted their account.
type CommentResponse struct {
	ID        int64     `json:"id"`
	FilmID    int64     `json:"film_id"`
	Author    *string   `json:"author,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO
func FromModelToCommentResponse(comment *models.Comment) *CommentResponse {
	resp := &CommentResponse{
		ID:        comment.ID,
		FilmID:    comment.FilmID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}
	if comment.Author != nil {
		resp.Author = &comment.Author.Username
	}
	return resp
}

// PaginatedCommentResponse for returning paginated comments
type PaginatedCommentResponse struct {
	Data       []CommentResponse `json:"data"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	Total      int               `json:"total"`
	TotalPages int               `json:"total_pages"`
}

// NewPaginatedCommentResponse creates a paginated comment response
func NewPaginatedCommentResponse(data []CommentResponse, total, page, pageSize int) *PaginatedCommentResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedCommentResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
