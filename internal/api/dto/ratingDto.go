package dto

import (
	"time"

	"filmlog/internal/api/models"
)

// RateFilmRequest for creating or updating a rating. Range is validated again
// in the service; binding catches the obvious cases at the edge.
type RateFilmRequest struct {
	Value int `json:"value" binding:"required,min=1,max=5"`
}

// RatingResponse for returning a single rating
type RatingResponse struct {
	FilmID    int64     `json:"film_id"`
	UserID    string    `json:"user_id"`
	Value     int       `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromModelToRatingResponse converts a Rating model to RatingResponse DTO
func FromModelToRatingResponse(rating *models.Rating) *RatingResponse {
	return &RatingResponse{
		FilmID:    rating.FilmID,
		UserID:    rating.UserID,
		Value:     rating.Value,
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	}
}

// FilmAverageResponse carries the recomputed aggregate for a film.
type FilmAverageResponse struct {
	Rating *float64 `json:"rating"` // nil when the film has no ratings
	Count  int64    `json:"count"`
}
