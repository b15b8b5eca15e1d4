package dto

import (
	"time"

	"filmlog/internal/api/models"
)

// FilmResponse is the catalogue view of a film, aggregate rating included.
// Rating is a pointer: a film nobody rated has no aggregate at all.
type FilmResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Synopsis    string          `json:"synopsis"`
	PosterURL   *string         `json:"poster_url,omitempty"`
	ReleaseDate *time.Time      `json:"release_date,omitempty"`
	Genres      []GenreResponse `json:"genres"`
	Franchise   *string         `json:"franchise,omitempty"`
	Rating      *float64        `json:"rating,omitempty"`
}

// FilmDetailResponse adds what the detail page needs on top of the list view.
type FilmDetailResponse struct {
	FilmResponse
	RatingCount    int64          `json:"rating_count"`
	FranchiseFilms []FilmResponse `json:"franchise_films,omitempty"`
}

// FromModelToFilmResponse converts a Film model to FilmResponse; rating may be nil.
func FromModelToFilmResponse(film *models.Film, rating *float64) FilmResponse {
	resp := FilmResponse{
		ID:          film.ID,
		Name:        film.Name,
		Synopsis:    film.Synopsis,
		PosterURL:   film.PosterURL,
		ReleaseDate: film.ReleaseDate,
		Genres:      make([]GenreResponse, 0, len(film.Genres)),
		Rating:      rating,
	}
	for _, g := range film.Genres {
		resp.Genres = append(resp.Genres, GenreResponse{ID: g.ID, Name: g.Name})
	}
	if film.Franchise != nil {
		resp.Franchise = &film.Franchise.Name
	}
	return resp
}

// CreateFilmRequest for adding a film to the catalogue
type CreateFilmRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=200"`
	Synopsis    string     `json:"synopsis" binding:"max=10000"`
	PosterURL   *string    `json:"poster_url,omitempty" binding:"omitempty,url"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	FranchiseID *int64     `json:"franchise_id,omitempty"`
	GenreIDs    []int64    `json:"genre_ids,omitempty"`
}

// UpdateFilmRequest for editing catalogue entries; nil fields stay untouched,
// GenreIDs when present replaces the film's genre set.
type UpdateFilmRequest struct {
	Name        *string    `json:"name,omitempty" binding:"omitempty,min=1,max=200"`
	Synopsis    *string    `json:"synopsis,omitempty" binding:"omitempty,max=10000"`
	PosterURL   *string    `json:"poster_url,omitempty" binding:"omitempty,url"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	FranchiseID *int64     `json:"franchise_id,omitempty"`
	GenreIDs    []int64    `json:"genre_ids,omitempty"`
}

// PaginatedFilmResponse for returning paginated films
type PaginatedFilmResponse struct {
	Data       []FilmResponse `json:"data"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
}

// NewPaginatedFilmResponse creates a paginated film response
func NewPaginatedFilmResponse(data []FilmResponse, total, page, pageSize int) *PaginatedFilmResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedFilmResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
