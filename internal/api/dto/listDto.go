package dto

import (
	"filmlog/internal/api/models"
)

// UpdateListRequest flips the privacy flag on a list. Pointer so "false" and
// "absent" can be told apart during binding.
type UpdateListRequest struct {
	Private *bool `json:"private" binding:"required"`
}

// ListResponse for returning one of a user's film lists
type ListResponse struct {
	ID      int64          `json:"id"`
	Type    string         `json:"type"`
	Private bool           `json:"private"`
	Films   []FilmResponse `json:"films"`
}

// FromModelToListResponse converts a FilmList model to ListResponse DTO.
// Film aggregates are looked up in the averages map; missing means unrated.
func FromModelToListResponse(list *models.FilmList, averages map[int64]float64) *ListResponse {
	resp := &ListResponse{
		ID:      list.ID,
		Type:    list.Type.String(),
		Private: list.Private,
		Films:   make([]FilmResponse, 0, len(list.Films)),
	}
	for i := range list.Films {
		film := &list.Films[i]
		var rating *float64
		if avg, ok := averages[film.ID]; ok {
			rating = &avg
		}
		resp.Films = append(resp.Films, FromModelToFilmResponse(film, rating))
	}
	return resp
}

// ListCollectionResponse wraps all visible lists of one user
type ListCollectionResponse struct {
	Lists []ListResponse `json:"lists"`
	Total int            `json:"total"`
}
