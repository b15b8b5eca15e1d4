package dto

// GenreResponse for returning genre information
type GenreResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreateGenreRequest for adding a genre to the catalogue
type CreateGenreRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}
