package service

import (
	"context"

	"filmlog/internal/api/dto"
	"filmlog/internal/api/models"
	"filmlog/internal/api/repository"
)

type GenreService struct {
	genreRepo *repository.GenreRepo
}

func NewGenreService(genreRepo *repository.GenreRepo) *GenreService {
	return &GenreService{genreRepo: genreRepo}
}

func (s *GenreService) ListGenres(ctx context.Context) ([]dto.GenreResponse, error) {
	genres, err := s.genreRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.GenreResponse, 0, len(genres))
	for _, g := range genres {
		responses = append(responses, dto.GenreResponse{ID: g.ID, Name: g.Name})
	}
	return responses, nil
}

func (s *GenreService) CreateGenre(ctx context.Context, name string) (*dto.GenreResponse, error) {
	genre := &models.Genre{Name: name}
	if err := s.genreRepo.Create(ctx, genre); err != nil {
		return nil, err
	}
	return &dto.GenreResponse{ID: genre.ID, Name: genre.Name}, nil
}

// FilmsByGenre lists the films tagged with a genre. Aggregates are not
// attached here; the catalogue listing is the rated view.
func (s *GenreService) FilmsByGenre(ctx context.Context, genreID int64) ([]dto.FilmResponse, error) {
	films, err := s.genreRepo.GetFilmsByGenre(ctx, genreID)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.FilmResponse, 0, len(films))
	for i := range films {
		responses = append(responses, dto.FromModelToFilmResponse(&films[i], nil))
	}
	return responses, nil
}
