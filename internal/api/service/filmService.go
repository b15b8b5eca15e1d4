package service

import (
	"context"
	"errors"

	"filmlog/internal/api/dto"
	"filmlog/internal/api/models"
	"filmlog/internal/api/repository"

	"gorm.io/gorm"
)

type FilmService interface {
	ListFilms(ctx context.Context, genres []string, ordering string, page, pageSize int) (*dto.PaginatedFilmResponse, error)
	GetFilm(ctx context.Context, filmID int64) (*dto.FilmDetailResponse, error)
	CreateFilm(ctx context.Context, req dto.CreateFilmRequest) (*dto.FilmDetailResponse, error)
	UpdateFilm(ctx context.Context, filmID int64, req dto.UpdateFilmRequest) (*dto.FilmDetailResponse, error)
	DeleteFilm(ctx context.Context, filmID int64) error
}

type filmService struct {
	filmRepo   *repository.FilmRepo
	ratingRepo repository.RatingRepository
}

func NewFilmService(filmRepo *repository.FilmRepo, ratingRepo repository.RatingRepository) FilmService {
	return &filmService{
		filmRepo:   filmRepo,
		ratingRepo: ratingRepo,
	}
}

// ListFilms serves the catalogue. ordering accepts "rating" / "-rating"
// (ascending / descending aggregate); anything else keeps insertion order.
func (s *filmService) ListFilms(ctx context.Context, genres []string, ordering string, page, pageSize int) (*dto.PaginatedFilmResponse, error) {
	order := repository.OrderDefault
	switch ordering {
	case "rating":
		order = repository.OrderRatingAsc
	case "-rating":
		order = repository.OrderRatingDesc
	}

	films, total, err := s.filmRepo.GetAll(ctx, genres, order, page, pageSize)
	if err != nil {
		return nil, err
	}

	filmIDs := make([]int64, 0, len(films))
	for i := range films {
		filmIDs = append(filmIDs, films[i].ID)
	}
	averages, err := s.ratingRepo.AveragesForFilms(ctx, filmIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.FilmResponse, 0, len(films))
	for i := range films {
		var rating *float64
		if avg, ok := averages[films[i].ID]; ok {
			rounded := RoundRating(avg)
			rating = &rounded
		}
		responses = append(responses, dto.FromModelToFilmResponse(&films[i], rating))
	}

	return dto.NewPaginatedFilmResponse(responses, int(total), page, pageSize), nil
}

// GetFilm returns the detail view: genres, franchise, the recomputed
// aggregate, and the other films of the same franchise.
func (s *filmService) GetFilm(ctx context.Context, filmID int64) (*dto.FilmDetailResponse, error) {
	film, err := s.filmRepo.GetByID(ctx, filmID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFilmNotFound
		}
		return nil, err
	}

	avg, err := s.ratingRepo.AverageForFilm(ctx, filmID)
	if err != nil {
		return nil, err
	}
	count, err := s.ratingRepo.CountForFilm(ctx, filmID)
	if err != nil {
		return nil, err
	}

	var rating *float64
	if avg != nil {
		rounded := RoundRating(*avg)
		rating = &rounded
	}

	detail := &dto.FilmDetailResponse{
		FilmResponse: dto.FromModelToFilmResponse(film, rating),
		RatingCount:  count,
	}

	if film.FranchiseID != nil {
		siblings, err := s.filmRepo.GetFranchiseSiblings(ctx, *film.FranchiseID, film.ID)
		if err != nil {
			return nil, err
		}
		siblingIDs := make([]int64, 0, len(siblings))
		for i := range siblings {
			siblingIDs = append(siblingIDs, siblings[i].ID)
		}
		averages, err := s.ratingRepo.AveragesForFilms(ctx, siblingIDs)
		if err != nil {
			return nil, err
		}
		detail.FranchiseFilms = make([]dto.FilmResponse, 0, len(siblings))
		for i := range siblings {
			var siblingRating *float64
			if avg, ok := averages[siblings[i].ID]; ok {
				rounded := RoundRating(avg)
				siblingRating = &rounded
			}
			detail.FranchiseFilms = append(detail.FranchiseFilms, dto.FromModelToFilmResponse(&siblings[i], siblingRating))
		}
	}

	return detail, nil
}

// CreateFilm adds a catalogue entry and attaches its genres.
func (s *filmService) CreateFilm(ctx context.Context, req dto.CreateFilmRequest) (*dto.FilmDetailResponse, error) {
	film := &models.Film{
		Name:        req.Name,
		Synopsis:    req.Synopsis,
		PosterURL:   req.PosterURL,
		ReleaseDate: req.ReleaseDate,
		FranchiseID: req.FranchiseID,
	}
	if err := s.filmRepo.Create(ctx, film); err != nil {
		return nil, err
	}
	if len(req.GenreIDs) > 0 {
		if err := s.filmRepo.AddGenresToFilm(ctx, film.ID, req.GenreIDs); err != nil {
			return nil, err
		}
	}
	return s.GetFilm(ctx, film.ID)
}

// UpdateFilm patches a catalogue entry; a present GenreIDs replaces the
// film's genre set wholesale.
func (s *filmService) UpdateFilm(ctx context.Context, filmID int64, req dto.UpdateFilmRequest) (*dto.FilmDetailResponse, error) {
	film, err := s.filmRepo.GetByID(ctx, filmID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFilmNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		film.Name = *req.Name
	}
	if req.Synopsis != nil {
		film.Synopsis = *req.Synopsis
	}
	if req.PosterURL != nil {
		film.PosterURL = req.PosterURL
	}
	if req.ReleaseDate != nil {
		film.ReleaseDate = req.ReleaseDate
	}
	if req.FranchiseID != nil {
		film.FranchiseID = req.FranchiseID
	}
	if err := s.filmRepo.Update(ctx, filmID, film); err != nil {
		return nil, err
	}

	if req.GenreIDs != nil {
		current := make([]int64, 0, len(film.Genres))
		for _, g := range film.Genres {
			current = append(current, g.ID)
		}
		if err := s.filmRepo.RemoveGenresFromFilm(ctx, filmID, current); err != nil {
			return nil, err
		}
		if err := s.filmRepo.AddGenresToFilm(ctx, filmID, req.GenreIDs); err != nil {
			return nil, err
		}
	}

	return s.GetFilm(ctx, filmID)
}

func (s *filmService) DeleteFilm(ctx context.Context, filmID int64) error {
	if _, err := s.filmRepo.GetByID(ctx, filmID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFilmNotFound
		}
		return err
	}
	return s.filmRepo.Delete(ctx, filmID)
}
