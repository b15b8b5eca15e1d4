package service

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"filmlog/internal/api/dto"
	"filmlog/internal/api/models"
	"filmlog/internal/api/repository"

	"gorm.io/gorm"
)

var (
	ErrFilmNotFound       = errors.New("film not found")
	ErrInvalidRatingValue = errors.New("rating value must be an integer between 1 and 5")
	ErrDuplicateRatings   = errors.New("more than one rating exists for this user and film")
	ErrRatingNotFound     = errors.New("rating not found")
)

// RateOutcome tells the caller whether an upsert inserted or mutated.
type RateOutcome string

const (
	RateCreated RateOutcome = "created"
	RateUpdated RateOutcome = "updated"
)

// FilmGetter is the slice of the film repository the rating engine needs.
type FilmGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Film, error)
}

type RatingService interface {
	RateFilm(ctx context.Context, userID string, filmID int64, value int) (*dto.RatingResponse, RateOutcome, error)
	DeleteRating(ctx context.Context, userID string, filmID int64) error
	AverageForFilm(ctx context.Context, filmID int64) (*dto.FilmAverageResponse, error)
	GetFilmRatings(ctx context.Context, filmID int64, page, pageSize int) ([]dto.RatingResponse, int64, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	films      FilmGetter
	logger     *slog.Logger
}

func NewRatingService(ratingRepo repository.RatingRepository, films FilmGetter, logger *slog.Logger) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		films:      films,
		logger:     logger,
	}
}

// RateFilm keeps at most one rating per (user, film): first call inserts,
// every later call mutates the same row. A losing racer whose insert trips
// the uniqueness constraint is retried as an update instead of failing.
func (s *ratingService) RateFilm(ctx context.Context, userID string, filmID int64, value int) (*dto.RatingResponse, RateOutcome, error) {
	if value < 1 || value > 5 {
		return nil, "", ErrInvalidRatingValue
	}

	if _, err := s.films.GetByID(ctx, filmID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrFilmNotFound
		}
		return nil, "", err
	}

	existing, err := s.ratingRepo.GetByUserAndFilm(ctx, userID, filmID)
	if err != nil {
		return nil, "", err
	}

	switch {
	case len(existing) > 1:
		// the uniqueness constraint makes this structurally impossible;
		// finding it means a bug elsewhere, so fail loudly and change nothing
		s.logger.Error("rating uniqueness invariant violated",
			"user_id", userID, "film_id", filmID, "rows", len(existing))
		return nil, "", ErrDuplicateRatings

	case len(existing) == 1:
		rating := &existing[0]
		rating.Value = value
		if err := s.ratingRepo.Update(ctx, rating); err != nil {
			return nil, "", err
		}
		return dto.FromModelToRatingResponse(rating), RateUpdated, nil

	default:
		rating := &models.Rating{UserID: userID, FilmID: filmID, Value: value}
		err := s.ratingRepo.Create(ctx, rating)
		if err == nil {
			return dto.FromModelToRatingResponse(rating), RateCreated, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", err
		}
		// a concurrent request inserted between our lookup and our insert;
		// fall back to updating the row that won
		return s.updateAfterLostRace(ctx, userID, filmID, value)
	}
}

func (s *ratingService) updateAfterLostRace(ctx context.Context, userID string, filmID int64, value int) (*dto.RatingResponse, RateOutcome, error) {
	rows, err := s.ratingRepo.GetByUserAndFilm(ctx, userID, filmID)
	if err != nil {
		return nil, "", err
	}
	if len(rows) != 1 {
		s.logger.Error("rating row missing after duplicate-key insert",
			"user_id", userID, "film_id", filmID, "rows", len(rows))
		return nil, "", ErrDuplicateRatings
	}
	rating := &rows[0]
	rating.Value = value
	if err := s.ratingRepo.Update(ctx, rating); err != nil {
		return nil, "", err
	}
	return dto.FromModelToRatingResponse(rating), RateUpdated, nil
}

// DeleteRating removes a user's rating for a film
func (s *ratingService) DeleteRating(ctx context.Context, userID string, filmID int64) error {
	if _, err := s.films.GetByID(ctx, filmID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFilmNotFound
		}
		return err
	}

	removed, err := s.ratingRepo.Delete(ctx, userID, filmID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrRatingNotFound
	}
	return nil
}

// AverageForFilm recomputes the aggregate on every call; nothing is cached
// or materialized, so the figure always matches the rating rows.
func (s *ratingService) AverageForFilm(ctx context.Context, filmID int64) (*dto.FilmAverageResponse, error) {
	if _, err := s.films.GetByID(ctx, filmID); err != nil {
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

	resp := &dto.FilmAverageResponse{Count: count}
	if avg != nil {
		rounded := RoundRating(*avg)
		resp.Rating = &rounded
	}
	return resp, nil
}

// GetFilmRatings retrieves all ratings for a film with pagination
func (s *ratingService) GetFilmRatings(ctx context.Context, filmID int64, page, pageSize int) ([]dto.RatingResponse, int64, error) {
	if _, err := s.films.GetByID(ctx, filmID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrFilmNotFound
		}
		return nil, 0, err
	}

	ratings, total, err := s.ratingRepo.GetByFilm(ctx, filmID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.RatingResponse, 0, len(ratings))
	for i := range ratings {
		responses = append(responses, *dto.FromModelToRatingResponse(&ratings[i]))
	}
	return responses, total, nil
}

// RoundRating rounds an aggregate to one decimal place for display.
func RoundRating(v float64) float64 {
	return math.Round(v*10) / 10
}
