package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"filmlog/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// --- MOCK REPOSITORIES ---

type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Create(ctx context.Context, rating *models.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockRatingRepository) Update(ctx context.Context, rating *models.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockRatingRepository) Delete(ctx context.Context, userID string, filmID int64) (bool, error) {
	args := m.Called(ctx, userID, filmID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRatingRepository) GetByUserAndFilm(ctx context.Context, userID string, filmID int64) ([]models.Rating, error) {
	args := m.Called(ctx, userID, filmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Rating), args.Error(1)
}

func (m *MockRatingRepository) GetByFilm(ctx context.Context, filmID int64, page, pageSize int) ([]models.Rating, int64, error) {
	args := m.Called(ctx, filmID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Rating), args.Get(1).(int64), args.Error(2)
}

func (m *MockRatingRepository) AverageForFilm(ctx context.Context, filmID int64) (*float64, error) {
	args := m.Called(ctx, filmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*float64), args.Error(1)
}

func (m *MockRatingRepository) AveragesForFilms(ctx context.Context, filmIDs []int64) (map[int64]float64, error) {
	args := m.Called(ctx, filmIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]float64), args.Error(1)
}

func (m *MockRatingRepository) CountForFilm(ctx context.Context, filmID int64) (int64, error) {
	args := m.Called(ctx, filmID)
	return args.Get(0).(int64), args.Error(1)
}

type MockFilmGetter struct {
	mock.Mock
}

func (m *MockFilmGetter) GetByID(ctx context.Context, id int64) (*models.Film, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Film), args.Error(1)
}

// --- SETUP ---

func newRatingService(ratingRepo *MockRatingRepository, films *MockFilmGetter) RatingService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRatingService(ratingRepo, films, logger)
}

func floatPtr(f float64) *float64 { return &f }

// --- TESTS ---

func TestRateFilm_Create(t *testing.T) {
	ratingRepo := new(MockRatingRepository)
	films := new(MockFilmGetter)
	svc := newRatingService(ratingRepo, films)
	ctx := context.Background()

	t.Run("FirstRatingCreatesRow", func(t *testing.T) {
		films.On("GetByID", mock.Anything, int64(7)).Return(&models.Film{ID: 7, Name: "Alien"}, nil).Once()
		ratingRepo.On("GetByUserAndFilm", mock.Anything, "user-1", int64(7)).Return([]models.Rating{}, nil).Once()
		ratingRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *models.Rating) bool {
			return r.UserID == "user-1" && r.FilmID == 7 && r.Value == 4
		})).Return(nil).Once()

		resp, outcome, err := svc.RateFilm(ctx, "user-1", 7, 4)

		assert.NoError(t, err)
		assert.Equal(t, RateCreated, outcome)
		assert.Equal(t, 4, resp.Value)
		assert.Equal(t, "user-1", resp.UserID)
		ratingRepo.AssertExpectations(t)
	})

	t.Run("FilmMissing", func(t *testing.T) {
		films.On("GetByID", mock.Anything, int64(999)).Return(nil, gorm.ErrRecordNotFound).Once()

		_, _, err := svc.RateFilm(ctx, "user-1", 999, 4)

		assert.ErrorIs(t, err, ErrFilmNotFound)
	})

	t.Run("ValueOutOfRange", func(t *testing.T) {
		_, _, err := svc.RateFilm(ctx, "user-1", 7, 0)
		assert.ErrorIs(t, err, ErrInvalidRatingValue)

		_, _, err = svc.RateFilm(ctx, "user-1", 7, 6)
		assert.ErrorIs(t, err, ErrInvalidRatingValue)
	})
}

func TestRateFilm_Update(t *testing.T) {
	ratingRepo := new(MockRatingRepository)
	films := new(MockFilmGetter)
	svc := newRatingService(ratingRepo, films)
	ctx := context.Background()

	t.Run("SecondRatingMutatesExistingRow", func(t *testing.T) {
		films.On("GetByID", mock.Anything, int64(7)).Return(&models.Film{ID: 7}, nil).Once()
		existing := []models.Rating{{ID: 42, UserID: "user-1", FilmID: 7, Value: 2}}
		ratingRepo.On("GetByUserAndFilm", mock.Anything, "user-1", int64(7)).Return(existing, nil).Once()
		ratingRepo.On("Update", mock.Anything, mock.MatchedBy(func(r *models.Rating) bool {
			return r.ID == 42 && r.Value == 5
		})).Return(nil).Once()

		resp, outcome, err := svc.RateFilm(ctx, "user-1", 7, 5)

		assert.NoError(t, err)
		assert.Equal(t, RateUpdated, outcome)
		assert.Equal(t, 5, resp.Value)
		ratingRepo.AssertExpectations(t)
	})

	t.Run("SameValueStillReportsUpdated", func(t *testing.T) {
		films.On("GetByID", mock.Anything, int64(7)).Return(&models.Film{ID: 7}, nil).Once()
		existing := []models.Rating{{ID: 42, UserID: "user-1", FilmID: 7, Value: 3}}
		ratingRepo.On("GetByUserAndFilm", mock.Anything, "user-1", int64(7)).Return(existing, nil).Once()
		ratingRepo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

		_, outcome, err := svc.RateFilm(ctx, "user-1", 7, 3)

		assert.NoError(t, err)
		assert.Equal(t, RateUpdated, outcome)
	})
}

func TestRateFilm_LostRaceFallsBackToUpdate(t *testing.T) {
	ratingRepo := new(MockRatingRepository)
	films := new(MockFilmGetter)
	svc := newRatingService(ratingRepo, films)
	ctx := context.Background()

	films.On("GetByID", mock.Anything, int64(7)).Return(&models.Film{ID: 7}, nil).Once()
	// lookup sees nothing, insert trips the unique constraint, second lookup
	// finds the row the winning request created
	ratingRepo.On("GetByUserAndFilm", mock.Anything, "user-1", int64(7)).Return([]models.Rating{}, nil).Once()
	ratingRepo.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey).Once()
	winner := []models.Rating{{ID: 42, UserID: "user-1", FilmID: 7, Value: 1}}
	ratingRepo.On("GetByUserAndFilm", mock.Anything, "user-1", int64(7)).Return(winner, nil).Once()
	ratingRepo.On("Update", mock.Anything, mock.MatchedBy(func(r *models.Rating) bool {
		return r.ID == 42 && r.Value == 5
	})).Return(nil).Once()

	resp, outcome, err := svc.RateFilm(ctx, "user-1", 7, 5)

	assert.NoError(t, err)
	assert.Equal(t, RateUpdated, outcome)
	assert.Equal(t, 5, resp.Value)
	ratingRepo.AssertExpectations(t)
}

func TestRateFilm_OtherCreateErrorPropagates(t *testing.T) {
	ratingRepo := new(MockRatingRepository)
	films := new(MockFilmGetter)
	svc := newRatingService(ratingRepo, films)

	films.On("GetByID", mock.Anything, int64(7)).Return(&models.Film{ID: 7}, nil).Once()
	ratingRepo.On("GetByUserAndFilm", mock.Anything, "user-1", int64(7)).Return([]models.Rating{}, nil).Once()
	dbErr := errors.New("connection reset")
	ratingRepo.On("Create", mock.Anything, mock.Anything).Return(dbErr).Once()

	_, _, err := svc.RateFilm(context.Background(), "user-1", 7, 5)

	assert.ErrorIs(t, err, dbErr)
}

func TestRateFilm_DuplicateRowsDetected(t *testing.T) {
	ratingRepo := new(MockRatingRepository)
	films := new(MockFilmGetter)
	svc := newRatingService(ratingRepo, films)

	films.On("GetByID", mock.Anything, int64(7)).Return(&models.Film{ID: 7}, nil).Once()
	corrupt := []models.Rating{
		{ID: 1, UserID: "user-1", FilmID: 7, Value: 2},
		{ID: 2, UserID: "user-1", FilmID: 7, Value: 4},
	}
	ratingRepo.On("GetByUserAndFilm", mock.Anything, "user-1", int64(7)).Return(corrupt, nil).Once()

	_, _, err := svc.RateFilm(context.Background(), "user-1", 7, 5)

	assert.ErrorIs(t, err, ErrDuplicateRatings)
	// nothing was written
	ratingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	ratingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteRating(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		ratingRepo := new(MockRatingRepository)
		films := new(MockFilmGetter)
		svc := newRatingService(ratingRepo, films)

		films.On("GetByID", mock.Anything, int64(7)).Return(&models.Film{ID: 7}, nil).Once()
		ratingRepo.On("Delete", mock.Anything, "user-1", int64(7)).Return(true, nil).Once()

		assert.NoError(t, svc.DeleteRating(ctx, "user-1", 7))
	})

	t.Run("NoRatingToDelete", func(t *testing.T) {
		ratingRepo := new(MockRatingRepository)
		films := new(MockFilmGetter)
		svc := newRatingService(ratingRepo, films)

		films.On("GetByID", mock.Anything, int64(7)).Return(&models.Film{ID: 7}, nil).Once()
		ratingRepo.On("Delete", mock.Anything, "user-1", int64(7)).Return(false, nil).Once()

		assert.ErrorIs(t, svc.DeleteRating(ctx, "user-1", 7), ErrRatingNotFound)
	})
}

func TestAverageForFilm(t *testing.T) {
	ctx := context.Background()

	t.Run("RoundedToOneDecimal", func(t *testing.T) {
		ratingRepo := new(MockRatingRepository)
		films := new(MockFilmGetter)
		svc := newRatingService(ratingRepo, films)

		films.On("GetByID", mock.Anything, int64(7)).Return(&models.Film{ID: 7}, nil).Once()
		// raw mean of [5, 2, 3] is 3.333...
		ratingRepo.On("AverageForFilm", mock.Anything, int64(7)).Return(floatPtr(10.0/3.0), nil).Once()
		ratingRepo.On("CountForFilm", mock.Anything, int64(7)).Return(int64(3), nil).Once()

		resp, err := svc.AverageForFilm(ctx, 7)

		assert.NoError(t, err)
		assert.Equal(t, 3.3, *resp.Rating)
		assert.Equal(t, int64(3), resp.Count)
	})

	t.Run("NoRatingsMeansAbsentNotZero", func(t *testing.T) {
		ratingRepo := new(MockRatingRepository)
		films := new(MockFilmGetter)
		svc := newRatingService(ratingRepo, films)

		films.On("GetByID", mock.Anything, int64(7)).Return(&models.Film{ID: 7}, nil).Once()
		ratingRepo.On("AverageForFilm", mock.Anything, int64(7)).Return(nil, nil).Once()
		ratingRepo.On("CountForFilm", mock.Anything, int64(7)).Return(int64(0), nil).Once()

		resp, err := svc.AverageForFilm(ctx, 7)

		assert.NoError(t, err)
		assert.Nil(t, resp.Rating)
		assert.Equal(t, int64(0), resp.Count)
	})
}

func TestRoundRating(t *testing.T) {
	assert.Equal(t, 3.5, RoundRating(3.5))
	assert.Equal(t, 3.3, RoundRating(10.0/3.0))
	assert.Equal(t, 3.7, RoundRating(11.0/3.0))
	assert.Equal(t, 4.5, RoundRating(4.45))
	assert.Equal(t, 5.0, RoundRating(5))
}
