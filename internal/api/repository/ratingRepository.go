package repository

import (
	"context"
	"database/sql"

	"filmlog/internal/api/models"

	"gorm.io/gorm"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	Update(ctx context.Context, rating *models.Rating) error
	Delete(ctx context.Context, userID string, filmID int64) (bool, error)
	GetByUserAndFilm(ctx context.Context, userID string, filmID int64) ([]models.Rating, error)
	GetByFilm(ctx context.Context, filmID int64, page, pageSize int) ([]models.Rating, int64, error)
	AverageForFilm(ctx context.Context, filmID int64) (*float64, error)
	AveragesForFilms(ctx context.Context, filmIDs []int64) (map[int64]float64, error)
	CountForFilm(ctx context.Context, filmID int64) (int64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Create a new rating
func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

// Update an existing rating
func (r *ratingRepository) Update(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).Save(rating).Error
}

// Delete a rating by user and film; reports whether a row existed
func (r *ratingRepository) Delete(ctx context.Context, userID string, filmID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND film_id = ?", userID, filmID).
		Delete(&models.Rating{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// GetByUserAndFilm returns every rating row for the pair. The uniqueness
// constraint means at most one; the upsert engine checks the count anyway so
// a violated invariant is detected rather than papered over.
func (r *ratingRepository) GetByUserAndFilm(ctx context.Context, userID string, filmID int64) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND film_id = ?", userID, filmID).
		Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

// GetByFilm retrieves all ratings for a specific film with pagination
func (r *ratingRepository) GetByFilm(ctx context.Context, filmID int64, page, pageSize int) ([]models.Rating, int64, error) {
	var ratings []models.Rating
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Rating{}).Where("film_id = ?", filmID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).
		Where("film_id = ?", filmID).
		Preload("User").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&ratings).Error
	if err != nil {
		return nil, 0, err
	}

	return ratings, total, nil
}

// AverageForFilm computes the raw mean of the film's ratings. A film with no
// ratings yields nil, never zero.
func (r *ratingRepository) AverageForFilm(ctx context.Context, filmID int64) (*float64, error) {
	var avg sql.NullFloat64
	err := r.db.WithContext(ctx).Model(&models.Rating{}).
		Select("AVG(value)").
		Where("film_id = ?", filmID).
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}

// AveragesForFilms computes means for a batch of films in one grouped query.
// Films with no ratings are simply absent from the result map.
func (r *ratingRepository) AveragesForFilms(ctx context.Context, filmIDs []int64) (map[int64]float64, error) {
	if len(filmIDs) == 0 {
		return map[int64]float64{}, nil
	}
	var rows []struct {
		FilmID  int64
		Average float64
	}
	err := r.db.WithContext(ctx).Model(&models.Rating{}).
		Select("film_id, AVG(value) AS average").
		Where("film_id IN ?", filmIDs).
		Group("film_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	averages := make(map[int64]float64, len(rows))
	for _, row := range rows {
		averages[row.FilmID] = row.Average
	}
	return averages, nil
}

// CountForFilm counts the total number of ratings for a film
func (r *ratingRepository) CountForFilm(ctx context.Context, filmID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Rating{}).Where("film_id = ?", filmID).Count(&count).Error
	return count, err
}
