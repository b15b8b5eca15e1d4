package repository

import (
	"context"
	"fmt"

	"filmlog/internal/api/models"

	"gorm.io/gorm"
)

type GenreRepo struct {
	db *gorm.DB
}

func NewGenreRepo(db *gorm.DB) *GenreRepo {
	return &GenreRepo{db: db}
}

func (r *GenreRepo) GetAll(ctx context.Context) ([]models.Genre, error) {
	var list []models.Genre
	if err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get genres: %w", err)
	}
	return list, nil
}

func (r *GenreRepo) Create(ctx context.Context, g *models.Genre) error {
	if err := r.db.WithContext(ctx).Create(g).Error; err != nil {
		return fmt.Errorf("create genre: %w", err)
	}
	return nil
}

// GetFilmsByGenre returns films associated with the given genre id.
// Preloads Genres on each film.
func (r *GenreRepo) GetFilmsByGenre(ctx context.Context, genreID int64) ([]models.Film, error) {
	var list []models.Film
	if err := r.db.WithContext(ctx).
		Model(&models.Film{}).
		Joins("JOIN film_genres fg ON fg.film_id = films.id").
		Where("fg.genre_id = ?", genreID).
		Preload("Genres").
		Order("films.created_at desc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get films by genre: %w", err)
	}
	return list, nil
}
