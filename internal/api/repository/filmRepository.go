package repository

import (
	"context"
	"fmt"

	"filmlog/internal/api/models"

	"gorm.io/gorm"
)

// FilmOrdering controls how the catalogue listing is sorted.
type FilmOrdering int

const (
	OrderDefault FilmOrdering = iota
	OrderRatingAsc
	OrderRatingDesc
)

type FilmRepo struct {
	db *gorm.DB
}

func NewFilmRepo(db *gorm.DB) *FilmRepo {
	return &FilmRepo{db: db}
}

// GetAll lists films, optionally narrowed to those carrying every named genre
// and optionally ordered by their aggregate rating. The aggregate used for
// ordering is a subquery over ratings, so it always reflects the current rows.
func (r *FilmRepo) GetAll(ctx context.Context, genres []string, ordering FilmOrdering, page, pageSize int) ([]models.Film, int64, error) {
	var list []models.Film
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Film{})
	// AND across genre names: each one must be attached to the film
	for _, name := range genres {
		q = q.Where(
			"EXISTS (SELECT 1 FROM film_genres fg JOIN genres g ON g.id = fg.genre_id WHERE fg.film_id = films.id AND g.name = ?)",
			name,
		)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch ordering {
	case OrderRatingAsc:
		q = q.Select("films.*, (SELECT AVG(value) FROM ratings WHERE ratings.film_id = films.id) AS film_rating").
			Order("film_rating ASC NULLS FIRST")
	case OrderRatingDesc:
		q = q.Select("films.*, (SELECT AVG(value) FROM ratings WHERE ratings.film_id = films.id) AS film_rating").
			Order("film_rating DESC NULLS LAST")
	default:
		q = q.Order("films.id DESC")
	}

	offset := (page - 1) * pageSize
	if err := q.
		Preload("Genres").
		Preload("Franchise").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *FilmRepo) GetByID(ctx context.Context, id int64) (*models.Film, error) {
	var f models.Film
	if err := r.db.WithContext(ctx).Preload("Genres").Preload("Franchise").First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// GetFranchiseSiblings returns the other films sharing the given franchise.
func (r *FilmRepo) GetFranchiseSiblings(ctx context.Context, franchiseID, excludeFilmID int64) ([]models.Film, error) {
	var list []models.Film
	if err := r.db.WithContext(ctx).
		Where("franchise_id = ? AND id <> ?", franchiseID, excludeFilmID).
		Order("release_date ASC NULLS LAST").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("franchise siblings: %w", err)
	}
	return list, nil
}

func (r *FilmRepo) Create(ctx context.Context, f *models.Film) error {
	if err := r.db.WithContext(ctx).Create(f).Error; err != nil {
		return fmt.Errorf("create film: %w", err)
	}
	// GORM will populate f.ID and f.CreatedAt
	return nil
}

func (r *FilmRepo) Update(ctx context.Context, id int64, f *models.Film) error {
	// ensure ID set for Save
	f.ID = id
	if err := r.db.WithContext(ctx).Save(f).Error; err != nil {
		return fmt.Errorf("update film: %w", err)
	}
	return nil
}

func (r *FilmRepo) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.Film{}, id).Error; err != nil {
		return fmt.Errorf("delete film: %w", err)
	}
	return nil
}

func (r *FilmRepo) AddGenresToFilm(ctx context.Context, filmID int64, genreIDs []int64) error {
	if len(genreIDs) == 0 {
		return nil
	}
	tx := r.db.WithContext(ctx).Begin()
	var f models.Film
	if err := tx.First(&f, filmID).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("film not found: %w", err)
	}
	genres := make([]models.Genre, 0, len(genreIDs))
	for _, id := range genreIDs {
		genres = append(genres, models.Genre{ID: id})
	}
	if err := tx.Model(&f).Association("Genres").Append(&genres); err != nil {
		tx.Rollback()
		return fmt.Errorf("append genres: %w", err)
	}
	return tx.Commit().Error
}

func (r *FilmRepo) RemoveGenresFromFilm(ctx context.Context, filmID int64, genreIDs []int64) error {
	if len(genreIDs) == 0 {
		return nil
	}
	tx := r.db.WithContext(ctx).Begin()
	var f models.Film
	if err := tx.First(&f, filmID).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("film not found: %w", err)
	}
	genres := make([]models.Genre, 0, len(genreIDs))
	for _, id := range genreIDs {
		genres = append(genres, models.Genre{ID: id})
	}
	if err := tx.Model(&f).Association("Genres").Delete(&genres); err != nil {
		tx.Rollback()
		return fmt.Errorf("remove genres: %w", err)
	}
	return tx.Commit().Error
}
