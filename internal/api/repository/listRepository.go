package repository

import (
	"context"
	"fmt"

	"filmlog/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListRepository maintains per-user film lists and their membership edges.
//
// Invariant owned here: a film belongs to at most one of a user's lists.
// list_films has no constraint spanning the user's lists, so AddFilm does the
// add-then-sweep inside one transaction.
type ListRepository interface {
	GetByID(ctx context.Context, listID int64) (*models.FilmList, error)
	GetByUser(ctx context.Context, userID string) ([]models.FilmList, error)
	GetFilms(ctx context.Context, listID int64) ([]models.Film, error)
	AddFilm(ctx context.Context, list *models.FilmList, filmID int64) error
	RemoveFilm(ctx context.Context, listID, filmID int64) (bool, error)
	SetPrivacy(ctx context.Context, listID int64, private bool) error
	ContainsFilm(ctx context.Context, listID, filmID int64) (bool, error)
}

type listRepository struct {
	db *gorm.DB
}

func NewListRepository(db *gorm.DB) ListRepository {
	return &listRepository{db: db}
}

func (r *listRepository) GetByID(ctx context.Context, listID int64) (*models.FilmList, error) {
	var list models.FilmList
	if err := r.db.WithContext(ctx).First(&list, listID).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *listRepository) GetByUser(ctx context.Context, userID string) ([]models.FilmList, error) {
	var lists []models.FilmList
	if err := r.db.WithContext(ctx).
		Preload("Films").
		Where("user_id = ?", userID).
		Order("type ASC").
		Find(&lists).Error; err != nil {
		return nil, fmt.Errorf("lists for user: %w", err)
	}
	return lists, nil
}

func (r *listRepository) GetFilms(ctx context.Context, listID int64) ([]models.Film, error) {
	var list models.FilmList
	if err := r.db.WithContext(ctx).Preload("Films").First(&list, listID).Error; err != nil {
		return nil, err
	}
	return list.Films, nil
}

// AddFilm puts the film into the target list, then removes it from every
// other list the owner has. The target insert goes first: if the sweep dies
// partway the film is still attached to the intended list, and the enclosing
// transaction rolls the whole thing back anyway.
func (r *listRepository) AddFilm(ctx context.Context, list *models.FilmList, filmID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		edge := &models.ListFilm{FilmListID: list.ID, FilmID: filmID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(edge).Error; err != nil {
			return fmt.Errorf("add film to list: %w", err)
		}

		// sweep: the same film out of the user's other lists
		var otherListIDs []int64
		if err := tx.Model(&models.FilmList{}).
			Where("user_id = ? AND id <> ?", list.UserID, list.ID).
			Pluck("id", &otherListIDs).Error; err != nil {
			return fmt.Errorf("owner lists: %w", err)
		}
		if len(otherListIDs) == 0 {
			return nil
		}
		if err := tx.
			Where("film_id = ? AND film_list_id IN ?", filmID, otherListIDs).
			Delete(&models.ListFilm{}).Error; err != nil {
			return fmt.Errorf("sweep film from other lists: %w", err)
		}
		return nil
	})
}

// RemoveFilm deletes the membership edge. The boolean reports whether an edge
// actually existed; the caller decides what a missing edge means.
func (r *listRepository) RemoveFilm(ctx context.Context, listID, filmID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("film_list_id = ? AND film_id = ?", listID, filmID).
		Delete(&models.ListFilm{})
	if result.Error != nil {
		return false, fmt.Errorf("remove from list: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *listRepository) SetPrivacy(ctx context.Context, listID int64, private bool) error {
	return r.db.WithContext(ctx).
		Model(&models.FilmList{}).
		Where("id = ?", listID).
		Update("private", private).Error
}

func (r *listRepository) ContainsFilm(ctx context.Context, listID, filmID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ListFilm{}).
		Where("film_list_id = ? AND film_id = ?", listID, filmID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
