package service

import (
	"context"
	"errors"

	"filmlog/internal/api/dto"
	"filmlog/internal/api/models"
	"filmlog/internal/api/repository"

	"gorm.io/gorm"
)

var (
	ErrListNotFound  = errors.New("list not found")
	ErrFilmNotInList = errors.New("film not found in list")
	ErrNotListOwner  = errors.New("you don't own this list")
)

type ListService interface {
	AddFilmToList(ctx context.Context, userID string, listID, filmID int64) error
	RemoveFilmFromList(ctx context.Context, userID string, listID, filmID int64) error
	SetListPrivacy(ctx context.Context, userID string, listID int64, private bool) error
	GetUserLists(ctx context.Context, requesterID, ownerID string) (*dto.ListCollectionResponse, error)
}

type listService struct {
	listRepo   repository.ListRepository
	ratingRepo repository.RatingRepository
	films      FilmGetter
}

func NewListService(listRepo repository.ListRepository, ratingRepo repository.RatingRepository, films FilmGetter) ListService {
	return &listService{
		listRepo:   listRepo,
		ratingRepo: ratingRepo,
		films:      films,
	}
}

// ownedList resolves the list and gates on ownership before any mutation.
func (s *listService) ownedList(ctx context.Context, userID string, listID int64) (*models.FilmList, error) {
	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	if list.UserID != userID {
		return nil, ErrNotListOwner
	}
	return list, nil
}

// AddFilmToList moves the film into the target list. Whatever list of this
// user held the film before, it does not afterwards; the repository performs
// the add and the sweep in one transaction.
func (s *listService) AddFilmToList(ctx context.Context, userID string, listID, filmID int64) error {
	list, err := s.ownedList(ctx, userID, listID)
	if err != nil {
		return err
	}

	if _, err := s.films.GetByID(ctx, filmID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFilmNotFound
		}
		return err
	}

	return s.listRepo.AddFilm(ctx, list, filmID)
}

// RemoveFilmFromList drops the membership edge. A film that was never in the
// list is its own failure mode, distinct from a missing film or list.
func (s *listService) RemoveFilmFromList(ctx context.Context, userID string, listID, filmID int64) error {
	if _, err := s.ownedList(ctx, userID, listID); err != nil {
		return err
	}

	if _, err := s.films.GetByID(ctx, filmID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFilmNotFound
		}
		return err
	}

	removed, err := s.listRepo.RemoveFilm(ctx, listID, filmID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrFilmNotInList
	}
	return nil
}

func (s *listService) SetListPrivacy(ctx context.Context, userID string, listID int64, private bool) error {
	if _, err := s.ownedList(ctx, userID, listID); err != nil {
		return err
	}
	return s.listRepo.SetPrivacy(ctx, listID, private)
}

// GetUserLists returns the owner's lists. The owner sees everything; anyone
// else, including anonymous callers, sees only lists flagged public.
func (s *listService) GetUserLists(ctx context.Context, requesterID, ownerID string) (*dto.ListCollectionResponse, error) {
	lists, err := s.listRepo.GetByUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var filmIDs []int64
	for i := range lists {
		for j := range lists[i].Films {
			filmIDs = append(filmIDs, lists[i].Films[j].ID)
		}
	}
	averages, err := s.ratingRepo.AveragesForFilms(ctx, filmIDs)
	if err != nil {
		return nil, err
	}
	for id, avg := range averages {
		averages[id] = RoundRating(avg)
	}

	resp := &dto.ListCollectionResponse{Lists: make([]dto.ListResponse, 0, len(lists))}
	for i := range lists {
		if lists[i].Private && requesterID != ownerID {
			continue
		}
		resp.Lists = append(resp.Lists, *dto.FromModelToListResponse(&lists[i], averages))
	}
	resp.Total = len(resp.Lists)
	return resp, nil
}
