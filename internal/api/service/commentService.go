package service

import (
	"context"
	"errors"

	"filmlog/internal/api/dto"
	"filmlog/internal/api/models"
	"filmlog/internal/api/repository"

	"gorm.io/gorm"
)

type CommentService interface {
	CreateComment(ctx context.Context, authorID *string, filmID int64, text string) (*dto.CommentResponse, error)
	GetFilmComments(ctx context.Context, filmID int64, page, pageSize int) (*dto.PaginatedCommentResponse, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	films       FilmGetter
}

func NewCommentService(commentRepo repository.CommentRepository, films FilmGetter) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		films:       films,
	}
}

// CreateComment posts a comment on a film. authorID is nil for anonymous
// callers; the comment survives its author's account either way.
func (s *commentService) CreateComment(ctx context.Context, authorID *string, filmID int64, text string) (*dto.CommentResponse, error) {
	if _, err := s.films.GetByID(ctx, filmID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFilmNotFound
		}
		return nil, err
	}

	comment := &models.Comment{
		FilmID:   filmID,
		AuthorID: authorID,
		Text:     text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	// Reload with author data
	comment, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToCommentResponse(comment), nil
}

// GetFilmComments retrieves all comments for a film with pagination
func (s *commentService) GetFilmComments(ctx context.Context, filmID int64, page, pageSize int) (*dto.PaginatedCommentResponse, error) {
	if _, err := s.films.GetByID(ctx, filmID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFilmNotFound
		}
		return nil, err
	}

	comments, total, err := s.commentRepo.GetByFilm(ctx, filmID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *dto.FromModelToCommentResponse(&comments[i]))
	}

	return dto.NewPaginatedCommentResponse(responses, int(total), page, pageSize), nil
}
