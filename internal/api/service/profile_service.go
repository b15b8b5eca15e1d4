package service

import (
	"context"
	"errors"

	"filmlog/internal/api/dto"
	"filmlog/internal/api/repository"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrNotSelf      = errors.New("you can only update your own profile")
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, requesterID, userID string, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
}

type profileService struct {
	userRepo repository.UserRepository
}

func NewProfileService(userRepo repository.UserRepository) ProfileService {
	return &profileService{userRepo: userRepo}
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return dto.FromModelToProfileResponse(user), nil
}

// UpdateProfile applies the requested changes to the caller's own account.
// Anyone else's account is off limits no matter what the token says.
func (s *profileService) UpdateProfile(ctx context.Context, requesterID, userID string, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	if requesterID != userID {
		return nil, ErrNotSelf
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Email != nil {
		if other, err := s.userRepo.FindByEmail(*req.Email); err == nil && other.ID != userID {
			return nil, ErrEmailInUse
		}
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return dto.FromModelToProfileResponse(user), nil
}
