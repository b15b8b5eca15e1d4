package service

import (
	"context"
	"testing"

	"filmlog/internal/api/dto"
	"filmlog/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func TestGetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewProfileService(userRepo)

		userRepo.On("FindByID", "user-1").Return(&models.User{
			ID: "user-1", Username: "alice", Email: "alice@example.com",
		}, nil).Once()

		profile, err := svc.GetProfile(ctx, "user-1")

		require.NoError(t, err)
		assert.Equal(t, "alice", profile.Username)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewProfileService(userRepo)

		userRepo.On("FindByID", "ghost").Return(nil, gorm.ErrRecordNotFound).Once()

		_, err := svc.GetProfile(ctx, "ghost")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("SelfUpdate", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewProfileService(userRepo)

		userRepo.On("FindByID", "user-1").Return(&models.User{
			ID: "user-1", Username: "alice", FirstName: "A",
		}, nil).Once()
		userRepo.On("Update", mock.MatchedBy(func(u *models.User) bool {
			return u.FirstName == "Alice"
		})).Return(nil).Once()

		profile, err := svc.UpdateProfile(ctx, "user-1", "user-1", dto.UpdateProfileRequest{
			FirstName: strPtr("Alice"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Alice", profile.FirstName)
	})

	t.Run("OtherAccountRejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewProfileService(userRepo)

		_, err := svc.UpdateProfile(ctx, "bob", "user-1", dto.UpdateProfileRequest{
			FirstName: strPtr("Mallory"),
		})

		assert.ErrorIs(t, err, ErrNotSelf)
		userRepo.AssertNotCalled(t, "Update", mock.Anything)
	})

	t.Run("EmailTakenByAnotherAccount", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewProfileService(userRepo)

		userRepo.On("FindByID", "user-1").Return(&models.User{ID: "user-1"}, nil).Once()
		userRepo.On("FindByEmail", "taken@example.com").Return(&models.User{ID: "user-2"}, nil).Once()

		_, err := svc.UpdateProfile(ctx, "user-1", "user-1", dto.UpdateProfileRequest{
			Email: strPtr("taken@example.com"),
		})

		assert.ErrorIs(t, err, ErrEmailInUse)
	})
}
