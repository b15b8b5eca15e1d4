package repository

import (
	"fmt"

	"filmlog/internal/api/models"

	"gorm.io/gorm"
)

// RefreshTokenRepository stores the long-lived half of a session. Access
// tokens are stateless JWTs; these rows are what logout and refresh actually
// operate on.
type RefreshTokenRepository interface {
	Create(refreshToken *models.RefreshToken) error
	FindByToken(tokenString string) (*models.RefreshToken, error)
	Revoke(tokenID string) error
	Delete(tokenID string) error
}

type refreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(refreshToken *models.RefreshToken) error {
	return r.db.Create(refreshToken).Error
}

func (r *refreshTokenRepository) FindByToken(tokenString string) (*models.RefreshToken, error) {
	var refreshToken models.RefreshToken
	if err := r.db.Where("token = ?", tokenString).First(&refreshToken).Error; err != nil {
		return nil, err
	}
	return &refreshToken, nil
}

// Revoke flips the flag instead of deleting, so a replayed token after logout
// is distinguishable from one that never existed.
func (r *refreshTokenRepository) Revoke(tokenID string) error {
	result := r.db.Model(&models.RefreshToken{}).
		Where("id = ?", tokenID).
		Update("revoked", true)
	if result.Error != nil {
		return fmt.Errorf("revoke refresh token: %w", result.Error)
	}
	return nil
}

// Delete removes the row outright. Used for expired tokens, where keeping a
// tombstone buys nothing.
func (r *refreshTokenRepository) Delete(tokenID string) error {
	return r.db.Where("id = ?", tokenID).Delete(&models.RefreshToken{}).Error
}
