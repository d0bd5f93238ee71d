// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"velo/internal/domain/entity"
	domainerrors "velo/internal/domain/errors"
	"velo/internal/domain/repository"
	"velo/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// tokenRepository implements the domain.TokenRepository interface using GORM.
type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository is the constructor for tokenRepository.
func NewTokenRepository(db *gorm.DB) repository.TokenRepository {
	return &tokenRepository{db: db}
}

// Find retrieves the token row for a (userEmail, provider) pair.
func (repo *tokenRepository) Find(ctx context.Context, userEmail, provider string) (*entity.OAuthToken, error) {
	var tokenM model.OAuthTokenModel

	err := repo.db.WithContext(ctx).
		Where("user_email = ? AND provider = ?", userEmail, provider).
		First(&tokenM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTokenNotFound
		}

		return nil, errors.Wrap(err, "failed to find oauth token")
	}

	return model.ToTokenDomain(&tokenM), nil
}

// Upsert inserts or replaces the token row keyed on (user_email, provider).
// ON CONFLICT DO UPDATE makes the write idempotent: repeating it with
// identical values leaves exactly one row with those values.
func (repo *tokenRepository) Upsert(ctx context.Context, token *entity.OAuthToken) error {
	tokenM := model.FromTokenDomain(token)
	tokenM.UpdatedAt = time.Now().UTC()

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_email"}, {Name: "provider"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"access_token", "refresh_token", "expires_at", "updated_at",
			}),
		}).
		Create(tokenM).Error
	if err != nil {
		return domainerrors.ErrStoreFailure.WrapMessage(err.Error())
	}

	return nil
}
