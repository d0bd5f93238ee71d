package postgres

import (
	"context"

	"velo/internal/domain/entity"
	domainerrors "velo/internal/domain/errors"
	"velo/internal/domain/repository"
	"velo/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Upsert inserts the user row if absent, keyed on email. The row only
// anchors token records, so an existing row needs no update.
func (repo *userRepository) Upsert(ctx context.Context, user *entity.User) error {
	userM := model.FromUserDomain(user)

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).
		Create(userM).Error
	if err != nil {
		return domainerrors.ErrStoreFailure.WrapMessage(err.Error())
	}

	return nil
}
