package model

import (
	"time"

	"github.com/google/uuid"

	"velo/internal/domain/entity"
)

// UserModel mirrors the 'users' table. The email column is the natural key
// that token rows reference.
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Email     string    `gorm:"type:varchar(255);unique;not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// FromUserDomain maps a domain entity to the persistence model.
func FromUserDomain(user *entity.User) *UserModel {
	return &UserModel{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserDomain maps the persistence model back to a domain entity.
func ToUserDomain(m *UserModel) *entity.User {
	return &entity.User{
		ID:        m.ID,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
	}
}
