package model

import (
	"time"

	"velo/internal/domain/entity"
)

// OAuthTokenModel mirrors the 'oauth_tokens' table. The composite unique
// index enforces one row per (user_email, provider); every write is an
// upsert on that pair.
type OAuthTokenModel struct {
	UserEmail    string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_oauth_tokens_user_email_provider"`
	Provider     string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_oauth_tokens_user_email_provider"`
	AccessToken  string    `gorm:"type:text;not null"`
	RefreshToken string    `gorm:"type:text;not null"`
	ExpiresAt    time.Time `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (OAuthTokenModel) TableName() string {
	return "oauth_tokens"
}

// FromTokenDomain maps a domain entity to the persistence model.
func FromTokenDomain(token *entity.OAuthToken) *OAuthTokenModel {
	return &OAuthTokenModel{
		UserEmail:    token.UserEmail,
		Provider:     token.Provider,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.ExpiresAt.UTC(),
		CreatedAt:    token.CreatedAt,
		UpdatedAt:    token.UpdatedAt,
	}
}

// ToTokenDomain maps the persistence model back to a domain entity.
func ToTokenDomain(m *OAuthTokenModel) *entity.OAuthToken {
	return &entity.OAuthToken{
		UserEmail:    m.UserEmail,
		Provider:     m.Provider,
		AccessToken:  m.AccessToken,
		RefreshToken: m.RefreshToken,
		ExpiresAt:    m.ExpiresAt.UTC(),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
