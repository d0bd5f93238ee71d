// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"velo/internal/domain/entity"
)

// Domain-specific errors for credential persistence.
// This allows the application layer to handle specific outcomes without depending on database-specific errors.
var (
	// ErrTokenNotFound is returned when no token row exists for a
	// (userEmail, provider) pair.
	ErrTokenNotFound = errors.New("oauth token not found")
)

// TokenRepository defines the standard operations for provider token persistence.
type TokenRepository interface {
	// Find retrieves the token row for a (userEmail, provider) pair.
	// Returns ErrTokenNotFound when the user never authorized the provider.
	Find(ctx context.Context, userEmail, provider string) (*entity.OAuthToken, error)

	// Upsert inserts or replaces the token row keyed on
	// (userEmail, provider). Idempotent: writing identical values twice
	// leaves exactly one row with those values.
	Upsert(ctx context.Context, token *entity.OAuthToken) error
}
