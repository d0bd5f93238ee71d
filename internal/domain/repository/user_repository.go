package repository

import (
	"context"

	"velo/internal/domain/entity"
)

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// Upsert inserts the user row if absent, keyed on email. An existing
	// row is left as-is; the record exists only to anchor token rows.
	Upsert(ctx context.Context, user *entity.User) error
}
