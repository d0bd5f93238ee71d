// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProviderStrava identifies the fitness-data provider in persisted token rows.
const ProviderStrava = "strava"

// User anchors provider token rows by email. It carries no other state;
// the site has a single authenticated identity per deployment.
type User struct {
	ID        uuid.UUID // The unique ID for this user record.
	Email     string    // The identity-provider-verified email, unique per deployment.
	CreatedAt time.Time // Timestamp of the first provider connection.
}

// Identity is the result of exchanging an authorization code with the
// identity provider. It is never persisted; it only feeds session issuance.
type Identity struct {
	Email string // Required. The authenticated owner's email.
	Name  string // Optional display name.
}

// OAuthToken is the persisted access/refresh grant for one external provider.
// Exactly one row exists per (UserEmail, Provider); every write is an upsert
// on that pair. Stale rows are healed by refresh, never purged.
type OAuthToken struct {
	UserEmail    string    // Links the grant to the owning user by email.
	Provider     string    // Provider key, e.g. "strava".
	AccessToken  string    // Bearer token for the provider's resource API.
	RefreshToken string    // Long-lived token used to obtain a new pair.
	ExpiresAt    time.Time // Absolute UTC instant the access token expires.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Expired reports whether the access token is no longer usable at the
// given instant. Expiry at exactly now counts as expired.
func (t *OAuthToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// TokenPair is a provider exchange or refresh result, not yet persisted.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}
