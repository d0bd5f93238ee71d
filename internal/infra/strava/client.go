// Package strava is the OAuth2 client for the fitness-data provider:
// the connect redirect, the token endpoint exchanges and the activity
// listing resource call.
package strava

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"velo/config"
	"velo/internal/domain/entity"
	domainerrors "velo/internal/domain/errors"
	"velo/internal/domain/service"
	apperrors "velo/internal/errors"
)

const (
	authURL       = "https://www.strava.com/oauth/authorize"
	tokenURL      = "https://www.strava.com/oauth/token"
	activitiesURL = "https://www.strava.com/api/v3/athlete/activities"
)

const connectScopes = "read,activity:read_all"

// outboundTimeout bounds every provider call; expiry surfaces as an
// upstream failure rather than hanging the request.
const outboundTimeout = 10 * time.Second

// client implements service.ProviderService against Strava.
type client struct {
	oauth         oauth2.Config
	activitiesURL string
	perPage       int
	httpClient    *http.Client
	logger        *slog.Logger
}

// NewClient is the constructor for the Strava client.
func NewClient(cfg *config.Config, logger *slog.Logger) service.ProviderService {
	return &client{
		oauth: oauth2.Config{
			ClientID:     cfg.Strava.ClientID,
			ClientSecret: cfg.Strava.ClientSecret,
			RedirectURL:  cfg.Auth0.BaseURL + "/provider/callback",
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
			},
		},
		activitiesURL: activitiesURL,
		perPage:       cfg.Strava.PerPage,
		httpClient:    &http.Client{Timeout: outboundTimeout},
		logger:        logger,
	}
}

// Provider returns the provider key stored in token rows.
func (c *client) Provider() string {
	return entity.ProviderStrava
}

// AuthCodeURL builds the provider's authorization URL for the connect redirect.
func (c *client) AuthCodeURL() string {
	params := url.Values{}
	params.Set("client_id", c.oauth.ClientID)
	params.Set("redirect_uri", c.oauth.RedirectURL)
	params.Set("response_type", "code")
	params.Set("approval_prompt", "auto")
	params.Set("scope", connectScopes)

	return c.oauth.Endpoint.AuthURL + "?" + params.Encode()
}

// Exchange trades an authorization code for the initial token pair.
func (c *client) Exchange(ctx context.Context, code string) (*entity.TokenPair, error) {
	token, err := c.oauth.Exchange(c.outboundContext(ctx), code)
	if err != nil {
		c.logger.Warn("provider code exchange rejected", slog.Any("error", err))

		return nil, domainerrors.ErrProviderExchange.WrapMessage(err.Error())
	}

	return pairFromToken(token, ""), nil
}

// Refresh trades a refresh token for a new pair. A rejection by the token
// endpoint maps to ErrTokenRefresh; transport failures map to
// ErrProviderUpstream so callers can tell a revoked grant from a flaky
// network.
func (c *client) Refresh(ctx context.Context, refreshToken string) (*entity.TokenPair, error) {
	source := c.oauth.TokenSource(c.outboundContext(ctx), &oauth2.Token{RefreshToken: refreshToken})

	token, err := source.Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if apperrors.As(err, &retrieveErr) {
			c.logger.Warn("provider refresh rejected",
				slog.Int("status", retrieveErr.Response.StatusCode))

			return nil, domainerrors.ErrTokenRefresh.WrapMessage(err.Error())
		}

		return nil, domainerrors.ErrProviderUpstream.WrapMessage(err.Error())
	}

	return pairFromToken(token, refreshToken), nil
}

// Activities fetches the bounded activity listing and returns the raw
// collection unmodified.
func (c *client) Activities(ctx context.Context, accessToken string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.activitiesURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create activities request")
	}
	query := req.URL.Query()
	query.Set("per_page", strconv.Itoa(c.perPage))
	req.URL.RawQuery = query.Encode()
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domainerrors.ErrProviderUpstream.WrapMessage(err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domainerrors.ErrProviderUpstream.WrapMessage(err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("provider activities request failed",
			slog.Int("status", resp.StatusCode))

		return nil, domainerrors.ErrProviderUpstream.
			WithDetails("activities request failed with status " + strconv.Itoa(resp.StatusCode))
	}

	return json.RawMessage(body), nil
}

// outboundContext pins the bounded HTTP client for oauth2 exchanges.
func (c *client) outboundContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// pairFromToken maps an oauth2 token to the domain pair. Providers that
// rotate refresh tokens return a new one; if the response omits it, the
// previous refresh token stays in force.
func pairFromToken(token *oauth2.Token, previousRefresh string) *entity.TokenPair {
	refresh := token.RefreshToken
	if refresh == "" {
		refresh = previousRefresh
	}

	return &entity.TokenPair{
		AccessToken:  token.AccessToken,
		RefreshToken: refresh,
		ExpiresAt:    token.Expiry.UTC(),
	}
}
