// Package auth0 exchanges identity-provider authorization codes for the
// site owner's identity.
package auth0

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"velo/config"
	domainerrors "velo/internal/domain/errors"
	"velo/internal/domain/entity"
	"velo/internal/domain/service"
)

// outboundTimeout bounds every call to the identity provider. No
// user-configurable knob; exchanges either complete quickly or fail.
const outboundTimeout = 10 * time.Second

const loginScopes = "openid profile email"

// identityService implements service.IdentityService against Auth0.
type identityService struct {
	oauth       oauth2.Config
	userinfoURL string
	logoutURL   string
	baseURL     string
	client      *http.Client
	logger      *slog.Logger
}

// NewIdentityService is the constructor for identityService.
func NewIdentityService(cfg *config.Config, logger *slog.Logger) service.IdentityService {
	domain := "https://" + cfg.Auth0.Domain

	return &identityService{
		oauth: oauth2.Config{
			ClientID:     cfg.Auth0.ClientID,
			ClientSecret: cfg.Auth0.ClientSecret,
			RedirectURL:  cfg.Auth0.BaseURL + "/auth/callback",
			Endpoint: oauth2.Endpoint{
				AuthURL:  domain + "/authorize",
				TokenURL: domain + "/oauth/token",
			},
		},
		userinfoURL: domain + "/userinfo",
		logoutURL:   domain + "/v2/logout",
		baseURL:     cfg.Auth0.BaseURL,
		client:      &http.Client{Timeout: outboundTimeout},
		logger:      logger,
	}
}

// AuthCodeURL builds the provider's authorization URL for the login redirect.
func (s *identityService) AuthCodeURL() string {
	params := url.Values{}
	params.Set("response_type", "code")
	params.Set("client_id", s.oauth.ClientID)
	params.Set("redirect_uri", s.oauth.RedirectURL)
	params.Set("scope", loginScopes)

	return s.oauth.Endpoint.AuthURL + "?" + params.Encode()
}

// LogoutURL builds the provider's logout URL, returning to the site root.
func (s *identityService) LogoutURL() string {
	params := url.Values{}
	params.Set("client_id", s.oauth.ClientID)
	params.Set("returnTo", s.baseURL)

	return s.logoutURL + "?" + params.Encode()
}

// Exchange trades an authorization code for tokens, then resolves the
// owner's profile. A rejected exchange is terminal for this code.
func (s *identityService) Exchange(ctx context.Context, code string) (*entity.Identity, error) {
	octx := context.WithValue(ctx, oauth2.HTTPClient, s.client)

	token, err := s.oauth.Exchange(octx, code)
	if err != nil {
		s.logger.Warn("identity code exchange rejected", slog.Any("error", err))

		return nil, domainerrors.ErrIdentityExchange.WrapMessage(err.Error())
	}

	identity, err := s.fetchUserInfo(ctx, token.AccessToken)
	if err != nil {
		return nil, err
	}

	return identity, nil
}

func (s *identityService) fetchUserInfo(ctx context.Context, accessToken string) (*entity.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userinfoURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create userinfo request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, domainerrors.ErrIdentityExchange.WrapMessage(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		return nil, domainerrors.ErrIdentityExchange.WrapMessage(
			errors.Errorf("userinfo request failed with status %d: %s", resp.StatusCode, string(body)).Error())
	}

	var profile struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, errors.Wrap(err, "failed to decode userinfo response")
	}
	if profile.Email == "" {
		return nil, domainerrors.ErrIdentityExchange.WrapMessage("userinfo response missing email")
	}

	return &entity.Identity{Email: profile.Email, Name: profile.Name}, nil
}
