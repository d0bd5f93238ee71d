package impl

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"velo/internal/domain/entity"
	"velo/internal/domain/repository"
	"velo/internal/domain/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func tokenKey(email, provider string) string {
	return email + "|" + provider
}

// fakeTokenRepo is an in-memory TokenRepository recording its traffic.
type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*entity.OAuthToken

	findCalls   int
	upsertCalls int
	findErr     error
	upsertErr   error
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*entity.OAuthToken)}
}

func (r *fakeTokenRepo) put(token *entity.OAuthToken) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *token
	r.tokens[tokenKey(token.UserEmail, token.Provider)] = &clone
}

func (r *fakeTokenRepo) get(email, provider string) *entity.OAuthToken {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token, ok := r.tokens[tokenKey(email, provider)]; ok {
		clone := *token

		return &clone
	}

	return nil
}

func (r *fakeTokenRepo) Find(_ context.Context, userEmail, provider string) (*entity.OAuthToken, error) {
	r.mu.Lock()
	r.findCalls++
	err := r.findErr
	token, ok := r.tokens[tokenKey(userEmail, provider)]
	if ok {
		clone := *token
		token = &clone
	}
	r.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, repository.ErrTokenNotFound
	}

	return token, nil
}

func (r *fakeTokenRepo) Upsert(_ context.Context, token *entity.OAuthToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upsertCalls++
	if r.upsertErr != nil {
		return r.upsertErr
	}
	clone := *token
	r.tokens[tokenKey(token.UserEmail, token.Provider)] = &clone

	return nil
}

// fakeUserRepo records user upserts.
type fakeUserRepo struct {
	mu        sync.Mutex
	upserted  []*entity.User
	upsertErr error
}

func (r *fakeUserRepo) Upsert(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return r.upsertErr
	}
	clone := *user
	r.upserted = append(r.upserted, &clone)

	return nil
}

// fakeFactory hands out the fakes as transaction-bound repositories.
type fakeFactory struct {
	users  *fakeUserRepo
	tokens *fakeTokenRepo
}

func (f *fakeFactory) NewUserRepository() repository.UserRepository   { return f.users }
func (f *fakeFactory) NewTokenRepository() repository.TokenRepository { return f.tokens }

// fakeTxManager runs the callback against the fake factory, rolling back
// nothing; failures simply propagate.
type fakeTxManager struct {
	factory *fakeFactory
	execs   int
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	m.execs++

	return fn(m.factory)
}

// fakeProvider is a scriptable ProviderService counting exchanges.
type fakeProvider struct {
	exchangePair *entity.TokenPair
	exchangeErr  error
	refreshPair  *entity.TokenPair
	refreshErr   error
	refreshDelay time.Duration
	activities   json.RawMessage
	activityErr  error

	exchangeCalls atomic.Int32
	refreshCalls  atomic.Int32
	activityAuth  []string
	mu            sync.Mutex
}

func (p *fakeProvider) Provider() string    { return entity.ProviderStrava }
func (p *fakeProvider) AuthCodeURL() string { return "https://provider.example/authorize" }

func (p *fakeProvider) Exchange(_ context.Context, _ string) (*entity.TokenPair, error) {
	p.exchangeCalls.Add(1)
	if p.exchangeErr != nil {
		return nil, p.exchangeErr
	}
	pair := *p.exchangePair

	return &pair, nil
}

func (p *fakeProvider) Refresh(_ context.Context, _ string) (*entity.TokenPair, error) {
	p.refreshCalls.Add(1)
	if p.refreshDelay > 0 {
		time.Sleep(p.refreshDelay)
	}
	if p.refreshErr != nil {
		return nil, p.refreshErr
	}
	pair := *p.refreshPair

	return &pair, nil
}

func (p *fakeProvider) Activities(_ context.Context, accessToken string) (json.RawMessage, error) {
	p.mu.Lock()
	p.activityAuth = append(p.activityAuth, accessToken)
	p.mu.Unlock()
	if p.activityErr != nil {
		return nil, p.activityErr
	}

	return p.activities, nil
}

// fakeIdentity is a scriptable IdentityService.
type fakeIdentity struct {
	identity    *entity.Identity
	exchangeErr error
}

func (f *fakeIdentity) AuthCodeURL() string { return "https://idp.example/authorize" }
func (f *fakeIdentity) LogoutURL() string   { return "https://idp.example/v2/logout" }

func (f *fakeIdentity) Exchange(_ context.Context, _ string) (*entity.Identity, error) {
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	identity := *f.identity

	return &identity, nil
}

// fakeSession issues a fixed token.
type fakeSession struct {
	token    string
	issueErr error
}

func (f *fakeSession) Issue(_ entity.Identity) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}

	return f.token, nil
}

func (f *fakeSession) Verify(_ string) (*service.SessionClaims, error) {
	panic("Verify is not exercised by usecase tests")
}
