package impl

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velo/internal/domain/entity"
	domainerrors "velo/internal/domain/errors"
	"velo/internal/errors"
	"velo/internal/usecase"
)

func newTestProviderService(tx *fakeTxManager, provider *fakeProvider, manager usecase.TokenManager) usecase.ProviderUsecase {
	return NewProviderService(ProviderServiceParams{
		TxManager:    tx,
		Provider:     provider,
		TokenManager: manager,
		Logger:       testLogger(),
	})
}

func TestProviderService_HandleCallbackPersistsUserAndToken(t *testing.T) {
	users := &fakeUserRepo{}
	tokens := newFakeTokenRepo()
	tx := &fakeTxManager{factory: &fakeFactory{users: users, tokens: tokens}}
	expiry := time.Now().Add(6 * time.Hour).UTC()
	provider := &fakeProvider{
		exchangePair: &entity.TokenPair{
			AccessToken:  "initial-access",
			RefreshToken: "initial-refresh",
			ExpiresAt:    expiry,
		},
	}
	svc := newTestProviderService(tx, provider, newTestTokenManager(tokens, provider))

	err := svc.HandleCallback(context.Background(), "owner@example.com", "connect-code")
	require.NoError(t, err)

	assert.Equal(t, 1, tx.execs)
	require.Len(t, users.upserted, 1)
	assert.Equal(t, "owner@example.com", users.upserted[0].Email)

	stored := tokens.get("owner@example.com", entity.ProviderStrava)
	require.NotNil(t, stored)
	assert.Equal(t, "initial-access", stored.AccessToken)
	assert.Equal(t, "initial-refresh", stored.RefreshToken)
	assert.True(t, stored.ExpiresAt.Equal(expiry))
}

func TestProviderService_HandleCallbackIsIdempotent(t *testing.T) {
	users := &fakeUserRepo{}
	tokens := newFakeTokenRepo()
	tx := &fakeTxManager{factory: &fakeFactory{users: users, tokens: tokens}}
	provider := &fakeProvider{
		exchangePair: &entity.TokenPair{
			AccessToken:  "initial-access",
			RefreshToken: "initial-refresh",
			ExpiresAt:    time.Now().Add(6 * time.Hour),
		},
	}
	svc := newTestProviderService(tx, provider, newTestTokenManager(tokens, provider))

	require.NoError(t, svc.HandleCallback(context.Background(), "owner@example.com", "code-1"))
	require.NoError(t, svc.HandleCallback(context.Background(), "owner@example.com", "code-2"))

	tokens.mu.Lock()
	assert.Len(t, tokens.tokens, 1, "repeated connects keep exactly one row per (email, provider)")
	tokens.mu.Unlock()
}

func TestProviderService_HandleCallbackMissingCode(t *testing.T) {
	tx := &fakeTxManager{factory: &fakeFactory{users: &fakeUserRepo{}, tokens: newFakeTokenRepo()}}
	provider := &fakeProvider{}
	svc := newTestProviderService(tx, provider, newTestTokenManager(newFakeTokenRepo(), provider))

	err := svc.HandleCallback(context.Background(), "owner@example.com", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrMissingAuthCode))
	assert.Zero(t, provider.exchangeCalls.Load())
	assert.Zero(t, tx.execs)
}

func TestProviderService_HandleCallbackExchangeRejection(t *testing.T) {
	tx := &fakeTxManager{factory: &fakeFactory{users: &fakeUserRepo{}, tokens: newFakeTokenRepo()}}
	provider := &fakeProvider{exchangeErr: domainerrors.ErrProviderExchange}
	svc := newTestProviderService(tx, provider, newTestTokenManager(newFakeTokenRepo(), provider))

	err := svc.HandleCallback(context.Background(), "owner@example.com", "bad-code")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProviderExchange))
	assert.Zero(t, tx.execs, "a rejected exchange must not touch the store")
}

func TestProviderService_ActivitiesUsesEnsuredToken(t *testing.T) {
	tokens := newFakeTokenRepo()
	tokens.put(storedToken(time.Now().Add(10 * time.Minute)))
	raw := json.RawMessage(`[{"id":1,"name":"Morning Ride"}]`)
	provider := &fakeProvider{activities: raw}
	tx := &fakeTxManager{factory: &fakeFactory{users: &fakeUserRepo{}, tokens: tokens}}
	svc := newTestProviderService(tx, provider, newTestTokenManager(tokens, provider))

	got, err := svc.Activities(context.Background(), "owner@example.com")
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(got))
	require.Len(t, provider.activityAuth, 1)
	assert.Equal(t, "stored-access", provider.activityAuth[0])
	assert.Zero(t, provider.refreshCalls.Load())
}

func TestProviderService_ActivitiesNoLinkedAccount(t *testing.T) {
	tokens := newFakeTokenRepo()
	provider := &fakeProvider{}
	tx := &fakeTxManager{factory: &fakeFactory{users: &fakeUserRepo{}, tokens: tokens}}
	svc := newTestProviderService(tx, provider, newTestTokenManager(tokens, provider))

	got, err := svc.Activities(context.Background(), "owner@example.com")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNoLinkedAccount))
	assert.Empty(t, provider.activityAuth, "no gateway call without a linked account")
}

func TestProviderService_ActivitiesAfterRefresh(t *testing.T) {
	tokens := newFakeTokenRepo()
	tokens.put(storedToken(time.Now().Add(-time.Minute)))
	raw := json.RawMessage(`[]`)
	provider := &fakeProvider{
		activities: raw,
		refreshPair: &entity.TokenPair{
			AccessToken:  "renewed-access",
			RefreshToken: "renewed-refresh",
			ExpiresAt:    time.Now().Add(6 * time.Hour),
		},
	}
	tx := &fakeTxManager{factory: &fakeFactory{users: &fakeUserRepo{}, tokens: tokens}}
	svc := newTestProviderService(tx, provider, newTestTokenManager(tokens, provider))

	got, err := svc.Activities(context.Background(), "owner@example.com")
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(got))
	require.Len(t, provider.activityAuth, 1)
	assert.Equal(t, "renewed-access", provider.activityAuth[0], "gateway must use the renewed token")
}

func TestProviderService_ActivitiesRefreshRejection(t *testing.T) {
	tokens := newFakeTokenRepo()
	tokens.put(storedToken(time.Now().Add(-time.Minute)))
	provider := &fakeProvider{refreshErr: domainerrors.ErrTokenRefresh}
	tx := &fakeTxManager{factory: &fakeFactory{users: &fakeUserRepo{}, tokens: tokens}}
	svc := newTestProviderService(tx, provider, newTestTokenManager(tokens, provider))

	got, err := svc.Activities(context.Background(), "owner@example.com")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenRefresh))
	assert.Empty(t, provider.activityAuth)
}
