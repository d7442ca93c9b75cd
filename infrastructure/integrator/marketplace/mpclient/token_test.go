package mpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/marketplace-ingest-api/internal/domain"
)

type memoryTokenCache struct {
	mu     sync.Mutex
	tokens map[string]*domain.AccessToken
	ttls   map[string]time.Duration
}

func newMemoryTokenCache() *memoryTokenCache {
	return &memoryTokenCache{tokens: map[string]*domain.AccessToken{}, ttls: map[string]time.Duration{}}
}

func (c *memoryTokenCache) Get(_ context.Context, key string) (*domain.AccessToken, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	token, ok := c.tokens[key]
	return token, ok, nil
}

func (c *memoryTokenCache) Set(_ context.Context, key string, token *domain.AccessToken, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens[key] = token
	c.ttls[key] = ttl
	return nil
}

func testCredentials() *domain.AccountCredentials {
	return &domain.AccountCredentials{
		AccountID:    "loja-a",
		ClientID:     "client-a",
		ClientSecret: "secret-a",
		RefreshToken: "refresh-a",
		APIBaseURL:   "http://localhost",
	}
}

func tokenServer(t *testing.T, calls *int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "refresh-a", r.PostForm.Get("refresh_token"))
		assert.Equal(t, "client-a", r.PostForm.Get("client_id"))
		assert.Equal(t, "secret-a", r.PostForm.Get("client_secret"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"Atza|abc","token_type":"bearer","expires_in":3600}`))
	}))
}

func TestExchangeRefreshToken_Success(t *testing.T) {
	var calls int32
	srv := tokenServer(t, &calls)
	defer srv.Close()

	token, err := ExchangeRefreshToken(context.Background(), resty.New(), srv.URL, testCredentials())
	require.NoError(t, err)
	assert.Equal(t, "Atza|abc", token.Value)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)
	assert.False(t, token.Expired(time.Now()))
}

func TestExchangeRefreshToken_RejectedIsAuthenticationError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer srv.Close()

	_, err := ExchangeRefreshToken(context.Background(), resty.New(), srv.URL, testCredentials())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAuthentication))
	assert.True(t, IsAuthFailure(err))
	assert.Contains(t, err.Error(), "invalid_grant")
	// falha de autenticação nunca é repetida
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestExchangeRefreshToken_EmptyRefreshToken(t *testing.T) {
	creds := testCredentials()
	creds.RefreshToken = ""

	_, err := ExchangeRefreshToken(context.Background(), resty.New(), "http://invalid", creds)
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestTokenManager_ReusesCachedToken(t *testing.T) {
	var calls int32
	srv := tokenServer(t, &calls)
	defer srv.Close()

	cache := newMemoryTokenCache()
	tm := NewTokenManager(resty.New(), srv.URL, cache)

	first, err := tm.AccessToken(context.Background(), testCredentials())
	require.NoError(t, err)
	second, err := tm.AccessToken(context.Background(), testCredentials())
	require.NoError(t, err)

	assert.Equal(t, first.Value, second.Value)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.InDelta(t, float64(59*time.Minute), float64(cache.ttls[CacheKey(testCredentials())]), float64(5*time.Second))
}

func TestTokenManager_ExpiredCachedTokenIsRenewed(t *testing.T) {
	var calls int32
	srv := tokenServer(t, &calls)
	defer srv.Close()

	cache := newMemoryTokenCache()
	cache.tokens[CacheKey(testCredentials())] = &domain.AccessToken{Value: "velho", ExpiresAt: time.Now().Add(30 * time.Second)}

	tm := NewTokenManager(resty.New(), srv.URL, cache)

	token, err := tm.AccessToken(context.Background(), testCredentials())
	require.NoError(t, err)
	assert.Equal(t, "Atza|abc", token.Value)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestTokenManager_WithoutCache(t *testing.T) {
	var calls int32
	srv := tokenServer(t, &calls)
	defer srv.Close()

	tm := NewTokenManager(resty.New(), srv.URL, nil)

	_, err := tm.AccessToken(context.Background(), testCredentials())
	require.NoError(t, err)
	_, err = tm.AccessToken(context.Background(), testCredentials())
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestExchangeRefreshToken_QualquerRespostaDeSucesso(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"access_token":"Atza|novo","expires_in":3600}`))
	}))
	defer srv.Close()

	token, err := ExchangeRefreshToken(context.Background(), resty.New(), srv.URL, testCredentials())
	require.NoError(t, err)
	assert.Equal(t, "Atza|novo", token.Value)
}

func TestTokenManager_ContasComOMesmoClientIDNaoCompartilhamToken(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		require.NoError(t, r.ParseForm())

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"token-de-` + r.PostForm.Get("refresh_token") + `","expires_in":3600}`))
	}))
	defer srv.Close()

	sellerA := &domain.AccountCredentials{AccountID: "loja-a", ClientID: "app", ClientSecret: "s", RefreshToken: "refresh-loja-a"}
	sellerB := &domain.AccountCredentials{AccountID: "loja-b", ClientID: "app", ClientSecret: "s", RefreshToken: "refresh-loja-b"}

	cache := newMemoryTokenCache()
	tm := NewTokenManager(resty.New(), srv.URL, cache)

	tokenA, err := tm.AccessToken(context.Background(), sellerA)
	require.NoError(t, err)
	tokenB, err := tm.AccessToken(context.Background(), sellerB)
	require.NoError(t, err)

	assert.Equal(t, "token-de-refresh-loja-a", tokenA.Value)
	assert.Equal(t, "token-de-refresh-loja-b", tokenB.Value)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Len(t, cache.tokens, 2)
	assert.NotEqual(t, CacheKey(sellerA), CacheKey(sellerB))
	assert.NotContains(t, CacheKey(sellerA), "refresh-loja-a")

	// a segunda chamada de cada vendedor vem do cache
	again, err := tm.AccessToken(context.Background(), sellerB)
	require.NoError(t, err)
	assert.Equal(t, "token-de-refresh-loja-b", again.Value)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
