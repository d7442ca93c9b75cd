package mpclient

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketplace-ingest-api/internal/domain"
)

// TokenCache guarda access tokens por conjunto de credenciais. Falhas do cache nunca impedem a troca do token.
type TokenCache interface {
	Get(ctx context.Context, key string) (*domain.AccessToken, bool, error)
	Set(ctx context.Context, key string, token *domain.AccessToken, ttl time.Duration) error
}

// TokenManager obtém access tokens, reaproveitando os que ainda estão válidos no cache
type TokenManager struct {
	http     *resty.Client
	tokenURL string
	cache    TokenCache
	now      func() time.Time

	TokenRefreshMutex sync.Mutex
}

func NewTokenManager(httpClient *resty.Client, tokenURL string, cache TokenCache) *TokenManager {
	if httpClient == nil {
		httpClient = resty.New()
	}

	return &TokenManager{
		http:     httpClient,
		tokenURL: tokenURL,
		cache:    cache,
		now:      time.Now,
	}
}

// CacheKey identifica o token de um vendedor. Várias contas compartilham o client id do aplicativo,
// então a chave inclui um hash do refresh token, que é o que de fato distingue o vendedor.
func CacheKey(creds *domain.AccountCredentials) string {
	sum := sha256.Sum256([]byte(creds.RefreshToken))
	return creds.ClientID + ":" + hex.EncodeToString(sum[:8])
}

func (tm *TokenManager) AccessToken(ctx context.Context, creds *domain.AccountCredentials) (*domain.AccessToken, error) {
	key := CacheKey(creds)

	if token, ok := tm.lookup(ctx, key); ok {
		return token, nil
	}

	tm.TokenRefreshMutex.Lock()
	defer tm.TokenRefreshMutex.Unlock()

	// outra goroutine pode ter renovado o token enquanto aguardávamos
	if token, ok := tm.lookup(ctx, key); ok {
		return token, nil
	}

	token, err := ExchangeRefreshToken(ctx, tm.http, tm.tokenURL, creds)
	if err != nil {
		return nil, err
	}

	if tm.cache != nil {
		if err := tm.cache.Set(ctx, key, token, CacheTTL(token, tm.now())); err != nil {
			logrus.WithError(err).WithField("client_id", creds.ClientID).Warn("mpclient: erro ao gravar token no cache")
		}
	}

	return token, nil
}

func (tm *TokenManager) lookup(ctx context.Context, key string) (*domain.AccessToken, bool) {
	if tm.cache == nil {
		return nil, false
	}

	token, ok, err := tm.cache.Get(ctx, key)
	if err != nil {
		logrus.WithError(err).WithField("cache_key", key).Warn("mpclient: erro ao consultar cache de tokens")
		return nil, false
	}

	if !ok || token.Expired(tm.now()) {
		return nil, false
	}

	return token, true
}
