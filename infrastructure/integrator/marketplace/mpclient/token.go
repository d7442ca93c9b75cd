package mpclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketplace-ingest-api/internal/domain"
)

// TokenResponse representa a resposta do servidor OAuth ao trocar o refresh token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ExchangeRefreshToken troca o refresh token por um access token de curta duração
func ExchangeRefreshToken(ctx context.Context, httpClient *resty.Client, tokenURL string, creds *domain.AccountCredentials) (*domain.AccessToken, error) {
	if creds == nil || creds.RefreshToken == "" {
		return nil, fmt.Errorf("%w: refresh token não pode ser vazio", ErrAuthentication)
	}

	resp, err := httpClient.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetFormData(map[string]string{
			"grant_type":    "refresh_token",
			"refresh_token": creds.RefreshToken,
			"client_id":     creds.ClientID,
			"client_secret": creds.ClientSecret,
		}).
		Post(tokenURL)
	if err != nil {
		return nil, fmt.Errorf("%w: erro ao chamar o servidor de tokens: %v", ErrAuthentication, err)
	}

	if !resp.IsSuccess() {
		logrus.WithFields(logrus.Fields{
			"status":    resp.StatusCode(),
			"client_id": creds.ClientID,
		}).Error("mpclient: falha na troca do refresh token")
		return nil, fmt.Errorf("%w: status %d, resposta: %s", ErrAuthentication, resp.StatusCode(), resp.Body())
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(resp.Body(), &tokenResp); err != nil {
		return nil, fmt.Errorf("%w: erro ao decodificar resposta: %v", ErrAuthentication, err)
	}

	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("%w: token retornado pelo servidor é vazio", ErrAuthentication)
	}

	now := time.Now()
	token := &domain.AccessToken{
		Value:      tokenResp.AccessToken,
		ObtainedAt: now,
		ExpiresAt:  now.Add(time.Duration(tokenResp.ExpiresIn) * time.Second),
	}

	logrus.WithField("expires_at", token.ExpiresAt.Format(time.RFC3339)).Debug("mpclient: access token obtido")

	return token, nil
}

// CacheTTL desconta um minuto de margem da validade informada pelo servidor
func CacheTTL(token *domain.AccessToken, now time.Time) time.Duration {
	ttl := token.ExpiresAt.Sub(now) - time.Minute
	if ttl < 0 {
		return 0
	}
	return ttl
}
