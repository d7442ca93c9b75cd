package domain

import "time"

// AccountCredentials representa o conjunto de credenciais OAuth de uma conta do marketplace
type AccountCredentials struct {
	AccountID       string   `json:"account_id"`
	ClientID        string   `json:"client_id"`
	ClientSecret    string   `json:"client_secret"`
	RefreshToken    string   `json:"refresh_token"`
	APIBaseURL      string   `json:"api_base_url"`
	MarketplaceID   string   `json:"marketplace_id"`
	ReferralFeeRate *float64 `json:"referral_fee_rate,omitempty"`
}

// IsComplete verifica se todas as credenciais necessárias para a troca de token estão presentes
func (c *AccountCredentials) IsComplete() bool {
	if c == nil {
		return false
	}

	return c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != "" && c.APIBaseURL != ""
}

type AccessToken struct {
	Value      string    `json:"value"`
	ObtainedAt time.Time `json:"obtained_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Expired considera o token expirado um minuto antes da expiração real
func (t *AccessToken) Expired(now time.Time) bool {
	if t == nil || t.Value == "" {
		return true
	}

	if t.ExpiresAt.IsZero() {
		return false
	}

	return !now.Before(t.ExpiresAt.Add(-1 * time.Minute))
}
