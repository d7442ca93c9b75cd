package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMarketplaceAccounts(t *testing.T) {
	t.Run("Vazio retorna mapa vazio", func(t *testing.T) {
		accounts, err := ParseMarketplaceAccounts("")
		require.NoError(t, err)
		assert.Empty(t, accounts)
	})

	t.Run("Contas com e sem taxa própria", func(t *testing.T) {
		raw := `{
			"loja-a": {"client_id": "a", "client_secret": "sa", "refresh_token": "ra", "api_base_url": "https://na.example", "referral_fee_rate": 0.08},
			"loja-b": {"client_id": "b", "client_secret": "sb", "refresh_token": "rb", "api_base_url": "https://eu.example", "marketplace_id": "A1PA6795UKMFR9"}
		}`

		accounts, err := ParseMarketplaceAccounts(raw)
		require.NoError(t, err)
		require.Len(t, accounts, 2)

		require.NotNil(t, accounts["loja-a"].ReferralFeeRate)
		assert.Equal(t, 0.08, *accounts["loja-a"].ReferralFeeRate)
		assert.Nil(t, accounts["loja-b"].ReferralFeeRate)
		assert.Equal(t, "A1PA6795UKMFR9", accounts["loja-b"].MarketplaceID)
	})

	t.Run("JSON inválido", func(t *testing.T) {
		_, err := ParseMarketplaceAccounts(`{"loja-a":`)
		assert.ErrorContains(t, err, "MARKETPLACE_ACCOUNTS")
	})
}

func TestMarketplace_Location(t *testing.T) {
	loc := Marketplace{TimeZone: "America/Los_Angeles"}.Location()
	assert.Equal(t, "America/Los_Angeles", loc.String())

	assert.Equal(t, time.UTC, Marketplace{TimeZone: "Fuso/Inexistente"}.Location())
}
