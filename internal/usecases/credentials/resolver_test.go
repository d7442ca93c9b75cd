package credentials

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/marketplace-ingest-api/infrastructure/repository/mocks"
	"github.com/vfg2006/marketplace-ingest-api/internal/config"
	"github.com/vfg2006/marketplace-ingest-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func float64Ptr(v float64) *float64 {
	return &v
}

func baseConfig() *config.Config {
	return &config.Config{
		Marketplace: config.Marketplace{
			BaseURL:              "https://default.example.com",
			DefaultMarketplaceID: "ATVPDKIKX0DER",
			ClientID:             "default-client",
			ClientSecret:         "default-secret",
			RefreshToken:         "default-refresh",
			ReferralFeeRate:      0.15,
		},
		MarketplaceAccounts: map[string]config.MarketplaceAccount{},
	}
}

func TestChainResolver_Resolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccountRepo := mocks.NewMockAccountRepository(ctrl)
	ctx := context.Background()

	tests := []struct {
		name      string
		accountID string
		cfg       func() *config.Config
		setup     func()
		validate  func(t *testing.T, creds *domain.AccountCredentials, err error)
	}{
		{
			name:      "Cadastro com credenciais completas tem prioridade",
			accountID: "loja-a",
			cfg: func() *config.Config {
				cfg := baseConfig()
				cfg.MarketplaceAccounts["loja-a"] = config.MarketplaceAccount{ClientID: "cfg", ClientSecret: "cfg", RefreshToken: "cfg", APIBaseURL: "https://cfg"}
				return cfg
			},
			setup: func() {
				mockAccountRepo.EXPECT().GetByName(gomock.Any(), "loja-a").Return(&domain.MarketplaceAccount{
					Name: "loja-a",
					Credentials: domain.AccountCredentials{
						ClientID: "store", ClientSecret: "store", RefreshToken: "store", APIBaseURL: "https://store",
						ReferralFeeRate: float64Ptr(0.08),
					},
				}, nil)
			},
			validate: func(t *testing.T, creds *domain.AccountCredentials, err error) {
				require.NoError(t, err)
				assert.Equal(t, "store", creds.ClientID)
				assert.Equal(t, "loja-a", creds.AccountID)
				assert.Equal(t, "ATVPDKIKX0DER", creds.MarketplaceID)
				assert.Equal(t, 0.08, *creds.ReferralFeeRate)
			},
		},
		{
			name:      "Cadastro incompleto cai para MARKETPLACE_ACCOUNTS",
			accountID: "loja-b",
			cfg: func() *config.Config {
				cfg := baseConfig()
				cfg.MarketplaceAccounts["loja-b"] = config.MarketplaceAccount{ClientID: "cfg", ClientSecret: "cfg", RefreshToken: "cfg", APIBaseURL: "https://cfg", MarketplaceID: "A2EUQ1WTGCTBG2"}
				return cfg
			},
			setup: func() {
				mockAccountRepo.EXPECT().GetByName(gomock.Any(), "loja-b").Return(&domain.MarketplaceAccount{
					Name:        "loja-b",
					Credentials: domain.AccountCredentials{ClientID: "store"},
				}, nil)
			},
			validate: func(t *testing.T, creds *domain.AccountCredentials, err error) {
				require.NoError(t, err)
				assert.Equal(t, "cfg", creds.ClientID)
				assert.Equal(t, "A2EUQ1WTGCTBG2", creds.MarketplaceID)
				// sem taxa própria usa a padrão
				assert.Equal(t, 0.15, *creds.ReferralFeeRate)
			},
		},
		{
			name:      "Erro no cadastro não impede as credenciais padrão",
			accountID: "loja-c",
			cfg:       baseConfig,
			setup: func() {
				mockAccountRepo.EXPECT().GetByName(gomock.Any(), "loja-c").Return(nil, errors.New("conexão recusada"))
			},
			validate: func(t *testing.T, creds *domain.AccountCredentials, err error) {
				require.NoError(t, err)
				assert.Equal(t, "default-client", creds.ClientID)
				assert.Equal(t, "https://default.example.com", creds.APIBaseURL)
			},
		},
		{
			name:      "Conta vazia usa direto as credenciais padrão",
			accountID: "",
			cfg:       baseConfig,
			setup:     func() {},
			validate: func(t *testing.T, creds *domain.AccountCredentials, err error) {
				require.NoError(t, err)
				assert.Equal(t, "default-client", creds.ClientID)
			},
		},
		{
			name:      "Nenhuma fonte completa retorna ErrNoCredentials",
			accountID: "loja-d",
			cfg: func() *config.Config {
				cfg := baseConfig()
				cfg.Marketplace.RefreshToken = ""
				return cfg
			},
			setup: func() {
				mockAccountRepo.EXPECT().GetByName(gomock.Any(), "loja-d").Return(nil, nil)
			},
			validate: func(t *testing.T, creds *domain.AccountCredentials, err error) {
				assert.Nil(t, creds)
				assert.True(t, errors.Is(err, ErrNoCredentials))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			resolver := NewChainResolver(mockAccountRepo, tt.cfg())

			creds, err := resolver.Resolve(ctx, tt.accountID)
			tt.validate(t, creds, err)
		})
	}
}

func TestChainResolver_ForIdentifier(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccountRepo := mocks.NewMockAccountRepository(ctrl)
	resolver := NewChainResolver(mockAccountRepo, baseConfig())
	ctx := context.Background()

	mockAccountRepo.EXPECT().GetAccountByIdentifier(gomock.Any(), "SKU-1").Return(&domain.MarketplaceAccount{Name: "loja-a"}, nil)
	mockAccountRepo.EXPECT().GetByName(gomock.Any(), "loja-a").Return(&domain.MarketplaceAccount{
		Name:        "loja-a",
		Credentials: domain.AccountCredentials{ClientID: "a", ClientSecret: "a", RefreshToken: "a", APIBaseURL: "https://a"},
	}, nil)

	creds, err := resolver.ForIdentifier(ctx, "SKU-1")
	require.NoError(t, err)
	assert.Equal(t, "a", creds.ClientID)

	mockAccountRepo.EXPECT().GetAccountByIdentifier(gomock.Any(), "SKU-X").Return(nil, nil)

	_, err = resolver.ForIdentifier(ctx, "SKU-X")
	assert.ErrorIs(t, err, ErrUnknownIdentifier)
}
