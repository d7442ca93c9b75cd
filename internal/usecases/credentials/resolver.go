package credentials

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketplace-ingest-api/infrastructure/repository"
	"github.com/vfg2006/marketplace-ingest-api/internal/config"
	"github.com/vfg2006/marketplace-ingest-api/internal/domain"
)

type Resolver interface {
	Resolve(ctx context.Context, accountID string) (*domain.AccountCredentials, error)
	ForIdentifier(ctx context.Context, identifier string) (*domain.AccountCredentials, error)
}

// ChainResolver consulta, em ordem, o cadastro de contas, o MARKETPLACE_ACCOUNTS e as credenciais padrão.
// O primeiro conjunto completo vence.
type ChainResolver struct {
	accountRepository repository.AccountRepository
	cfg               *config.Config
}

func NewChainResolver(accountRepository repository.AccountRepository, cfg *config.Config) *ChainResolver {
	return &ChainResolver{
		accountRepository: accountRepository,
		cfg:               cfg,
	}
}

func (r *ChainResolver) Resolve(ctx context.Context, accountID string) (*domain.AccountCredentials, error) {
	logger := logrus.WithField("account_id", accountID)

	if accountID != "" {
		if creds := r.fromStore(ctx, accountID); creds.IsComplete() {
			logger.Debug("credentials: usando credenciais do cadastro de contas")
			return r.withDefaults(creds), nil
		}

		if creds := r.fromConfig(accountID); creds.IsComplete() {
			logger.Debug("credentials: usando credenciais de MARKETPLACE_ACCOUNTS")
			return r.withDefaults(creds), nil
		}
	}

	if creds := r.fromDefaults(accountID); creds.IsComplete() {
		logger.Debug("credentials: usando credenciais padrão")
		return r.withDefaults(creds), nil
	}

	logger.Error("credentials: nenhuma credencial completa encontrada")
	return nil, fmt.Errorf("%w: account %q", ErrNoCredentials, accountID)
}

// ForIdentifier resolve as credenciais da conta dona do identificador no catálogo
func (r *ChainResolver) ForIdentifier(ctx context.Context, identifier string) (*domain.AccountCredentials, error) {
	if r.accountRepository == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIdentifier, identifier)
	}

	acc, err := r.accountRepository.GetAccountByIdentifier(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar conta do identificador %s: %w", identifier, err)
	}
	if acc == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIdentifier, identifier)
	}

	return r.Resolve(ctx, acc.Name)
}

func (r *ChainResolver) fromStore(ctx context.Context, accountID string) *domain.AccountCredentials {
	if r.accountRepository == nil {
		return nil
	}

	acc, err := r.accountRepository.GetByName(ctx, accountID)
	if err != nil {
		// falha no cadastro não impede as demais fontes
		logrus.WithError(err).WithField("account_id", accountID).Warn("credentials: erro ao consultar cadastro de contas")
		return nil
	}
	if acc == nil {
		return nil
	}

	creds := acc.Credentials
	creds.AccountID = accountID
	return &creds
}

func (r *ChainResolver) fromConfig(accountID string) *domain.AccountCredentials {
	entry, ok := r.cfg.MarketplaceAccounts[accountID]
	if !ok {
		return nil
	}

	return &domain.AccountCredentials{
		AccountID:       accountID,
		ClientID:        entry.ClientID,
		ClientSecret:    entry.ClientSecret,
		RefreshToken:    entry.RefreshToken,
		APIBaseURL:      entry.APIBaseURL,
		MarketplaceID:   entry.MarketplaceID,
		ReferralFeeRate: entry.ReferralFeeRate,
	}
}

func (r *ChainResolver) fromDefaults(accountID string) *domain.AccountCredentials {
	m := r.cfg.Marketplace
	return &domain.AccountCredentials{
		AccountID:    accountID,
		ClientID:     m.ClientID,
		ClientSecret: m.ClientSecret,
		RefreshToken: m.RefreshToken,
		APIBaseURL:   m.BaseURL,
	}
}

// withDefaults completa campos opcionais. A taxa padrão só é usada quando o conjunto escolhido não tem uma.
func (r *ChainResolver) withDefaults(creds *domain.AccountCredentials) *domain.AccountCredentials {
	if creds.MarketplaceID == "" {
		creds.MarketplaceID = r.cfg.Marketplace.DefaultMarketplaceID
	}

	if creds.ReferralFeeRate == nil && r.cfg.Marketplace.ReferralFeeRate > 0 {
		rate := r.cfg.Marketplace.ReferralFeeRate
		creds.ReferralFeeRate = &rate
	}

	return creds
}
