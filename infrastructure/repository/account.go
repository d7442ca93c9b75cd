package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketplace-ingest-api/infrastructure/database/postgres"
	"github.com/vfg2006/marketplace-ingest-api/internal/domain"
)

//go:generate mockgen -source=account.go -destination=mocks/account_mock.go -package=mocks

const (
	accountsTable = "marketplace_accounts ma"
	catalogTable  = "catalog_items ci"

	accountColumns = "ma.id, ma.name, ma.status, ma.client_id, ma.client_secret, ma.refresh_token, ma.api_base_url, ma.marketplace_id, ma.referral_fee_rate, ma.created_at, ma.updated_at"
)

type AccountRepository interface {
	GetByName(ctx context.Context, name string) (*domain.MarketplaceAccount, error)
	GetAccountByIdentifier(ctx context.Context, identifier string) (*domain.MarketplaceAccount, error)
	ListAccounts(ctx context.Context, status []domain.AccountStatus) ([]*domain.MarketplaceAccount, error)
	ListIdentifiers(ctx context.Context, accountName string) ([]string, error)
	SaveOrUpdate(ctx context.Context, accounts []*domain.MarketplaceAccount) error
	SaveCatalogItems(ctx context.Context, items []*domain.CatalogItem) error
}

type accountRepository struct {
	conn postgres.Queryer
}

func NewAccountRepository(conn postgres.Queryer) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

func (a *accountRepository) GetByName(ctx context.Context, name string) (*domain.MarketplaceAccount, error) {
	return a.getAccount(ctx, squirrel.Select(accountColumns).
		From(accountsTable).
		Where(squirrel.Eq{"ma.name": name}))
}

func (a *accountRepository) GetAccountByIdentifier(ctx context.Context, identifier string) (*domain.MarketplaceAccount, error) {
	return a.getAccount(ctx, squirrel.Select(accountColumns).
		From(catalogTable).
		Join("marketplace_accounts ma ON ci.account_id = ma.id").
		Where(squirrel.Eq{"ci.identifier": identifier}))
}

func (a *accountRepository) getAccount(ctx context.Context, builder squirrel.SelectBuilder) (*domain.MarketplaceAccount, error) {
	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := a.conn.QueryRowContext(ctx, query, args...)

	acc, err := a.deserializeAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return acc, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (a *accountRepository) deserializeAccount(row rowScanner) (*domain.MarketplaceAccount, error) {
	acc := &domain.MarketplaceAccount{}
	var clientID, clientSecret, refreshToken, baseURL, marketplaceID sql.NullString
	var rate sql.NullFloat64

	if err := row.Scan(
		&acc.ID,
		&acc.Name,
		&acc.Status,
		&clientID,
		&clientSecret,
		&refreshToken,
		&baseURL,
		&marketplaceID,
		&rate,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	); err != nil {
		return nil, err
	}

	acc.Credentials = domain.AccountCredentials{
		AccountID:     acc.Name,
		ClientID:      clientID.String,
		ClientSecret:  clientSecret.String,
		RefreshToken:  refreshToken.String,
		APIBaseURL:    baseURL.String,
		MarketplaceID: marketplaceID.String,
	}
	if rate.Valid {
		acc.Credentials.ReferralFeeRate = &rate.Float64
	}

	return acc, nil
}

func (a *accountRepository) ListAccounts(ctx context.Context, status []domain.AccountStatus) ([]*domain.MarketplaceAccount, error) {
	queryBuilder := squirrel.
		Select(accountColumns).
		From(accountsTable).
		OrderBy("ma.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(status) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"ma.status": status})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := a.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	accounts := make([]*domain.MarketplaceAccount, 0)
	for rows.Next() {
		acc, err := a.deserializeAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return accounts, nil
}

// ListIdentifiers retorna os identificadores ativos do catálogo. Nome vazio lista todas as contas.
func (a *accountRepository) ListIdentifiers(ctx context.Context, accountName string) ([]string, error) {
	queryBuilder := squirrel.
		Select("ci.identifier").
		From(catalogTable).
		Where(squirrel.Eq{"ci.active": true}).
		OrderBy("ci.identifier ASC").
		PlaceholderFormat(squirrel.Dollar)

	if accountName != "" {
		queryBuilder = queryBuilder.
			Join("marketplace_accounts ma ON ci.account_id = ma.id").
			Where(squirrel.Eq{"ma.name": accountName})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := a.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	identifiers := make([]string, 0)
	for rows.Next() {
		var identifier string
		if err := rows.Scan(&identifier); err != nil {
			return nil, fmt.Errorf("erro ao escanear identificador: %w", err)
		}
		identifiers = append(identifiers, identifier)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return identifiers, nil
}

func (a *accountRepository) SaveOrUpdate(ctx context.Context, accounts []*domain.MarketplaceAccount) error {
	if len(accounts) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert("marketplace_accounts").
		Columns("id", "name", "status", "client_id", "client_secret", "refresh_token", "api_base_url", "marketplace_id", "referral_fee_rate")

	for _, acc := range accounts {
		status := acc.Status
		if status == "" {
			status = domain.AccountStatusActive
		}

		query = query.Values(
			acc.ID,
			acc.Name,
			status,
			nullString(acc.Credentials.ClientID),
			nullString(acc.Credentials.ClientSecret),
			nullString(acc.Credentials.RefreshToken),
			nullString(acc.Credentials.APIBaseURL),
			nullString(acc.Credentials.MarketplaceID),
			acc.Credentials.ReferralFeeRate,
		)
	}

	query = query.Suffix(`
		ON CONFLICT (name) DO UPDATE SET
			status = EXCLUDED.status,
			client_id = EXCLUDED.client_id,
			client_secret = EXCLUDED.client_secret,
			refresh_token = EXCLUDED.refresh_token,
			api_base_url = EXCLUDED.api_base_url,
			marketplace_id = EXCLUDED.marketplace_id,
			referral_fee_rate = EXCLUDED.referral_fee_rate,
			updated_at = NOW()
	`).PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := a.conn.ExecContext(ctx, sqlQuery, args...); err != nil {
		return wrapExecError(err)
	}

	logrus.WithField("accounts", len(accounts)).Debug("repository: contas salvas")

	return nil
}

func (a *accountRepository) SaveCatalogItems(ctx context.Context, items []*domain.CatalogItem) error {
	if len(items) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert("catalog_items").
		Columns("identifier", "account_id", "title", "active")

	for _, item := range items {
		query = query.Values(item.Identifier, item.AccountID, nullString(item.Title), item.Active)
	}

	query = query.Suffix(`
		ON CONFLICT (identifier) DO UPDATE SET
			account_id = EXCLUDED.account_id,
			title = EXCLUDED.title,
			active = EXCLUDED.active
	`).PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := a.conn.ExecContext(ctx, sqlQuery, args...); err != nil {
		return wrapExecError(err)
	}

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func wrapExecError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
	}
	return fmt.Errorf("erro ao executar a query: %w", err)
}
