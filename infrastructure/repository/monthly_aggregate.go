package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/marketplace-ingest-api/infrastructure/database/postgres"
	"github.com/vfg2006/marketplace-ingest-api/internal/domain"
)

//go:generate mockgen -source=monthly_aggregate.go -destination=mocks/monthly_aggregate_mock.go -package=mocks

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	monthlyAggregatesTable = "monthly_aggregates mag"

	monthlyAggregateColumns = `mag.id, mag.identifier, mag.account_id, mag.year, mag.month,
		mag.total_sales, mag.unit_count, mag.order_count, mag.order_item_count, mag.average_price, mag.currency,
		mag.referral_fee_rate, mag.referral_fee_per_unit, mag.total_referral_fee, mag.fba_fee_per_unit, mag.total_fba_fee,
		mag.refund_amount, mag.refund_units, mag.inventory, mag.inventory_captured_at, mag.created_at, mag.updated_at`
)

type MonthlyAggregateRepository interface {
	UpsertSales(ctx context.Context, record *domain.MonthlyAggregateRecord) error
	UpsertInventory(ctx context.Context, key domain.AggregateKey, snapshot *domain.InventorySnapshot, capturedAt time.Time) error
	GetByKey(ctx context.Context, key domain.AggregateKey) (*domain.MonthlyAggregateRecord, error)
	ListByPeriod(ctx context.Context, year, month int, accountID string) ([]*domain.MonthlyAggregateRecord, error)
	GetAllPeriods(ctx context.Context) ([]string, error)
}

type monthlyAggregateRepository struct {
	conn postgres.Queryer
}

func NewMonthlyAggregateRepository(conn postgres.Queryer) MonthlyAggregateRepository {
	return &monthlyAggregateRepository{
		conn: conn,
	}
}

// UpsertSales grava as colunas de vendas, taxas e reembolsos. O inventário da linha não é tocado.
func (r *monthlyAggregateRepository) UpsertSales(ctx context.Context, record *domain.MonthlyAggregateRecord) error {
	query := squirrel.StatementBuilder.
		Insert("monthly_aggregates").
		Columns(
			"identifier", "account_id", "year", "month", "period",
			"total_sales", "unit_count", "order_count", "order_item_count", "average_price", "currency",
			"referral_fee_rate", "referral_fee_per_unit", "total_referral_fee", "fba_fee_per_unit", "total_fba_fee",
			"refund_amount", "refund_units",
		).
		Values(
			record.Identifier, record.AccountID, record.Year, record.Month, record.Period(),
			record.TotalSales, record.UnitCount, record.OrderCount, record.OrderItemCount, record.AveragePrice, record.Currency,
			record.ReferralFeeRate, record.ReferralFeePerUnit, record.TotalReferralFee, record.FBAFeePerUnit, record.TotalFBAFee,
			record.RefundAmount, record.RefundUnits,
		).
		Suffix(`
			ON CONFLICT (identifier, year, month) DO UPDATE SET
				account_id = EXCLUDED.account_id,
				period = EXCLUDED.period,
				total_sales = EXCLUDED.total_sales,
				unit_count = EXCLUDED.unit_count,
				order_count = EXCLUDED.order_count,
				order_item_count = EXCLUDED.order_item_count,
				average_price = EXCLUDED.average_price,
				currency = EXCLUDED.currency,
				referral_fee_rate = EXCLUDED.referral_fee_rate,
				referral_fee_per_unit = EXCLUDED.referral_fee_per_unit,
				total_referral_fee = EXCLUDED.total_referral_fee,
				fba_fee_per_unit = EXCLUDED.fba_fee_per_unit,
				total_fba_fee = EXCLUDED.total_fba_fee,
				refund_amount = EXCLUDED.refund_amount,
				refund_units = EXCLUDED.refund_units,
				updated_at = NOW()
			RETURNING id, created_at, updated_at
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRowContext(ctx, sqlQuery, args...).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return wrapExecError(err)
	}

	return nil
}

// UpsertInventory cria a linha com vendas zeradas quando ela ainda não existe; caso contrário atualiza só o inventário.
// inventory_captured_at só avança quando o snapshot muda.
func (r *monthlyAggregateRepository) UpsertInventory(ctx context.Context, key domain.AggregateKey, snapshot *domain.InventorySnapshot, capturedAt time.Time) error {
	if snapshot == nil {
		return nil
	}

	inventoryJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("erro ao serializar inventário para JSON: %w", err)
	}

	query := squirrel.StatementBuilder.
		Insert("monthly_aggregates").
		Columns("identifier", "account_id", "year", "month", "period", "inventory", "inventory_captured_at").
		Values(key.Identifier, key.AccountID, key.Year, key.Month, domain.PeriodKey(key.Year, key.Month), string(inventoryJSON), capturedAt).
		Suffix(`
			ON CONFLICT (identifier, year, month) DO UPDATE SET
				inventory = EXCLUDED.inventory,
				inventory_captured_at = CASE
					WHEN monthly_aggregates.inventory IS DISTINCT FROM EXCLUDED.inventory THEN EXCLUDED.inventory_captured_at
					ELSE monthly_aggregates.inventory_captured_at
				END,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, sqlQuery, args...); err != nil {
		return wrapExecError(err)
	}

	return nil
}

func (r *monthlyAggregateRepository) GetByKey(ctx context.Context, key domain.AggregateKey) (*domain.MonthlyAggregateRecord, error) {
	query, args, err := squirrel.
		Select(monthlyAggregateColumns).
		From(monthlyAggregatesTable).
		Where(squirrel.Eq{"mag.identifier": key.Identifier, "mag.year": key.Year, "mag.month": key.Month}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	record, err := r.scanRecord(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear agregado mensal: %w", err)
	}

	return record, nil
}

func (r *monthlyAggregateRepository) ListByPeriod(ctx context.Context, year, month int, accountID string) ([]*domain.MonthlyAggregateRecord, error) {
	builder := squirrel.
		Select(monthlyAggregateColumns).
		From(monthlyAggregatesTable).
		Where(squirrel.Eq{"mag.year": year, "mag.month": month}).
		OrderBy("mag.identifier ASC").
		PlaceholderFormat(squirrel.Dollar)

	if accountID != "" {
		builder = builder.Where(squirrel.Eq{"mag.account_id": accountID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.MonthlyAggregateRecord, 0)
	for rows.Next() {
		record, err := r.scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear agregados mensais: %w", err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

// GetAllPeriods retorna todos os períodos disponíveis no formato mm-yyyy, do mais antigo ao mais recente
func (r *monthlyAggregateRepository) GetAllPeriods(ctx context.Context) ([]string, error) {
	query, args, err := squirrel.
		Select("year, month").
		From("monthly_aggregates").
		GroupBy("year", "month").
		OrderBy("year ASC", "month ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	periods := make([]string, 0)
	for rows.Next() {
		var year, month int
		if err := rows.Scan(&year, &month); err != nil {
			return nil, fmt.Errorf("erro ao escanear período: %w", err)
		}
		periods = append(periods, domain.PeriodKey(year, month))
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return periods, nil
}

func (r *monthlyAggregateRepository) scanRecord(row rowScanner) (*domain.MonthlyAggregateRecord, error) {
	record := &domain.MonthlyAggregateRecord{}
	var inventoryJSON []byte
	var capturedAt sql.NullTime

	err := row.Scan(
		&record.ID,
		&record.Identifier,
		&record.AccountID,
		&record.Year,
		&record.Month,
		&record.TotalSales,
		&record.UnitCount,
		&record.OrderCount,
		&record.OrderItemCount,
		&record.AveragePrice,
		&record.Currency,
		&record.ReferralFeeRate,
		&record.ReferralFeePerUnit,
		&record.TotalReferralFee,
		&record.FBAFeePerUnit,
		&record.TotalFBAFee,
		&record.RefundAmount,
		&record.RefundUnits,
		&inventoryJSON,
		&capturedAt,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if inventoryJSON != nil {
		snapshot := &domain.InventorySnapshot{}
		if err := json.Unmarshal(inventoryJSON, snapshot); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de inventory: %w", err)
		}
		record.Inventory = snapshot
	}

	if capturedAt.Valid {
		record.InventoryCapturedAt = &capturedAt.Time
	}

	return record, nil
}
