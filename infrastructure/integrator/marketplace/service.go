package marketplace

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketplace-ingest-api/infrastructure/integrator/marketplace/mpclient"
	"github.com/vfg2006/marketplace-ingest-api/internal/config"
	"github.com/vfg2006/marketplace-ingest-api/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/integrator_mock.go -package=mocks

type Integrator interface {
	Authenticate(ctx context.Context, creds *domain.AccountCredentials) (mpclient.Session, error)
	ListOrders(ctx context.Context, s mpclient.Session, query OrderQuery) *OrderList
	ListOrderItems(ctx context.Context, s mpclient.Session, orderID string) ([]domain.LineItem, error)
	FetchSalesMetrics(ctx context.Context, s mpclient.Session, identifier string, interval domain.Interval, marketplaceIDs []string) (*domain.SalesMetric, error)
	EstimateFees(ctx context.Context, s mpclient.Session, identifier string, price float64, currency string) (*domain.FeeEstimate, error)
	FetchInventory(ctx context.Context, s mpclient.Session, identifiers []string) ([]domain.InventorySummary, error)
	ListRefunds(ctx context.Context, s mpclient.Session, interval domain.Interval, maxPages int) *RefundScan
}

type OrderQuery struct {
	MarketplaceIDs    []string
	Interval          domain.Interval
	MaxPages          int
	MaxOrders         int
	ContinuationToken string
}

type OrderList struct {
	Orders     []domain.OrderRecord
	NextToken  string
	Pages      int
	Incomplete bool
	Err        error
}

type RefundScan struct {
	Events     []domain.RefundEvent
	Pages      int
	Incomplete bool
	Exhausted  bool
	Err        error
}

type MarketplaceIntegrator struct {
	cfg          *config.Config
	Client       mpclient.Client
	TokenManager *mpclient.TokenManager
	Pacer        *mpclient.Pacer
}

func New(cfg *config.Config, client mpclient.Client, tokenManager *mpclient.TokenManager, pacer *mpclient.Pacer) *MarketplaceIntegrator {
	if pacer == nil {
		pacer = mpclient.NewPacer(nil)
	}

	return &MarketplaceIntegrator{
		cfg:          cfg,
		Client:       client,
		TokenManager: tokenManager,
		Pacer:        pacer,
	}
}

func (s *MarketplaceIntegrator) Authenticate(ctx context.Context, creds *domain.AccountCredentials) (mpclient.Session, error) {
	token, err := s.TokenManager.AccessToken(ctx, creds)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": creds.AccountID,
			"error":      err.Error(),
		}).Error("marketplace: falha ao obter access token")
		return mpclient.Session{}, err
	}

	marketplaceID := creds.MarketplaceID
	if marketplaceID == "" {
		marketplaceID = s.cfg.Marketplace.DefaultMarketplaceID
	}

	return mpclient.Session{
		BaseURL:       creds.APIBaseURL,
		AccessToken:   token.Value,
		MarketplaceID: marketplaceID,
	}, nil
}

// ListOrders busca as páginas de pedidos dentro do orçamento. Por padrão só a primeira página é lida;
// NextToken permite continuar em outra execução.
func (s *MarketplaceIntegrator) ListOrders(ctx context.Context, sess mpclient.Session, query OrderQuery) *OrderList {
	budget := domain.NewBudget(query.MaxPages, query.MaxOrders)
	params := mpclient.OrdersParams{
		MarketplaceIDs: query.MarketplaceIDs,
		CreatedAfter:   query.Interval.Start,
		CreatedBefore:  query.Interval.End,
	}

	result := mpclient.Collect(ctx, budget, query.ContinuationToken, func(ctx context.Context, cursor string) (mpclient.Page[domain.OrderRecord], error) {
		if err := s.Pacer.Wait(ctx, "orders", s.cfg.Pacing.OrdersDelay); err != nil {
			return mpclient.Page[domain.OrderRecord]{}, err
		}

		payload, err := s.Client.GetOrders(ctx, sess, params, cursor)
		if err != nil {
			return mpclient.Page[domain.OrderRecord]{}, err
		}

		orders := make([]domain.OrderRecord, 0, len(payload.Orders))
		for _, o := range payload.Orders {
			orders = append(orders, FactoryOrder(o))
		}

		return mpclient.Page[domain.OrderRecord]{Items: orders, NextCursor: payload.NextToken}, nil
	})

	if result.Err != nil {
		logrus.WithFields(logrus.Fields{
			"pages":  result.Pages,
			"orders": len(result.Items),
			"error":  result.Err.Error(),
		}).Warn("marketplace: listagem de pedidos interrompida")
	}

	return &OrderList{
		Orders:     result.Items,
		NextToken:  result.NextCursor,
		Pages:      result.Pages,
		Incomplete: result.Incomplete,
		Err:        result.Err,
	}
}

func (s *MarketplaceIntegrator) ListOrderItems(ctx context.Context, sess mpclient.Session, orderID string) ([]domain.LineItem, error) {
	if err := s.Pacer.Wait(ctx, "orderItems", s.cfg.Pacing.OrderItemsDelay); err != nil {
		return nil, err
	}

	items, err := s.Client.GetOrderItems(ctx, sess, orderID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"order_id": orderID,
			"error":    err.Error(),
		}).Warn("marketplace: falha ao buscar itens do pedido")
		return FactoryLineItems(items), err
	}

	return FactoryLineItems(items), nil
}

// FetchSalesMetrics retorna o total do intervalo para o identificador na granularidade mensal
func (s *MarketplaceIntegrator) FetchSalesMetrics(ctx context.Context, sess mpclient.Session, identifier string, interval domain.Interval, marketplaceIDs []string) (*domain.SalesMetric, error) {
	if err := s.Pacer.Wait(ctx, "orderMetrics", s.cfg.Pacing.MetricsDelay); err != nil {
		return nil, err
	}

	tz := ""
	if interval.TimeZone != nil {
		tz = interval.TimeZone.String()
	}

	payload, err := s.Client.GetSalesMetrics(ctx, sess, mpclient.SalesMetricsParams{
		MarketplaceIDs:      marketplaceIDs,
		Interval:            interval.ISO8601(),
		Granularity:         domain.GranularityMonth,
		GranularityTimeZone: tz,
		SKU:                 identifier,
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"identifier": identifier,
			"error":      err.Error(),
		}).Error("marketplace: falha ao buscar métricas de vendas")
		return nil, err
	}

	total := domain.SumSalesMetrics(FactorySalesMetrics(payload))
	if total.Currency == "" {
		total.Currency = s.cfg.Marketplace.Currency
	}

	return &total, nil
}

func (s *MarketplaceIntegrator) EstimateFees(ctx context.Context, sess mpclient.Session, identifier string, price float64, currency string) (*domain.FeeEstimate, error) {
	if err := s.Pacer.Wait(ctx, "feesEstimate", s.cfg.Pacing.FeesDelay); err != nil {
		return nil, err
	}

	result, err := s.Client.GetFeesEstimate(ctx, sess, identifier, price, currency)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"identifier": identifier,
			"error":      err.Error(),
		}).Warn("marketplace: falha ao estimar taxas")
		return nil, err
	}

	return FactoryFeeEstimate(identifier, price, currency, result), nil
}

func (s *MarketplaceIntegrator) FetchInventory(ctx context.Context, sess mpclient.Session, identifiers []string) ([]domain.InventorySummary, error) {
	if err := s.Pacer.Wait(ctx, "inventorySummaries", s.cfg.Pacing.InventoryDelay); err != nil {
		return nil, err
	}

	raw, err := s.Client.GetInventorySummaries(ctx, sess, identifiers)

	summaries := make([]domain.InventorySummary, 0, len(raw))
	for _, r := range raw {
		summaries = append(summaries, FactoryInventorySummary(r))
	}

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"identifiers": len(identifiers),
			"received":    len(summaries),
			"error":       err.Error(),
		}).Warn("marketplace: consulta de inventário incompleta")
		return summaries, err
	}

	return summaries, nil
}

// ListRefunds varre os eventos financeiros do intervalo uma única vez, limitado a maxPages
func (s *MarketplaceIntegrator) ListRefunds(ctx context.Context, sess mpclient.Session, interval domain.Interval, maxPages int) *RefundScan {
	budget := domain.NewBudget(maxPages, 0)
	startedAt := time.Now()

	result := mpclient.Collect(ctx, budget, "", func(ctx context.Context, cursor string) (mpclient.Page[domain.RefundEvent], error) {
		if err := s.Pacer.Wait(ctx, "financialEvents", s.cfg.Pacing.FinancialEventsDelay); err != nil {
			return mpclient.Page[domain.RefundEvent]{}, err
		}

		payload, err := s.Client.GetFinancialEvents(ctx, sess, interval.Start, interval.End, cursor)
		if err != nil {
			return mpclient.Page[domain.RefundEvent]{}, err
		}

		return mpclient.Page[domain.RefundEvent]{
			Items:      FactoryRefundEvents(payload.FinancialEvents.RefundEventList),
			NextCursor: payload.NextToken,
		}, nil
	})

	logrus.WithFields(logrus.Fields{
		"pages":      result.Pages,
		"events":     len(result.Items),
		"incomplete": result.Incomplete,
		"exhausted":  result.Exhausted,
		"elapsed":    time.Since(startedAt).String(),
	}).Debug("marketplace: varredura de reembolsos concluída")

	return &RefundScan{
		Events:     result.Items,
		Pages:      result.Pages,
		Incomplete: result.Incomplete,
		Exhausted:  result.Exhausted,
		Err:        result.Err,
	}
}
