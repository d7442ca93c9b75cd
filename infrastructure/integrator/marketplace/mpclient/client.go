package mpclient

import (
	"context"
	"time"

	"github.com/vfg2006/marketplace-ingest-api/infrastructure/integrator/marketplace/mpdomain"
	"github.com/vfg2006/marketplace-ingest-api/internal/config"
)

// Session carrega o que cada chamada precisa saber sobre a conta autenticada
type Session struct {
	BaseURL       string
	AccessToken   string
	MarketplaceID string
}

type OrdersParams struct {
	MarketplaceIDs    []string
	CreatedAfter      time.Time
	CreatedBefore     time.Time
	MaxResultsPerPage int
}

type SalesMetricsParams struct {
	MarketplaceIDs      []string
	Interval            string
	Granularity         string
	GranularityTimeZone string
	SKU                 string
}

type Client interface {
	GetOrders(ctx context.Context, s Session, params OrdersParams, nextToken string) (*mpdomain.OrdersPayload, error)
	GetOrderItems(ctx context.Context, s Session, orderID string) ([]mpdomain.OrderItem, error)
	GetSalesMetrics(ctx context.Context, s Session, params SalesMetricsParams) ([]mpdomain.OrderMetricsInterval, error)
	GetFeesEstimate(ctx context.Context, s Session, sku string, price float64, currency string) (*mpdomain.FeesEstimateResult, error)
	GetInventorySummaries(ctx context.Context, s Session, skus []string) ([]mpdomain.InventorySummary, error)
	GetFinancialEvents(ctx context.Context, s Session, postedAfter, postedBefore time.Time, nextToken string) (*mpdomain.FinancialEventsPayload, error)
}

type MarketplaceClient struct {
	Executor *Executor
	Pacing   config.Pacing
}

func NewClient(executor *Executor, pacing config.Pacing) Client {
	return &MarketplaceClient{
		Executor: executor,
		Pacing:   pacing,
	}
}
