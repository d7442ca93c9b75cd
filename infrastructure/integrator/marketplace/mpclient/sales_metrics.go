package mpclient

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/vfg2006/marketplace-ingest-api/infrastructure/integrator/marketplace/mpdomain"
)

func (c *MarketplaceClient) GetSalesMetrics(ctx context.Context, s Session, params SalesMetricsParams) ([]mpdomain.OrderMetricsInterval, error) {
	query := url.Values{}
	query.Set("marketplaceIds", strings.Join(marketplaceIDs(s, params.MarketplaceIDs), ","))
	query.Set("interval", params.Interval)
	query.Set("granularity", params.Granularity)
	if params.GranularityTimeZone != "" {
		query.Set("granularityTimeZone", params.GranularityTimeZone)
	}
	if params.SKU != "" {
		query.Set("sku", params.SKU)
	}

	var response mpdomain.OrderMetricsResponse
	err := c.Executor.DoJSON(ctx, Request{
		Method:      http.MethodGet,
		BaseURL:     s.BaseURL,
		Path:        "/sales/v1/orderMetrics",
		Query:       query,
		AccessToken: s.AccessToken,
		Endpoint:    "orderMetrics",
	}, &response)
	if err != nil {
		return nil, err
	}

	return response.Payload, nil
}
