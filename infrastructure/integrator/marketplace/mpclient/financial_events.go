package mpclient

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/vfg2006/marketplace-ingest-api/infrastructure/integrator/marketplace/mpdomain"
)

const financialEventsPerPage = "100"

func (c *MarketplaceClient) GetFinancialEvents(ctx context.Context, s Session, postedAfter, postedBefore time.Time, nextToken string) (*mpdomain.FinancialEventsPayload, error) {
	query := url.Values{}
	if nextToken != "" {
		query.Set("NextToken", nextToken)
	} else {
		query.Set("PostedAfter", postedAfter.UTC().Format(time.RFC3339))
		if !postedBefore.IsZero() {
			query.Set("PostedBefore", postedBefore.UTC().Format(time.RFC3339))
		}
		query.Set("MaxResultsPerPage", financialEventsPerPage)
	}

	var response mpdomain.FinancialEventsResponse
	err := c.Executor.DoJSON(ctx, Request{
		Method:      http.MethodGet,
		BaseURL:     s.BaseURL,
		Path:        "/finances/v0/financialEvents",
		Query:       query,
		AccessToken: s.AccessToken,
		Endpoint:    "financialEvents",
	}, &response)
	if err != nil {
		return nil, err
	}

	return &response.Payload, nil
}
