package mpclient

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/vfg2006/marketplace-ingest-api/infrastructure/integrator/marketplace/mpdomain"
)

// MaxSkusPerInventoryRequest é o limite de sellerSkus aceito por chamada
const MaxSkusPerInventoryRequest = 50

// GetInventorySummaries consulta o estoque em lotes de até 50 SKUs.
// Um lote com falha devolve o que já foi coletado junto com o erro.
func (c *MarketplaceClient) GetInventorySummaries(ctx context.Context, s Session, skus []string) ([]mpdomain.InventorySummary, error) {
	summaries := make([]mpdomain.InventorySummary, 0, len(skus))

	for i, chunk := range ChunkStrings(skus, MaxSkusPerInventoryRequest) {
		if i > 0 {
			if err := Pace(ctx, c.Pacing.InventoryDelay); err != nil {
				return summaries, err
			}
		}

		result := Collect(ctx, nil, "", func(ctx context.Context, cursor string) (Page[mpdomain.InventorySummary], error) {
			query := url.Values{}
			query.Set("details", "true")
			query.Set("granularityType", "Marketplace")
			query.Set("granularityId", s.MarketplaceID)
			query.Set("marketplaceIds", s.MarketplaceID)
			query.Set("sellerSkus", strings.Join(chunk, ","))
			if cursor != "" {
				query.Set("nextToken", cursor)
			}

			var response mpdomain.InventorySummariesResponse
			err := c.Executor.DoJSON(ctx, Request{
				Method:      http.MethodGet,
				BaseURL:     s.BaseURL,
				Path:        "/fba/inventory/v1/summaries",
				Query:       query,
				AccessToken: s.AccessToken,
				BestEffort:  true,
				Endpoint:    "inventorySummaries",
			}, &response)
			if err != nil {
				return Page[mpdomain.InventorySummary]{}, err
			}

			page := Page[mpdomain.InventorySummary]{Items: response.Payload.InventorySummaries}
			if response.Pagination != nil {
				page.NextCursor = response.Pagination.NextToken
			}
			return page, nil
		})

		summaries = append(summaries, result.Items...)
		if result.Err != nil {
			return summaries, result.Err
		}
	}

	return summaries, nil
}

func ChunkStrings(values []string, size int) [][]string {
	if size <= 0 {
		size = len(values)
	}

	chunks := make([][]string, 0, (len(values)+size-1)/max(size, 1))
	for start := 0; start < len(values); start += size {
		end := min(start+size, len(values))
		chunks = append(chunks, values[start:end])
	}

	return chunks
}
