package ingesting

import "github.com/vfg2006/marketplace-ingest-api/internal/domain"

// MergeInventory prefere o detalhamento do inventário; sem ele, todo o total vira disponível
func MergeInventory(summary domain.InventorySummary) *domain.InventorySnapshot {
	if summary.Details != nil {
		snapshot := *summary.Details
		snapshot.Identifier = summary.Identifier
		return &snapshot
	}

	return &domain.InventorySnapshot{
		Identifier:  summary.Identifier,
		Fulfillable: summary.TotalQuantity,
	}
}
