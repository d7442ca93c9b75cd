package ingesting

import (
	"math"

	"github.com/vfg2006/marketplace-ingest-api/infrastructure/integrator/marketplace/mpdomain"
	"github.com/vfg2006/marketplace-ingest-api/internal/domain"
)

type RefundTotal struct {
	Amount float64
	Units  int
}

// SumRefunds soma o valor absoluto das cobranças Principal reembolsadas do identificador.
// Frete, impostos e demais componentes ficam de fora.
func SumRefunds(events []domain.RefundEvent, identifier string) RefundTotal {
	total := RefundTotal{}
	for _, e := range events {
		if e.SKU != identifier || e.ChargeType != mpdomain.ChargeTypePrincipal {
			continue
		}
		total.Amount += math.Abs(e.ChargeAmount)
		total.Units += e.Quantity
	}
	return total
}
