package ingesting

import (
	"fmt"
	"time"

	"github.com/vfg2006/marketplace-ingest-api/internal/domain"
)

// BuildInterval resolve o intervalo da execução: (year, month) no fuso regional,
// createdAfter/createdBefore explícitos ou o mês corrente.
func BuildInterval(req *domain.IngestRequest, loc *time.Location, now time.Time) (domain.Interval, error) {
	if loc == nil {
		loc = time.UTC
	}

	switch {
	case req.Year != nil || req.Month != nil:
		if req.Year == nil || req.Month == nil {
			return domain.Interval{}, fmt.Errorf("%w: year e month devem ser informados juntos", ErrInvalidInterval)
		}
		if *req.Month < 1 || *req.Month > 12 {
			return domain.Interval{}, fmt.Errorf("%w: mês %d fora do intervalo 1-12", ErrInvalidInterval, *req.Month)
		}

		interval := domain.MonthInterval(*req.Year, time.Month(*req.Month), loc, now)
		if err := interval.Validate(now); err != nil {
			return domain.Interval{}, fmt.Errorf("%w: %w", ErrInvalidInterval, err)
		}
		return interval, nil

	case req.CreatedAfter != nil:
		limit := now.Add(-domain.MinIntervalLag)
		end := limit
		if req.CreatedBefore != nil && req.CreatedBefore.Before(limit) {
			end = *req.CreatedBefore
		}

		interval := domain.Interval{Start: req.CreatedAfter.In(loc), End: end.In(loc), TimeZone: loc}
		if err := interval.Validate(now); err != nil {
			return domain.Interval{}, fmt.Errorf("%w: %w", ErrInvalidInterval, err)
		}
		// cada linha do ledger é de um único mês; intervalos maiores devem ser pedidos mês a mês
		if !interval.WithinOneMonth() {
			return domain.Interval{}, fmt.Errorf("%w: %w", ErrInvalidInterval, domain.ErrIntervalSpansMonths)
		}
		return interval, nil

	case req.CreatedBefore != nil:
		return domain.Interval{}, fmt.Errorf("%w: createdBefore exige createdAfter", ErrInvalidInterval)
	}

	// nos primeiros minutos do mês o mês corrente ainda não tem intervalo válido; usa o anterior
	local := now.Add(-domain.MinIntervalLag).In(loc)
	interval := domain.MonthInterval(local.Year(), local.Month(), loc, now)
	if err := interval.Validate(now); err != nil {
		return domain.Interval{}, fmt.Errorf("%w: %w", ErrInvalidInterval, err)
	}
	return interval, nil
}

// PeriodOf retorna o ano e o mês do início do intervalo no fuso do próprio intervalo
func PeriodOf(interval domain.Interval) (int, int) {
	loc := interval.TimeZone
	if loc == nil {
		loc = time.UTC
	}
	start := interval.Start.In(loc)
	return start.Year(), int(start.Month())
}
