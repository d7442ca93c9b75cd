package ingesting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/marketplace-ingest-api/internal/domain"
)

func intPtr(v int) *int {
	return &v
}

func TestBuildInterval(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	t.Run("Mês fechado respeita o horário de verão", func(t *testing.T) {
		interval, err := BuildInterval(&domain.IngestRequest{Year: intPtr(2024), Month: intPtr(3)}, loc, now)
		require.NoError(t, err)

		assert.Equal(t, "2024-03-01T00:00:00-08:00", interval.Start.Format(time.RFC3339))
		assert.Equal(t, "2024-04-01T00:00:00-07:00", interval.End.Format(time.RFC3339))
	})

	t.Run("Mês corrente tem o fim limitado a dois minutos atrás", func(t *testing.T) {
		interval, err := BuildInterval(&domain.IngestRequest{Year: intPtr(2024), Month: intPtr(6)}, loc, now)
		require.NoError(t, err)

		assert.True(t, interval.End.Equal(now.Add(-2*time.Minute)))
		assert.NoError(t, interval.Validate(now))
	})

	t.Run("Sem período usa o mês corrente", func(t *testing.T) {
		interval, err := BuildInterval(&domain.IngestRequest{}, loc, now)
		require.NoError(t, err)

		year, month := PeriodOf(interval)
		assert.Equal(t, 2024, year)
		assert.Equal(t, 6, month)
	})

	t.Run("createdBefore no futuro é limitado", func(t *testing.T) {
		after := now.Add(-48 * time.Hour)
		before := now.Add(time.Hour)

		interval, err := BuildInterval(&domain.IngestRequest{CreatedAfter: &after, CreatedBefore: &before}, loc, now)
		require.NoError(t, err)

		assert.True(t, interval.End.Equal(now.Add(-2*time.Minute)))
		assert.True(t, interval.Start.Equal(after))
	})

	t.Run("Primeiros minutos do mês usam o mês anterior", func(t *testing.T) {
		turn := time.Date(2024, time.July, 1, 7, 1, 0, 0, time.UTC) // 00:01 em Los Angeles

		interval, err := BuildInterval(&domain.IngestRequest{}, loc, turn)
		require.NoError(t, err)

		year, month := PeriodOf(interval)
		assert.Equal(t, 2024, year)
		assert.Equal(t, 6, month)
		assert.True(t, interval.End.Equal(turn.Add(-2*time.Minute)))
	})

	t.Run("Intervalo explícito até a virada do mês cabe em um mês", func(t *testing.T) {
		after := time.Date(2024, time.May, 1, 0, 0, 0, 0, loc)
		before := time.Date(2024, time.June, 1, 0, 0, 0, 0, loc)

		interval, err := BuildInterval(&domain.IngestRequest{CreatedAfter: &after, CreatedBefore: &before}, loc, now)
		require.NoError(t, err)

		year, month := PeriodOf(interval)
		assert.Equal(t, 5, month)
		assert.Equal(t, 2024, year)
	})

	t.Run("Intervalo explícito de vários meses é recusado", func(t *testing.T) {
		after := time.Date(2024, time.January, 1, 0, 0, 0, 0, loc)
		before := time.Date(2024, time.March, 31, 0, 0, 0, 0, loc)

		_, err := BuildInterval(&domain.IngestRequest{CreatedAfter: &after, CreatedBefore: &before}, loc, now)
		assert.ErrorIs(t, err, ErrInvalidInterval)
		assert.ErrorIs(t, err, domain.ErrIntervalSpansMonths)
	})

	errorCases := []struct {
		name string
		req  *domain.IngestRequest
	}{
		{name: "Mês futuro", req: &domain.IngestRequest{Year: intPtr(2024), Month: intPtr(8)}},
		{name: "Mês inválido", req: &domain.IngestRequest{Year: intPtr(2024), Month: intPtr(13)}},
		{name: "Ano sem mês", req: &domain.IngestRequest{Year: intPtr(2024)}},
		{name: "createdBefore sem createdAfter", req: func() *domain.IngestRequest {
			before := now.Add(-time.Hour)
			return &domain.IngestRequest{CreatedBefore: &before}
		}()},
		{name: "Início depois do fim", req: func() *domain.IngestRequest {
			after := now.Add(-time.Hour)
			before := now.Add(-2 * time.Hour)
			return &domain.IngestRequest{CreatedAfter: &after, CreatedBefore: &before}
		}()},
	}

	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildInterval(tt.req, loc, now)
			assert.ErrorIs(t, err, ErrInvalidInterval)
		})
	}
}
