package reporting

import (
	"context"
	"fmt"

	"github.com/vfg2006/marketplace-ingest-api/infrastructure/repository"
	"github.com/vfg2006/marketplace-ingest-api/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/reporter_mock.go -package=mocks

type Reporter interface {
	// ListMonthly retorna os agregados gravados para o período, opcionalmente filtrados pela conta
	ListMonthly(ctx context.Context, year, month int, accountID string) ([]*domain.MonthlyAggregateRecord, error)

	// AvailablePeriods retorna os períodos já presentes na tabela de agregados
	AvailablePeriods(ctx context.Context) (*domain.AvailablePeriods, error)

	// ExportMonthly gera a planilha XLSX dos agregados do período
	ExportMonthly(ctx context.Context, year, month int, accountID string) ([]byte, error)
}

type Service struct {
	aggregateRepository repository.MonthlyAggregateRepository
}

func NewService(aggregateRepository repository.MonthlyAggregateRepository) *Service {
	return &Service{
		aggregateRepository: aggregateRepository,
	}
}

func (s *Service) ListMonthly(ctx context.Context, year, month int, accountID string) ([]*domain.MonthlyAggregateRecord, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidPeriod
	}

	records, err := s.aggregateRepository.ListByPeriod(ctx, year, month, accountID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar agregados do período %s: %w", domain.PeriodKey(year, month), err)
	}

	return records, nil
}

func (s *Service) AvailablePeriods(ctx context.Context) (*domain.AvailablePeriods, error) {
	periods, err := s.aggregateRepository.GetAllPeriods(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar períodos disponíveis: %w", err)
	}

	return domain.NewAvailablePeriods(periods), nil
}
