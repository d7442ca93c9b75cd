package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/marketplace-ingest-api/infrastructure/repository/mocks"
	"github.com/vfg2006/marketplace-ingest-api/internal/domain"
	ingestmocks "github.com/vfg2006/marketplace-ingest-api/internal/usecases/ingesting/mocks"
	"go.uber.org/mock/gomock"
)

func newTestSyncService(t *testing.T, lookBack, maxRounds int) (*IngestSyncService, *mocks.MockAccountRepository, *ingestmocks.MockIngestService) {
	ctrl := gomock.NewController(t)

	mockAccountRepo := mocks.NewMockAccountRepository(ctrl)
	mockIngest := ingestmocks.NewMockIngestService(ctrl)

	service := &IngestSyncService{
		config: IngestSyncConfig{
			CronSchedule:  "0 4 * * *",
			MonthLookBack: lookBack,
			MaxRounds:     maxRounds,
		},
		location:      time.UTC,
		accountRepo:   mockAccountRepo,
		ingestService: mockIngest,
		now:           func() time.Time { return time.Date(2024, 1, 16, 4, 0, 0, 0, time.UTC) },
		ctx:           context.Background(),
	}

	return service, mockAccountRepo, mockIngest
}

func TestIngestSyncService_periods(t *testing.T) {
	service, _, _ := newTestSyncService(t, 2, 1)

	periods := service.periods()

	assert.Equal(t, []period{
		{year: 2023, month: 11},
		{year: 2023, month: 12},
		{year: 2024, month: 1},
	}, periods)
}

func TestIngestSyncService_periodsNaViradaDoMes(t *testing.T) {
	service, _, _ := newTestSyncService(t, 1, 1)
	service.now = func() time.Time { return time.Date(2024, 2, 1, 0, 1, 0, 0, time.UTC) }

	assert.Equal(t, []period{
		{year: 2023, month: 12},
		{year: 2024, month: 1},
	}, service.periods())
}

func TestIngestSyncService_syncAll(t *testing.T) {
	ctx := context.Background()

	t.Run("Reinvoca com o offset até não haver mais dados", func(t *testing.T) {
		service, mockAccountRepo, mockIngest := newTestSyncService(t, 0, 5)

		mockAccountRepo.EXPECT().
			ListAccounts(gomock.Any(), []domain.AccountStatus{domain.AccountStatusActive}).
			Return([]*domain.MarketplaceAccount{{Name: "loja-a"}, {Name: "loja-b"}}, nil)

		offsets := make(map[string][]int)
		mockIngest.EXPECT().Ingest(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req *domain.IngestRequest) (*domain.IngestResponse, error) {
				assert.Equal(t, 2024, *req.Year)
				assert.Equal(t, 1, *req.Month)
				offsets[req.AccountID] = append(offsets[req.AccountID], req.IdentifierOffset)

				if req.AccountID == "loja-a" && req.IdentifierOffset < 100 {
					return &domain.IngestResponse{
						Success:              true,
						SavedRecordsCount:    50,
						MoreDataAvailable:    true,
						NextIdentifierOffset: req.IdentifierOffset + 50,
					}, nil
				}
				return &domain.IngestResponse{Success: true, SavedRecordsCount: 10}, nil
			}).Times(4)

		summary := service.syncAll(ctx)
		require.NotNil(t, summary)

		assert.Equal(t, []int{0, 50, 100}, offsets["loja-a"])
		assert.Equal(t, []int{0}, offsets["loja-b"])
		assert.Equal(t, 4, summary.Rounds)
		assert.Equal(t, 120, summary.Saved)
		assert.Zero(t, summary.Truncated)
		assert.Equal(t, []string{"01-2024"}, summary.Periods)
		assert.False(t, service.GetStatus()["sync_running"].(bool))
	})

	t.Run("Para no limite de rodadas", func(t *testing.T) {
		service, mockAccountRepo, mockIngest := newTestSyncService(t, 0, 3)

		mockAccountRepo.EXPECT().ListAccounts(gomock.Any(), gomock.Any()).
			Return([]*domain.MarketplaceAccount{{Name: "loja-a"}}, nil)
		mockIngest.EXPECT().Ingest(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req *domain.IngestRequest) (*domain.IngestResponse, error) {
				return &domain.IngestResponse{MoreDataAvailable: true, NextIdentifierOffset: req.IdentifierOffset + 10}, nil
			}).Times(3)

		summary := service.syncAll(ctx)

		assert.Equal(t, 3, summary.Rounds)
		assert.Equal(t, 1, summary.Truncated)
	})

	t.Run("Sem contas cadastradas usa a conta padrão", func(t *testing.T) {
		service, mockAccountRepo, mockIngest := newTestSyncService(t, 1, 1)

		mockAccountRepo.EXPECT().ListAccounts(gomock.Any(), gomock.Any()).Return(nil, nil)
		mockIngest.EXPECT().Ingest(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req *domain.IngestRequest) (*domain.IngestResponse, error) {
				assert.Empty(t, req.AccountID)
				return &domain.IngestResponse{}, nil
			}).Times(2)

		summary := service.syncAll(ctx)

		assert.Equal(t, []string{"12-2023", "01-2024"}, summary.Periods)
	})

	t.Run("Erro na ingestão segue para a próxima conta", func(t *testing.T) {
		service, mockAccountRepo, mockIngest := newTestSyncService(t, 0, 3)

		mockAccountRepo.EXPECT().ListAccounts(gomock.Any(), gomock.Any()).
			Return([]*domain.MarketplaceAccount{{Name: "loja-a"}, {Name: "loja-b"}}, nil)
		mockIngest.EXPECT().Ingest(gomock.Any(), gomock.Any()).Return(nil, errors.New("credenciais ausentes"))
		mockIngest.EXPECT().Ingest(gomock.Any(), gomock.Any()).Return(&domain.IngestResponse{SavedRecordsCount: 2}, nil)

		summary := service.syncAll(ctx)

		assert.Equal(t, 1, summary.Failures)
		assert.Equal(t, 2, summary.Saved)
	})

	t.Run("Erro ao listar contas", func(t *testing.T) {
		service, mockAccountRepo, _ := newTestSyncService(t, 0, 3)

		mockAccountRepo.EXPECT().ListAccounts(gomock.Any(), gomock.Any()).Return(nil, errors.New("db offline"))

		summary := service.syncAll(ctx)

		assert.Equal(t, 1, summary.Failures)
		assert.Zero(t, summary.Rounds)
	})
}

func TestIngestSyncService_singleRunGuard(t *testing.T) {
	service, _, _ := newTestSyncService(t, 0, 1)

	require.True(t, service.acquire())
	assert.Nil(t, service.syncAll(context.Background()))
	assert.False(t, service.TriggerManualSync())

	service.release(nil)
	assert.False(t, service.GetStatus()["sync_running"].(bool))
}
