package reporting

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/marketplace-ingest-api/infrastructure/repository/mocks"
	"github.com/vfg2006/marketplace-ingest-api/internal/domain"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
)

func TestService_AvailablePeriods(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockMonthlyAggregateRepository(ctrl)
	service := NewService(mockRepo)

	mockRepo.EXPECT().GetAllPeriods(gomock.Any()).Return([]string{"11-2023", "12-2023", "01-2024"}, nil)

	periods, err := service.AvailablePeriods(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"11-2023", "12-2023", "01-2024"}, periods.Periods)
	assert.Equal(t, []string{"2023", "2024"}, periods.Years)
	assert.Equal(t, []string{"01", "11", "12"}, periods.Months)
	assert.Equal(t, "01-2024", periods.Latest)
}

func TestService_ListMonthly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockMonthlyAggregateRepository(ctrl)
	service := NewService(mockRepo)

	t.Run("Mês inválido", func(t *testing.T) {
		_, err := service.ListMonthly(context.Background(), 2024, 0, "")
		assert.ErrorIs(t, err, ErrInvalidPeriod)
	})

	t.Run("Erro do repositório é propagado", func(t *testing.T) {
		dbErr := errors.New("timeout")
		mockRepo.EXPECT().ListByPeriod(gomock.Any(), 2024, 5, "loja-a").Return(nil, dbErr)

		_, err := service.ListMonthly(context.Background(), 2024, 5, "loja-a")
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestService_ExportMonthly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockMonthlyAggregateRepository(ctrl)
	service := NewService(mockRepo)

	mockRepo.EXPECT().ListByPeriod(gomock.Any(), 2024, 5, "").Return([]*domain.MonthlyAggregateRecord{
		{
			Identifier: "SKU-A", AccountID: "loja-a", Year: 2024, Month: 5, Currency: "USD",
			TotalSales: 1000, UnitCount: 20, AveragePrice: 50, TotalReferralFee: 150,
			Inventory: &domain.InventorySnapshot{Fulfillable: 30, InboundShipped: 5},
		},
		{Identifier: "SKU-B", AccountID: "loja-a", Year: 2024, Month: 5, Currency: "USD"},
	}, nil)

	content, err := service.ExportMonthly(context.Background(), 2024, 5, "")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("05-2024")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Identificador", rows[0][0])
	assert.Equal(t, "SKU-A", rows[1][0])
	assert.Equal(t, "05-2024", rows[1][2])
	assert.Equal(t, "1000", rows[1][4])
	assert.Equal(t, "30", rows[1][16])
	assert.Equal(t, "5", rows[1][17])
	assert.Equal(t, "SKU-B", rows[2][0])
}
