package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/marketplace-ingest-api/internal/domain"
	reportingmocks "github.com/vfg2006/marketplace-ingest-api/internal/usecases/reporting/mocks"
	"go.uber.org/mock/gomock"
)

func TestListMonthlyAggregates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := reportingmocks.NewMockReporter(ctrl)

	t.Run("Período válido", func(t *testing.T) {
		mockService.EXPECT().ListMonthly(gomock.Any(), 2024, 5, "loja-a").Return([]*domain.MonthlyAggregateRecord{
			{Identifier: "SKU-A", Year: 2024, Month: 5, TotalSales: 1000},
		}, nil)

		rec := httptest.NewRecorder()
		ListMonthlyAggregates(mockService).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/monthly-aggregates?year=2024&month=5&accountId=loja-a", nil))

		assert.Equal(t, http.StatusOK, rec.Code)

		var records []domain.MonthlyAggregateRecord
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
		require.Len(t, records, 1)
		assert.Equal(t, "SKU-A", records[0].Identifier)
	})

	t.Run("Mês inválido", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ListMonthlyAggregates(mockService).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/monthly-aggregates?year=2024&month=13", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Erro do banco", func(t *testing.T) {
		mockService.EXPECT().ListMonthly(gomock.Any(), 2024, 4, "").Return(nil, errors.New("db offline"))

		rec := httptest.NewRecorder()
		ListMonthlyAggregates(mockService).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/monthly-aggregates?year=2024&month=4", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestExportMonthlyAggregates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := reportingmocks.NewMockReporter(ctrl)
	mockService.EXPECT().ExportMonthly(gomock.Any(), 2024, 5, "").Return([]byte("PK-conteudo"), nil)

	rec := httptest.NewRecorder()
	ExportMonthlyAggregates(mockService).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/monthly-aggregates/export?year=2024&month=5", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "agregados-2024-05.xlsx")
	assert.Equal(t, "PK-conteudo", rec.Body.String())
}

func TestGetAvailablePeriods(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := reportingmocks.NewMockReporter(ctrl)
	mockService.EXPECT().AvailablePeriods(gomock.Any()).Return(&domain.AvailablePeriods{
		Periods: []string{"05-2024"},
		Years:   []string{"2024"},
		Months:  []string{"05"},
	}, nil)

	rec := httptest.NewRecorder()
	GetAvailablePeriods(mockService).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/monthly-aggregates/periods", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"periods":["05-2024"],"years":["2024"],"months":["05"]}`, rec.Body.String())
}
