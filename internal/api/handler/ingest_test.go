package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/marketplace-ingest-api/internal/domain"
	"github.com/vfg2006/marketplace-ingest-api/internal/usecases/ingesting"
	ingestmocks "github.com/vfg2006/marketplace-ingest-api/internal/usecases/ingesting/mocks"
	"github.com/vfg2006/marketplace-ingest-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func TestIngest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := ingestmocks.NewMockIngestService(ctrl)

	tests := []struct {
		name     string
		body     string
		setup    func()
		validate func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "Requisição válida retorna o resumo da execução",
			body: `{"accountId":"loja-a","year":2024,"month":5,"saveToDatabase":false,"maxIdentifiersToProcess":3}`,
			setup: func() {
				mockService.EXPECT().Ingest(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req *domain.IngestRequest) (*domain.IngestResponse, error) {
						assert.Equal(t, "loja-a", req.AccountID)
						assert.Equal(t, 2024, *req.Year)
						assert.Equal(t, 5, *req.Month)
						assert.False(t, *req.SaveToDatabase)
						assert.Nil(t, req.FetchInventory)
						assert.Equal(t, 3, req.MaxIdentifiersToProcess)
						return &domain.IngestResponse{
							Success:              true,
							RunID:                "abc123",
							SavedRecordsCount:    3,
							MoreDataAvailable:    true,
							NextIdentifierOffset: 3,
							SavedRecords:         []*domain.MonthlyAggregateRecord{},
							Warnings:             []domain.Warning{},
						}, nil
					})
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)

				var resp map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, true, resp["success"])
				assert.Equal(t, "abc123", resp["runId"])
				assert.Equal(t, true, resp["moreDataAvailable"])
				assert.Equal(t, float64(3), resp["nextIdentifierOffset"])
			},
		},
		{
			name: "Corpo vazio usa os padrões",
			body: "",
			setup: func() {
				mockService.EXPECT().Ingest(gomock.Any(), &domain.IngestRequest{}).
					Return(&domain.IngestResponse{Success: true}, nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
			},
		},
		{
			name:  "JSON inválido",
			body:  `{"year": "abc"}`,
			setup: func() {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)

				var resp apiErrors.APIError
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, apiErrors.ErrInvalidFormat, resp.Code)
				assert.NotEmpty(t, resp.Error)
			},
		},
		{
			name: "Credenciais ausentes viram erro de configuração",
			body: `{"accountId":"desconhecida"}`,
			setup: func() {
				mockService.EXPECT().Ingest(gomock.Any(), gomock.Any()).
					Return(nil, ingesting.NewIngestError(ingesting.ErrCredentials, apiErrors.ErrMissingCredentials, "Nenhum conjunto completo de credenciais encontrado"))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

				var resp apiErrors.APIError
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, apiErrors.ErrMissingCredentials, resp.Code)
				assert.Contains(t, resp.Error, "credentials")
			},
		},
		{
			name: "Erro inesperado vira erro interno",
			body: `{}`,
			setup: func() {
				mockService.EXPECT().Ingest(gomock.Any(), gomock.Any()).Return(nil, errors.New("panic evitado"))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusInternalServerError, rec.Code)
				assert.Contains(t, rec.Body.String(), `"error":"panic evitado"`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			req := httptest.NewRequest(http.MethodPost, "/v1/ingest", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			Ingest(mockService).ServeHTTP(rec, req)

			tt.validate(t, rec)
		})
	}
}
