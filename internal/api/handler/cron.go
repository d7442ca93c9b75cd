package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketplace-ingest-api/internal/scheduler"
	"github.com/vfg2006/marketplace-ingest-api/pkg/apiErrors"
)

// CronJobServices contém os serviços de cron que podem ser executados manualmente
type CronJobServices struct {
	IngestSyncService *scheduler.IngestSyncService
}

// RunIngestSync dispara manualmente a sincronização de ingestão
func RunIngestSync(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunIngestSync")

		if services.IngestSyncService == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização de ingestão não disponível", nil)
			return
		}

		if !services.IngestSyncService.TriggerManualSync() {
			apiErrors.WriteError(w, apiErrors.ErrAlreadyRunning, "Sincronização de ingestão já em andamento", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    "ingest",
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := map[string]any{}
		if services.IngestSyncService != nil {
			status["ingest"] = services.IngestSyncService.GetStatus()
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(status)
	}
}
