package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/marketplace-ingest-api/pkg/log"
)

var startedAt = time.Now()

type healthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
	Uptime string `json:"uptime"`
}

// HealthcheckHandler responde sem tocar em banco ou marketplace; serve apenas para liveness
func HealthcheckHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()

		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(healthResponse{
			Status: "ok",
			Time:   now.UTC().Format(time.RFC3339),
			Uptime: now.Sub(startedAt).Round(time.Second).String(),
		})
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("Erro ao responder healthcheck")
		}
	})
}
