package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	applog "cuisine/internal/log"
)

type healthResponse struct {
	Status   string    `json:"status"`
	Database string    `json:"database"`
	Time     time.Time `json:"time"`
}

// Health reports readiness. The database is pinged when one is configured;
// a failed ping answers 503 so probes take the instance out of rotation.
func Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Database: "disabled", Time: time.Now().UTC()}
	status := http.StatusOK

	if database != nil {
		resp.Database = "ok"
		if err := pingDatabase(r.Context()); err != nil {
			applog.Error(r.Context(), "health check database ping failed", "error", err)
			resp.Status, resp.Database = "degraded", "unreachable"
			status = http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		applog.Error(r.Context(), "failed to encode health response", "error", err)
	}
}

func pingDatabase(ctx context.Context) error {
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
