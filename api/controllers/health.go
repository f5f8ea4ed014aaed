package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/estradaranch/flockherd-backend/pkg/config"
	"github.com/estradaranch/flockherd-backend/pkg/db"
	"github.com/estradaranch/flockherd-backend/pkg/logger"
	"github.com/estradaranch/flockherd-backend/pkg/redis"
)

// HealthLive reports process liveness.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-FlockHerd-Env", cfg.App.Env)
		writeHealth(w, http.StatusOK, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness by pinging the datastore and session store.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-FlockHerd-Env", cfg.App.Env)

		checks := map[string]string{}
		status := http.StatusOK

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				checks["db"] = "down"
				status = http.StatusServiceUnavailable
				if logg != nil {
					logg.Error(r.Context(), "health.db_ping_failed", err)
				}
			} else {
				checks["db"] = "up"
			}
		}

		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				checks["redis"] = "down"
				status = http.StatusServiceUnavailable
				if logg != nil {
					logg.Error(r.Context(), "health.redis_ping_failed", err)
				}
			} else {
				checks["redis"] = "up"
			}
		}

		state := "ready"
		if status != http.StatusOK {
			state = "degraded"
		}
		writeHealth(w, status, map[string]any{"status": state, "checks": checks})
	}
}

func writeHealth(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
