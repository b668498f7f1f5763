package controllers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/angelmondragon/inventory-service/api/responses"
	"github.com/angelmondragon/inventory-service/pkg/config"
	"github.com/angelmondragon/inventory-service/pkg/db"
	"github.com/angelmondragon/inventory-service/pkg/types"
)

const readinessTimeout = 2 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Inventory-Env", cfg.App.Env)
		responses.WriteSuccess(w, types.StatusResponse{Status: "OK"})
	}
}

// HealthReady pings every named dependency and answers 503 if any fails.
func HealthReady(cfg *config.Config, deps map[string]db.Pinger) http.HandlerFunc {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Inventory-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		resp := types.StatusResponse{Status: "OK", Checks: map[string]string{}}
		status := http.StatusOK
		for _, name := range names {
			if err := deps[name].Ping(ctx); err != nil {
				resp.Checks[name] = "unavailable"
				resp.Status = "UNAVAILABLE"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		responses.WriteJSON(w, status, resp)
	}
}
