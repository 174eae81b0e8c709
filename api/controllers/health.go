package controllers

import (
	"net/http"

	"github.com/farm2home/storefront-backend/api/responses"
	"github.com/farm2home/storefront-backend/pkg/config"
	pkgerrors "github.com/farm2home/storefront-backend/pkg/errors"
	"github.com/farm2home/storefront-backend/pkg/logger"
	"github.com/farm2home/storefront-backend/pkg/redis"
)

const envHeader = "X-Farm2Home-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis not ready"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
