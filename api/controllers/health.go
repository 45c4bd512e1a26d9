package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/stockdesk/api/responses"
	"github.com/angelmondragon/stockdesk/pkg/config"
	pkgerrors "github.com/angelmondragon/stockdesk/pkg/errors"
	"github.com/angelmondragon/stockdesk/pkg/logger"
)

const envHeader = "X-Stockdesk-Env"

// Prober checks that the remote API answers.
type Prober interface {
	Probe(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only while the remote endpoint answers the probe.
func HealthReady(cfg *config.Config, prober Prober, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		if prober == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "remote prober unavailable"))
			return
		}
		if err := prober.Probe(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready", "remote": "ok"})
	}
}
