package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/profiles/pkg/httpx"
	"github.com/aussiebroadwan/profiles/pkg/profilesdk"
	"github.com/aussiebroadwan/profiles/pkg/slogx"
)

// Pinger is the slice of store.Store the readiness probe needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Checks that the database answers. Returns 503 with status "degraded" when it does not.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	profilesdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	profilesdk.HealthResponse	"status, uptime, version, checks"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &profilesdk.HealthChecks{Database: "ok"}
		status, code := "ok", http.StatusOK

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			slogx.FromContext(r.Context()).Warn("readiness: database ping failed", "error", err)
			checks.Database = "unavailable"
			status, code = "degraded", http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, profilesdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
