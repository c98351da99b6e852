package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/profiles/pkg/httpx"
	"github.com/aussiebroadwan/profiles/pkg/profilesdk"
)

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Returns 200 with uptime and version whenever the process is serving
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	profilesdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, profilesdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: version,
		})
	}
}
