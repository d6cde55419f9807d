package http

import (
	"net/http"
	"time"

	"github.com/nightglass/authkit/pkg/httpx"
)

// LivezHandler is the liveness probe: answers ok whenever the process is
// serving, with no dependency checks.
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, healthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
