package http

import (
	"net/http"
	"time"

	"github.com/nightglass/authkit/internal/auth/store"
	"github.com/nightglass/authkit/pkg/httpx"
	"github.com/nightglass/authkit/pkg/jwtx"
)

// ReadyzHandler is the readiness probe: the store must answer and the
// keyring must hold a signing key before the service takes traffic.
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	ring *jwtx.Keyring,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &healthChecks{
			Database: "ok",
			Signer:   "ok",
		}
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		if _, err := ring.Active(); err != nil {
			checks.Signer = "error: no signing key"
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, healthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
