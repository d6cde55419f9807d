package http

import (
	"errors"
	"net/http"

	"github.com/nightglass/authkit/internal/auth/service"
	"github.com/nightglass/authkit/pkg/httpx"
)

// writeServiceError maps the service taxonomy onto status codes and the
// generic error envelope. Rejections stay coarse on purpose: a caller
// learns the class of failure, never which check tripped.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials")
	case errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrExpired),
		errors.Is(err, service.ErrRevoked),
		errors.Is(err, service.ErrReplayDetected):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_token")
	case errors.Is(err, service.ErrKeyUnavailable),
		errors.Is(err, service.ErrStoreUnavailable):
		httpx.WriteError(w, http.StatusServiceUnavailable, "service_unavailable")
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error")
	}
}
