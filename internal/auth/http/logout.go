package http

import (
	"encoding/json"
	"net/http"

	"github.com/nightglass/authkit/internal/auth/service"
	"github.com/nightglass/authkit/pkg/httpx"
)

// LogoutHandler revokes the presented refresh token and its lineage.
// Always answers 204 for well-formed requests; revocation is idempotent
// and does not confirm whether the token existed.
type LogoutHandler struct {
	LoginService *service.LoginService
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req logoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	if err := h.LoginService.Logout(r.Context(), req.RefreshToken); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
