package http

import (
	"encoding/json"
	"net/http"

	"github.com/nightglass/authkit/internal/auth/service"
	"github.com/nightglass/authkit/pkg/httpx"
)

// RefreshHandler rotates a refresh token into a new pair. The presented
// token is consumed whether or not the caller sees the response.
type RefreshHandler struct {
	LoginService *service.LoginService
}

func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	pair, err := h.LoginService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newTokenPairResponse(pair))
}
