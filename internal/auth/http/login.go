package http

import (
	"encoding/json"
	"net/http"

	"github.com/nightglass/authkit/internal/auth/service"
	"github.com/nightglass/authkit/pkg/httpx"
)

// LoginHandler exchanges a username/secret pair for a token pair.
type LoginHandler struct {
	LoginService *service.LoginService
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	pair, err := h.LoginService.PasswordLogin(r.Context(), req.Username, req.Secret)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newTokenPairResponse(pair))
}
