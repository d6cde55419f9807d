package http

import (
	"net/http"

	"github.com/nightglass/authkit/pkg/httpx"
	"github.com/nightglass/authkit/pkg/jwtx"
)

// JWKSHandler publishes the verification key set for public discovery.
// The set covers the active key and any retiring keys still inside their
// windows.
func JWKSHandler(ring *jwtx.Keyring) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, ring.Snapshot().JWKS())
	}
}
