package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nightglass/authkit/internal/auth/domain"
	authhttp "github.com/nightglass/authkit/internal/auth/http"
	"github.com/nightglass/authkit/internal/auth/identity"
	"github.com/nightglass/authkit/internal/auth/service"
	"github.com/nightglass/authkit/internal/auth/store/drivers/sqlite"
	"github.com/nightglass/authkit/pkg/cryptox"
	"github.com/nightglass/authkit/pkg/jwtx"
)

const testIssuer = "authkit-test"

type testEnv struct {
	router *authhttp.Router
	store  *sqlite.Store
	ring   *jwtx.Keyring
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSigner(jwtx.AlgorithmEdDSA, "test-key", pemKey, time.Now().UTC())
	require.NoError(t, err)

	ring := jwtx.NewKeyring()
	require.NoError(t, ring.Install(signer))

	tokens := &service.TokenService{
		Keyring:        ring,
		Verifier:       jwtx.NewVerifier(ring, jwtx.VerifyOptions{Issuer: testIssuer}),
		Store:          st,
		Issuer:         testIssuer,
		AccessTTL:      15 * time.Minute,
		RefreshTTL:     7 * 24 * time.Hour,
		RevocationMode: service.RevocationEnforce,
	}

	dir := identity.NewStaticVerifier()
	dir.Add("alice", "s3cret", domain.Identity{
		Subject: "user-alice",
		Roles:   []string{"admin"},
		Tenant:  "acme",
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := authhttp.NewRouter(ring, "test", st, logger)
	r.LoginService = &service.LoginService{Identity: dir, Tokens: tokens}
	r.TokenService = tokens
	r.ApplyRoutes()

	return &testEnv{router: r, store: st, ring: ring}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T) map[string]any {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/v1/login", map[string]string{
		"username": "alice",
		"secret":   "s3cret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var pair map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pair))
	return pair
}

func TestLoginIssuesTokenPair(t *testing.T) {
	env := newTestEnv(t)

	pair := env.login(t)
	require.NotEmpty(t, pair["access_token"])
	require.NotEmpty(t, pair["refresh_token"])
	require.Equal(t, "Bearer", pair["token_type"])
	require.EqualValues(t, 900, pair["expires_in"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/v1/login", map[string]string{
		"username": "alice",
		"secret":   "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "invalid_credentials", body["error"])
}

func TestLoginMalformedBody(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/login", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshRotatesAndDetectsReplay(t *testing.T) {
	env := newTestEnv(t)

	pair := env.login(t)
	oldRefresh := pair["refresh_token"].(string)

	rec := env.do(t, http.MethodPost, "/v1/refresh", map[string]string{
		"refresh_token": oldRefresh,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var next map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &next))
	require.NotEqual(t, oldRefresh, next["refresh_token"])

	// Replaying the consumed token fails and burns the whole lineage.
	rec = env.do(t, http.MethodPost, "/v1/refresh", map[string]string{
		"refresh_token": oldRefresh,
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/v1/refresh", map[string]string{
		"refresh_token": next["refresh_token"].(string),
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)

	pair := env.login(t)
	refresh := pair["refresh_token"].(string)

	rec := env.do(t, http.MethodPost, "/v1/logout", map[string]string{
		"refresh_token": refresh,
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodPost, "/v1/refresh", map[string]string{
		"refresh_token": refresh,
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutUnknownTokenStillNoContent(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/v1/logout", map[string]string{
		"refresh_token": "never-issued",
	})
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestJWKS(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/.well-known/jwks.json", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var set struct {
		Keys []map[string]any `json:"keys"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &set))
	require.Len(t, set.Keys, 1)
	require.Equal(t, "test-key", set.Keys[0]["kid"])
}

func TestLivez(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/livez", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyz(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/readyz", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "ok", body["status"])
}

func TestReadyzDegradedWhenStoreDown(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.store.Close())

	rec := env.do(t, http.MethodGet, "/readyz", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLoginRateLimited(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]string{"username": "alice", "secret": "wrong"}
	for i := 0; i < 5; i++ {
		rec := env.do(t, http.MethodPost, "/v1/login", body)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec := env.do(t, http.MethodPost, "/v1/login", body)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
}
