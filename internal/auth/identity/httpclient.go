package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nightglass/authkit/internal/auth/domain"
)

const defaultTimeout = 5 * time.Second

// HTTPVerifier calls a directory service over HTTP. The directory exposes
// POST {base}/v1/verify taking {"username","secret"} and answering 200 with
// the subject document, 401 on rejection.
type HTTPVerifier struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPVerifier(baseURL string, timeout time.Duration) *HTTPVerifier {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPVerifier{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type verifyRequest struct {
	Username string `json:"username"`
	Secret   string `json:"secret"`
}

type verifyResponse struct {
	Subject string   `json:"subject"`
	Roles   []string `json:"roles"`
	Tenant  string   `json:"tenant"`
}

func (v *HTTPVerifier) VerifyCredentials(ctx context.Context, username, secret string) (domain.Identity, error) {
	body, err := json.Marshal(verifyRequest{Username: username, Secret: secret})
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: encode request: %v", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+"/v1/verify", bytes.NewReader(body))
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fallthrough to decode below
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return domain.Identity{}, ErrInvalidCredentials
	default:
		return domain.Identity{}, fmt.Errorf("%w: directory returned %d", ErrUnavailable, resp.StatusCode)
	}

	var out verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.Identity{}, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if out.Subject == "" {
		return domain.Identity{}, fmt.Errorf("%w: directory returned empty subject", ErrUnavailable)
	}

	return domain.Identity{
		Subject: out.Subject,
		Roles:   out.Roles,
		Tenant:  out.Tenant,
	}, nil
}
