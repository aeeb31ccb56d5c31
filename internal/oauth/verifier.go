package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"cms-service/pkg/config"

	"go.uber.org/zap"
)

// ErrInvalidAssertion is returned when the provider rejects the assertion or
// the assertion was not issued for our client.
var ErrInvalidAssertion = errors.New("invalid oauth assertion")

// Identity is the provider-asserted identity extracted from a verified
// assertion.
type Identity struct {
	Email string
	Name  string
}

// Verifier exchanges an OAuth provider assertion for a verified identity.
// The provider integration is a boundary: everything past this interface only
// sees an email and display name.
type Verifier interface {
	Verify(ctx context.Context, assertion string) (*Identity, error)
}

// TokenInfoVerifier validates assertions against the provider's tokeninfo
// endpoint.
type TokenInfoVerifier struct {
	endpoint   string
	clientID   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewTokenInfoVerifier creates a verifier from the OAuth config
func NewTokenInfoVerifier(cfg *config.OAuthConfig, logger *zap.Logger) *TokenInfoVerifier {
	return &TokenInfoVerifier{
		endpoint:   cfg.TokenInfoURL,
		clientID:   cfg.ClientID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// tokenInfoResponse is the subset of the provider's tokeninfo payload we use
type tokenInfoResponse struct {
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Audience      string `json:"aud"`
}

// Verify posts the assertion to the tokeninfo endpoint and extracts the
// asserted identity
func (v *TokenInfoVerifier) Verify(ctx context.Context, assertion string) (*Identity, error) {
	form := url.Values{}
	form.Set("id_token", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.endpoint+"?"+form.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building tokeninfo request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		v.logger.Warn("Provider rejected assertion", zap.Int("status", resp.StatusCode))
		return nil, ErrInvalidAssertion
	}

	var info tokenInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decoding tokeninfo response: %w", err)
	}

	if info.Email == "" || info.EmailVerified != "true" {
		return nil, ErrInvalidAssertion
	}
	if v.clientID != "" && info.Audience != v.clientID {
		v.logger.Warn("Assertion audience mismatch", zap.String("aud", info.Audience))
		return nil, ErrInvalidAssertion
	}

	return &Identity{Email: info.Email, Name: info.Name}, nil
}
