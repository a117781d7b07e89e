// Package iam exchanges a signed service-account assertion for a
// short-lived bearer token and caches it.
//
// The cache is an oauth2.ReuseTokenSourceWithExpiry: a token is reused
// until 100 seconds before its stated expiry (so in-flight requests never
// race a dying token), and concurrent refreshes collapse into one exchange.
package iam

import (
	"bytes"
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/domain"
)

const (
	// assertionTTL is the validity the signed assertion claims for itself.
	assertionTTL = time.Hour

	// ExpiryMargin is subtracted from the issuer's stated expiry before a
	// cached token is considered stale.
	ExpiryMargin = 100 * time.Second

	// exchangeTimeout bounds one call to the identity endpoint.
	exchangeTimeout = 10 * time.Second
)

// Config holds the service-account identity.
type Config struct {
	// ServiceAccountID is the assertion issuer.
	ServiceAccountID string

	// KeyID identifies the authorized key pair (the kid header).
	KeyID string

	// PrivateKey signs the assertion (PS256).
	PrivateKey *rsa.PrivateKey

	// TokenEndpoint is the identity endpoint; it doubles as the
	// assertion audience.
	TokenEndpoint string

	// HTTPClient overrides the exchange client. Used in tests.
	HTTPClient *http.Client
}

// NewTokenSource returns the cached token source.
func NewTokenSource(cfg Config) (oauth2.TokenSource, error) {
	if cfg.ServiceAccountID == "" || cfg.KeyID == "" || cfg.PrivateKey == nil || cfg.TokenEndpoint == "" {
		return nil, fmt.Errorf("%w: incomplete IAM configuration", domain.ErrInvalidInput)
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: exchangeTimeout}
	}

	src := &assertionSource{cfg: cfg, client: client, now: time.Now}
	return oauth2.ReuseTokenSourceWithExpiry(nil, src, ExpiryMargin), nil
}

// ParsePrivateKey reads a PEM-encoded RSA private key.
func ParsePrivateKey(pemBytes []byte) (*rsa.PrivateKey, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return key, nil
}

// assertionSource performs one uncached exchange per Token call.
type assertionSource struct {
	cfg    Config
	client *http.Client
	now    func() time.Time
}

// exchangeResponse is the identity endpoint's payload.
type exchangeResponse struct {
	IAMToken  string    `json:"iamToken"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Token signs a fresh assertion and exchanges it.
func (s *assertionSource) Token() (*oauth2.Token, error) {
	now := s.now()

	claims := jwt.RegisteredClaims{
		Audience:  jwt.ClaimStrings{s.cfg.TokenEndpoint},
		Issuer:    s.cfg.ServiceAccountID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(assertionTTL)),
	}
	assertion := jwt.NewWithClaims(jwt.SigningMethodPS256, claims)
	assertion.Header["kid"] = s.cfg.KeyID

	signed, err := assertion.SignedString(s.cfg.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: sign assertion: %v", domain.ErrCredentialUnavailable, err)
	}

	body, err := json.Marshal(map[string]string{"jwt": signed})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCredentialUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), exchangeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.TokenEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCredentialUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: exchange: %v", domain.ErrCredentialUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: exchange returned status %d", domain.ErrCredentialUnavailable, resp.StatusCode)
	}

	var exchanged exchangeResponse
	if err := json.NewDecoder(resp.Body).Decode(&exchanged); err != nil {
		return nil, fmt.Errorf("%w: decode exchange response: %v", domain.ErrCredentialUnavailable, err)
	}
	if exchanged.IAMToken == "" {
		return nil, fmt.Errorf("%w: exchange response has no token", domain.ErrCredentialUnavailable)
	}

	expiry := exchanged.ExpiresAt
	if expiry.IsZero() {
		expiry = now.Add(assertionTTL)
	}

	return &oauth2.Token{
		AccessToken: exchanged.IAMToken,
		TokenType:   "Bearer",
		Expiry:      expiry,
	}, nil
}
