package iam

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/domain"
)

func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

// identityStub verifies incoming assertions and counts exchanges.
type identityStub struct {
	t         *testing.T
	key       *rsa.PrivateKey
	exchanges atomic.Int64
	tokenTTL  time.Duration
	lastKid   string
	lastIss   string
	lastAud   string
}

func (s *identityStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.exchanges.Add(1)

	var body struct {
		JWT string `json:"jwt"`
	}
	require.NoError(s.t, json.NewDecoder(r.Body).Decode(&body))

	parsed, err := jwt.ParseWithClaims(body.JWT, &jwt.RegisteredClaims{}, func(tok *jwt.Token) (any, error) {
		if tok.Method.Alg() != jwt.SigningMethodPS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return &s.key.PublicKey, nil
	})
	require.NoError(s.t, err)

	claims := parsed.Claims.(*jwt.RegisteredClaims)
	s.lastKid, _ = parsed.Header["kid"].(string)
	s.lastIss = claims.Issuer
	if len(claims.Audience) > 0 {
		s.lastAud = claims.Audience[0]
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"iamToken":  "t1.token",
		"expiresAt": time.Now().Add(s.tokenTTL).Format(time.RFC3339),
	})
}

func TestTokenSource_ReusesFreshToken(t *testing.T) {
	key := testKey(t)
	stub := &identityStub{t: t, key: key, tokenTTL: time.Hour}
	srv := httptest.NewServer(stub)
	defer srv.Close()

	src, err := NewTokenSource(Config{
		ServiceAccountID: "aje-account",
		KeyID:            "aje-key",
		PrivateKey:       key,
		TokenEndpoint:    srv.URL,
		HTTPClient:       srv.Client(),
	})
	require.NoError(t, err)

	first, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, "t1.token", first.AccessToken)
	assert.Equal(t, "Bearer", first.TokenType)

	second, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, first.AccessToken, second.AccessToken)

	assert.EqualValues(t, 1, stub.exchanges.Load(), "fresh token must be reused without a second exchange")

	assert.Equal(t, "aje-key", stub.lastKid)
	assert.Equal(t, "aje-account", stub.lastIss)
	assert.Equal(t, srv.URL, stub.lastAud)
}

func TestTokenSource_RefreshesInsideExpiryMargin(t *testing.T) {
	key := testKey(t)
	// The issued token expires in 30s, inside the 100s margin, so every
	// call must exchange again.
	stub := &identityStub{t: t, key: key, tokenTTL: 30 * time.Second}
	srv := httptest.NewServer(stub)
	defer srv.Close()

	src, err := NewTokenSource(Config{
		ServiceAccountID: "aje-account",
		KeyID:            "aje-key",
		PrivateKey:       key,
		TokenEndpoint:    srv.URL,
		HTTPClient:       srv.Client(),
	})
	require.NoError(t, err)

	_, err = src.Token()
	require.NoError(t, err)
	_, err = src.Token()
	require.NoError(t, err)

	assert.EqualValues(t, 2, stub.exchanges.Load())
}

func TestTokenSource_ExchangeFailure(t *testing.T) {
	key := testKey(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	src, err := NewTokenSource(Config{
		ServiceAccountID: "aje-account",
		KeyID:            "aje-key",
		PrivateKey:       key,
		TokenEndpoint:    srv.URL,
		HTTPClient:       srv.Client(),
	})
	require.NoError(t, err)

	_, err = src.Token()
	assert.ErrorIs(t, err, domain.ErrCredentialUnavailable)
}

func TestTokenSource_EmptyTokenRejected(t *testing.T) {
	key := testKey(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"iamToken": ""})
	}))
	defer srv.Close()

	src, err := NewTokenSource(Config{
		ServiceAccountID: "aje-account",
		KeyID:            "aje-key",
		PrivateKey:       key,
		TokenEndpoint:    srv.URL,
		HTTPClient:       srv.Client(),
	})
	require.NoError(t, err)

	_, err = src.Token()
	assert.ErrorIs(t, err, domain.ErrCredentialUnavailable)
}

func TestNewTokenSource_RequiresIdentity(t *testing.T) {
	_, err := NewTokenSource(Config{TokenEndpoint: "https://iam.example"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParsePrivateKey(t *testing.T) {
	key := testKey(t)
	block := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	parsed, err := ParsePrivateKey(block)
	require.NoError(t, err)
	assert.True(t, key.Equal(parsed))

	_, err = ParsePrivateKey([]byte("not a key"))
	assert.Error(t, err)
}
