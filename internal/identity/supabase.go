// Package identity verifies bearer tokens issued by the Supabase auth service.
package identity

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tidwall/gjson"

	"github.com/tradingconf/registration/internal/domain"
)

// ErrInvalidToken is returned for tokens the identity provider rejects.
var ErrInvalidToken = errors.New("invalid token")

// Config holds Supabase auth settings.
type Config struct {
	URL       string
	APIKey    string
	JWTSecret string
	Timeout   time.Duration
}

// Verifier resolves bearer tokens to identities.
type Verifier struct {
	cfg    Config
	client *http.Client
}

// NewVerifier creates a verifier. When a JWT secret is configured tokens are
// checked locally first and the auth API is consulted only on local failure.
func NewVerifier(cfg Config) *Verifier {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	return &Verifier{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// Verify validates token and returns the identity it was issued to.
func (v *Verifier) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	if v.cfg.JWTSecret != "" {
		if id, err := v.verifyLocal(token); err == nil {
			return id, nil
		}
	}

	return v.verifyRemote(ctx, token)
}

// verifyLocal checks the HS256 signature with the project JWT secret.
func (v *Verifier) verifyLocal(token string) (*domain.Identity, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(v.cfg.JWTSecret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("jwt parse: %w", err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, ErrInvalidToken
	}

	id := &domain.Identity{
		UserID: sub,
		Email:  stringClaim(claims, "email"),
		Role:   stringClaim(claims, "role"),
	}
	if md, ok := claims["user_metadata"].(map[string]any); ok {
		id.FullName, _ = md["full_name"].(string)
		id.FirstName, _ = md["first_name"].(string)
		id.LastName, _ = md["last_name"].(string)
	}
	return id, nil
}

// verifyRemote asks the auth API who the token belongs to.
func (v *Verifier) verifyRemote(ctx context.Context, token string) (*domain.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.cfg.URL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build auth request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", v.cfg.APIKey)

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to validate token: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read auth response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrInvalidToken
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token validation failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	user := gjson.ParseBytes(body)
	userID := user.Get("id").String()
	if userID == "" {
		return nil, ErrInvalidToken
	}

	return &domain.Identity{
		UserID:    userID,
		Email:     user.Get("email").String(),
		Role:      user.Get("role").String(),
		FullName:  user.Get("user_metadata.full_name").String(),
		FirstName: user.Get("user_metadata.first_name").String(),
		LastName:  user.Get("user_metadata.last_name").String(),
	}, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}
