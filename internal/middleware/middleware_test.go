package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradingconf/registration/internal/domain"
	"github.com/tradingconf/registration/internal/logger"
)

type stubVerifier struct {
	tokens map[string]domain.Identity
	err    error
	calls  int
}

func (s *stubVerifier) Verify(_ context.Context, token string) (*domain.Identity, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	id, ok := s.tokens[token]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return &id, nil
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/whoami", func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"user_id": ""})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": id.UserID})
	})
	return r
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestAuth(t *testing.T) {
	verifier := &stubVerifier{tokens: map[string]domain.Identity{"good": {UserID: "alice"}}}

	tests := []struct {
		name          string
		header        string
		wantStatus    int
		wantError     string
		wantUser      string
		wantVerifyHit bool
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantError: "Missing auth token."},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantError: "Missing auth token."},
		{name: "blank bearer", header: "Bearer   ", wantStatus: http.StatusUnauthorized, wantError: "Missing auth token."},
		{name: "invalid token", header: "Bearer bad", wantStatus: http.StatusUnauthorized, wantError: "Unauthorized.", wantVerifyHit: true},
		{name: "valid token", header: "Bearer good", wantStatus: http.StatusOK, wantUser: "alice", wantVerifyHit: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier.calls = 0
			r := newEngine(Auth(verifier, logger.Nop()))

			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantVerifyHit, verifier.calls == 1)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeError(t, w))
				return
			}
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantUser, body["user_id"])
		})
	}
}

func TestAuth_VerifierFailureIsUnauthorized(t *testing.T) {
	r := newEngine(Auth(&stubVerifier{err: errors.New("identity provider down")}, logger.Nop()))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer anything")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized.", decodeError(t, w))
}

func TestRequestIDAndNoStore(t *testing.T) {
	r := newEngine(RequestID(), NoStore())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2, logger.Nop())
	r := newEngine(func(c *gin.Context) {
		SetIdentity(c, domain.Identity{UserID: c.GetHeader("X-User")})
		c.Next()
	}, rl.Handler())

	call := func(user string) int {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("X-User", user)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("alice"))
	assert.Equal(t, http.StatusOK, call("alice"))
	assert.Equal(t, http.StatusTooManyRequests, call("alice"))
	// Limits are per caller.
	assert.Equal(t, http.StatusOK, call("bob"))
}

func TestRateLimiter_Prune(t *testing.T) {
	rl := NewRateLimiter(1, 1, logger.Nop())
	now := time.Now()
	rl.now = func() time.Time { return now }

	rl.limiter("old")
	now = now.Add(10 * time.Minute)
	rl.limiter("fresh")

	assert.Equal(t, 1, rl.Prune(5*time.Minute))
	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "fresh")
}
