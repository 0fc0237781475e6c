package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tradingconf/registration/internal/domain"
	"github.com/tradingconf/registration/internal/handler"
	handlermocks "github.com/tradingconf/registration/internal/handler/mocks"
	"github.com/tradingconf/registration/internal/logger"
)

type tokenVerifier map[string]string

func (v tokenVerifier) Verify(_ context.Context, token string) (*domain.Identity, error) {
	userID, ok := v[token]
	if !ok {
		return nil, errors.New("unknown token")
	}
	return &domain.Identity{UserID: userID}, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *handlermocks.MockTeamServiceInterface) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	teams := handlermocks.NewMockTeamServiceInterface(t)
	r := SetupRoutes(Handlers{
		Application: handler.NewApplicationHandler(handlermocks.NewMockApplicationServiceInterface(t), 5<<20),
		Team:        handler.NewTeamHandler(teams),
		Invite:      handler.NewInviteHandler(handlermocks.NewMockInviteServiceInterface(t)),
		User:        handler.NewUserHandler(handlermocks.NewMockUserServiceInterface(t)),
	}, Options{
		Verifier: tokenVerifier{"token-alice": "alice"},
		Logger:   logger.Nop(),
	})
	return r, teams
}

func TestRouter_Health(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_APIRequiresAuth(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, path := range []string{"/api/team", "/api/get_invites", "/api/user", "/api/user-directory", "/api/application-info"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, "no-store", w.Header().Get("Cache-Control"), path)
	}
}

func TestRouter_AuthenticatedRequest(t *testing.T) {
	r, teams := newTestRouter(t)
	teams.EXPECT().GetTeam(mock.Anything, "alice").Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/team", nil)
	req.Header.Set("Authorization", "Bearer token-alice")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"team":null}`, w.Body.String())
}
