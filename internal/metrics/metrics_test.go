package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveOperation(t *testing.T) {
	okBefore := testutil.ToFloat64(operations.WithLabelValues("test_op", "ok"))
	errBefore := testutil.ToFloat64(operations.WithLabelValues("test_op", "error"))

	ObserveOperation("test_op", nil)
	ObserveOperation("test_op", nil)
	ObserveOperation("test_op", errors.New("boom"))

	assert.Equal(t, okBefore+2, testutil.ToFloat64(operations.WithLabelValues("test_op", "ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(operations.WithLabelValues("test_op", "error")))
}

func TestMiddleware_RecordsMatchedRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/api/teams/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/api/teams/:id", "418"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/teams/42", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/api/teams/:id", "418")))
	assert.Zero(t, testutil.ToFloat64(httpInFlight))
}

func TestHandler_ExposesRegistry(t *testing.T) {
	ObserveOperation("exposed_op", nil)

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `registration_service_operations_total{operation="exposed_op",outcome="ok"}`))
}
