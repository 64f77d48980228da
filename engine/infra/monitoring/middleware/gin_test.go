package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Should count requests by route template", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		m, err := NewHTTPMetrics(reg, "test")
		require.NoError(t, err)
		r := gin.New()
		r.Use(m.Middleware())
		r.GET("/api/festivals", func(c *gin.Context) { c.JSON(http.StatusOK, []string{}) })

		for range 2 {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/festivals?country=fr", http.NoBody))
			require.Equal(t, http.StatusOK, w.Code)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", http.NoBody))

		expected := `
# HELP test_http_requests_total Total HTTP requests
# TYPE test_http_requests_total counter
test_http_requests_total{method="GET",path="/api/festivals",status_code="200"} 2
test_http_requests_total{method="GET",path="unmatched",status_code="404"} 1
`
		assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "test_http_requests_total"))
		assert.Equal(t, float64(0), testutil.ToFloat64(m.requestsInFlight))
	})

	t.Run("Should fail when registered twice on the same registry", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		_, err := NewHTTPMetrics(reg, "dup")
		require.NoError(t, err)
		_, err = NewHTTPMetrics(reg, "dup")
		assert.Error(t, err)
	})
}
