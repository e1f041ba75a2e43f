package api_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/UnknownOlympus/jobheat/internal/api"
	"github.com/UnknownOlympus/jobheat/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	router := gin.New()
	router.Use(api.RequestID(), api.AccessLog(logger, metrics.NewMetrics(prometheus.NewRegistry())))
	router.GET("/ok", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/broken", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
		c.Status(http.StatusOK)
	})

	t.Run("successful request logs no error", func(t *testing.T) {
		buf.Reset()
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))

		assert.Contains(t, buf.String(), "Request served")
		assert.NotContains(t, buf.String(), "Request failed")
	})

	t.Run("handler error is logged", func(t *testing.T) {
		buf.Reset()
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/broken", nil))

		assert.Contains(t, buf.String(), "Request failed")
		assert.Contains(t, buf.String(), assert.AnError.Error())
		assert.Contains(t, buf.String(), "path=/broken")
	})
}
