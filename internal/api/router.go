package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/UnknownOlympus/jobheat/internal/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the API routes. page renders the HTML dashboard at "/".
func NewRouter(log *slog.Logger, m *metrics.Metrics, handler *JobHandler, page http.Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), AccessLog(log, m))

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", RequestIDHeader}
	config.ExposeHeaders = []string{RequestIDHeader}
	router.Use(cors.New(config))

	api := router.Group("/api")
	{
		api.GET("/jobs", handler.ListJobs)
		api.GET("/dashboard", handler.Dashboard)
	}

	if page != nil {
		router.GET("/", gin.WrapH(page))
	}

	return router
}

// NewServer builds the public HTTP server for router.
func NewServer(port int, router http.Handler) *http.Server {
	const (
		readTimeout  = 5 * time.Second
		writeTimeout = 30 * time.Second
	)

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           router,
		ReadHeaderTimeout: readTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
	}
}
