// Package monitoring exposes the health check and Prometheus metrics endpoints.
package monitoring

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger reports whether the record store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter returns the /healthz and /metrics routes.
func NewRouter(log *slog.Logger, gatherer prometheus.Gatherer, store Pinger) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", healthz(log, store)).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	return router
}

func healthz(log *slog.Logger, store Pinger) http.HandlerFunc {
	return func(writer http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		log.DebugContext(ctx, "Performing health checks...")

		status, body := http.StatusOK, "OK"
		if err := store.Ping(ctx); err != nil {
			log.WarnContext(ctx, "Store ping failed", "error", err)
			status, body = http.StatusServiceUnavailable, "DB ping failed"
		}
		writer.WriteHeader(status)
		if _, err := writer.Write([]byte(body)); err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}

		log.DebugContext(ctx, "Health checks completed", "status", status)
	}
}

// NewServer builds the monitoring HTTP server listening on port.
func NewServer(port int, handler http.Handler) *http.Server {
	readTimeout := 5
	writeTimeout := 10

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: time.Duration(readTimeout) * time.Second,
		ReadTimeout:       time.Duration(readTimeout) * time.Second,
		WriteTimeout:      time.Duration(writeTimeout) * time.Second,
	}
}
