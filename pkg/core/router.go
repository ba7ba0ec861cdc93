// core/router.go
package core

import (
	"io"
	"net/http"
	"time"

	chimd "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/joeydtaylor/steeze-students/pkg/middleware/logger"
	hmetrics "github.com/joeydtaylor/steeze-students/pkg/middleware/metrics"
	httpx "github.com/joeydtaylor/steeze-students/pkg/transport/httpx"
)

type BuildDeps struct {
	Dispatcher     *Dispatcher
	LogMW          *logger.Middleware
	Metrics        http.Handler
	Router         httpx.Router
	RequestTimeout time.Duration
}

// BuildRouter mounts /ping and /metrics, then hands every other request,
// whatever its method, to the dispatcher.
func BuildRouter(d BuildDeps) http.Handler {
	r := d.Router
	r.Use(chimd.RequestID, chimd.Recoverer, chimd.Heartbeat("/ping"))
	if d.LogMW != nil {
		logger.AddBodyLogPaths(studentsCollection)
		r.Use(d.LogMW.Middleware())
	}
	r.Use(hmetrics.Collect())

	if d.Metrics != nil {
		hmetrics.AddMetricsSkipPaths("/metrics")
		r.Handle(http.MethodGet, "/metrics", d.Metrics)
	}

	h := withDeadline(d.Dispatcher, d.RequestTimeout)
	r.Any("/*", h)
	// chi only routes the standard methods; the rest reach the table here.
	r.MethodNotAllowed(h)
	return r.Mux()
}

// ServeHTTP reads the whole body as text and writes the dispatch result.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body []byte
	if r.Body != nil {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			d.log.Error("request body read failed", zap.String("path", r.URL.Path), zap.Error(err))
			writeText(w, err.Error(), http.StatusInternalServerError, "")
			return
		}
		body = b
	}
	out, status, ct := d.dispatch(r.Context(), Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Body:   string(body),
	})
	writeText(w, out, status, ct)
}

// MetricsPath collapses student ids so the uri label stays bounded.
func MetricsPath(r *http.Request) string {
	switch p := r.URL.Path; {
	case p == studentsCollection, p == "/metrics", p == "/ping":
		return p
	default:
		if _, ok := StudentIDFromPath(p); ok {
			return studentsCollection + "/{id}"
		}
		return "other"
	}
}
