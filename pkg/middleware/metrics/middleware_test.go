package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(h http.Handler, method, path string) {
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(method, path, nil))
}

func TestCollectCountsAndNormalizes(t *testing.T) {
	SetPathNormalizer(func(r *http.Request) string {
		if strings.HasPrefix(r.URL.Path, "/things/") {
			return "/things/{id}"
		}
		return r.URL.Path
	})
	t.Cleanup(func() { SetPathNormalizer(func(r *http.Request) string { return r.URL.Path }) })

	h := Collect()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	byURI := totalHttpRequestsToUri.WithLabelValues("404", "/things/{id}", http.MethodDelete)
	byCode := totalHttpRequests.WithLabelValues("404", http.MethodDelete)
	beforeURI, beforeCode := testutil.ToFloat64(byURI), testutil.ToFloat64(byCode)

	serve(h, http.MethodDelete, "/things/1")
	serve(h, http.MethodDelete, "/things/2")

	assert.Equal(t, beforeURI+2, testutil.ToFloat64(byURI))
	assert.Equal(t, beforeCode+2, testutil.ToFloat64(byCode))
}

func TestCollectSkipsPaths(t *testing.T) {
	AddMetricsSkipPaths("/skipme", "/metrics", " ")
	h := Collect()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	c := totalHttpRequestsToUri.WithLabelValues("202", "/skipme", http.MethodGet)
	before := testutil.ToFloat64(c)
	serve(h, http.MethodGet, "/skipme")
	serve(h, http.MethodGet, "/metrics")

	assert.Equal(t, before, testutil.ToFloat64(c))
	assert.Equal(t, 0.0, testutil.ToFloat64(totalHttpRequestsToUri.WithLabelValues("202", "/metrics", http.MethodGet)))
}

func TestRegisterStoreGauge(t *testing.T) {
	n := 3
	require.NoError(t, RegisterStoreGauge(func() int { return n }))
	require.NoError(t, RegisterStoreGauge(func() int { return -1 }))

	mfs, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	var found bool
	for _, mf := range mfs {
		if mf.GetName() == "students_stored" {
			found = true
			assert.Equal(t, 3.0, mf.GetMetric()[0].GetGauge().GetValue())
		}
	}
	assert.True(t, found)
}
