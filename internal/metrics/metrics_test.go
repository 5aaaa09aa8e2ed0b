package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/ruleforge/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := metrics.New()
	m.CacheMiss("rules", metrics.LevelTree)
	m.CacheHit("rules", metrics.LevelItem)
	m.CacheHit("rules", metrics.LevelItem)
	m.RemoteError("get")
	m.ObserveLoad("rules", 20*time.Millisecond)

	count, err := testutil.GatherAndCount(m.Registry(), "ruleforge_cache_lookups_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series per label set")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `ruleforge_cache_lookups_total{category="rules",level="item",result="hit"} 2`)
	assert.Contains(t, string(body), `ruleforge_remote_store_errors_total{op="get"} 1`)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.CacheHit("rules", metrics.LevelTree)
		m.CacheMiss("rules", metrics.LevelTree)
		m.RemoteError("put")
		m.ObserveLoad("rules", time.Second)
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 404, rec.Code)
}
