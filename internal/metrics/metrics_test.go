package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordsAndReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	m, err := New(reg)
	require.NoError(t, err)

	m.ObserveStore("list", 0.01, nil)
	m.ObserveStore("list", 0.02, errors.New("boom"))
	m.Resync(nil)
	m.FeedEvent("", "INSERT")
	m.SessionOpened()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeOps.WithLabelValues("list", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeOps.WithLabelValues("list", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.feedEvents.WithLabelValues("local", "INSERT")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.liveSessions))

	again, err := New(reg)
	require.NoError(t, err)
	again.SessionClosed()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.liveSessions), "second instance shares the registered gauge")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveStore("create", 0, nil)
	m.FeedEvent("redis", "DELETE")
	m.Resync(errors.New("x"))
	m.SessionOpened()
	m.SessionClosed()
}
