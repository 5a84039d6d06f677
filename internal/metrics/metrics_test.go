package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Collector, labels ...string) float64 {
	t.Helper()

	var metric prometheus.Metric
	switch v := c.(type) {
	case *prometheus.CounterVec:
		m, err := v.GetMetricWithLabelValues(labels...)
		require.NoError(t, err)
		metric = m
	case prometheus.Counter:
		metric = v
	default:
		t.Fatalf("unexpected collector type %T", c)
	}

	var out dto.Metric
	require.NoError(t, metric.Write(&out))
	return out.GetCounter().GetValue()
}

func TestFrameCounters(t *testing.T) {
	before := counterValue(t, framesReceivedTotal, "bob")
	IncrementFramesReceived("bob")
	IncrementFramesReceived("bob")
	assert.Equal(t, before+2, counterValue(t, framesReceivedTotal, "bob"))

	beforeEmitted := counterValue(t, picturesEmittedTotal, "bob", "top")
	IncrementPicturesEmitted("bob", "top")
	assert.Equal(t, beforeEmitted+1, counterValue(t, picturesEmittedTotal, "bob", "top"))

	beforeCancelled := counterValue(t, framesCancelledTotal, "linear")
	IncrementFramesCancelled("linear")
	assert.Equal(t, beforeCancelled+1, counterValue(t, framesCancelledTotal, "linear"))
}

func TestPoolMetrics(t *testing.T) {
	before := counterValue(t, poolStarvationTotal)
	IncrementPoolStarvation()
	assert.Equal(t, before+1, counterValue(t, poolStarvationTotal))

	SetPoolPicturesFree(5)
	var out dto.Metric
	require.NoError(t, poolPicturesFree.Write(&out))
	assert.Equal(t, float64(5), out.GetGauge().GetValue())

	// Histogram observation should not panic and should count samples.
	ObserveAcquireWait("mean", 0.001)
}

func TestStartupMetrics(t *testing.T) {
	before := counterValue(t, unsupportedFormatTotal, "RV32")
	IncrementUnsupportedFormat("RV32")
	assert.Equal(t, before+1, counterValue(t, unsupportedFormatTotal, "RV32"))

	beforeFallback := counterValue(t, configFallbackTotal)
	IncrementConfigFallback()
	assert.Equal(t, beforeFallback+1, counterValue(t, configFallbackTotal))
}
