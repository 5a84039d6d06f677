package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Frame flow metrics
	framesReceivedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deinterlace_frames_received_total",
		Help: "Total interlaced frames received per mode",
	}, []string{"mode"})

	picturesEmittedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deinterlace_pictures_emitted_total",
		Help: "Total progressive pictures submitted to the sink",
	}, []string{"mode", "field"})

	framesCancelledTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deinterlace_frames_cancelled_total",
		Help: "Frames abandoned because shutdown was signalled during buffer acquisition",
	}, []string{"mode"})

	// Output pool metrics
	acquireWaitSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "deinterlace_acquire_wait_seconds",
		Help:    "Time spent waiting for a free output picture",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs to ~26s
	}, []string{"mode"})

	poolStarvationTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "deinterlace_pool_starvation_total",
		Help: "Acquisition attempts that found no free output picture",
	})

	poolPicturesFree = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "deinterlace_pool_pictures_free",
		Help: "Free pictures currently in the output pool",
	})

	// Startup metrics
	unsupportedFormatTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deinterlace_unsupported_format_total",
		Help: "Filter activations declined due to an unsupported pixel format",
	}, []string{"format"})

	configFallbackTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "deinterlace_config_fallback_total",
		Help: "Startups that fell back to the discard mode due to a bad mode string",
	})
)

// IncrementFramesReceived increments the received frame counter for a mode.
func IncrementFramesReceived(mode string) {
	framesReceivedTotal.WithLabelValues(mode).Inc()
}

// IncrementPicturesEmitted increments the emitted picture counter.
func IncrementPicturesEmitted(mode, field string) {
	picturesEmittedTotal.WithLabelValues(mode, field).Inc()
}

// IncrementFramesCancelled increments the cancelled frame counter for a mode.
func IncrementFramesCancelled(mode string) {
	framesCancelledTotal.WithLabelValues(mode).Inc()
}

// ObserveAcquireWait records how long an output picture acquisition took.
func ObserveAcquireWait(mode string, seconds float64) {
	acquireWaitSeconds.WithLabelValues(mode).Observe(seconds)
}

// IncrementPoolStarvation increments the pool starvation counter.
func IncrementPoolStarvation() {
	poolStarvationTotal.Inc()
}

// SetPoolPicturesFree sets the free-picture gauge.
func SetPoolPicturesFree(count int) {
	poolPicturesFree.Set(float64(count))
}

// IncrementUnsupportedFormat increments the unsupported format counter.
func IncrementUnsupportedFormat(format string) {
	unsupportedFormatTotal.WithLabelValues(format).Inc()
}

// IncrementConfigFallback increments the discard-fallback counter.
func IncrementConfigFallback() {
	configFallbackTotal.Inc()
}
