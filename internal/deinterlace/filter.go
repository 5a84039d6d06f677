package deinterlace

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/zsiec/deweave/internal/logger"
	"github.com/zsiec/deweave/internal/metrics"
)

// firstFieldDelay is the arbitrary presentation offset of the second field
// of the very first double-rate frame, before any input interval is known.
const firstFieldDelay = 20000 // 20ms in PTS units

// defaultAcquireBackoff is the sleep between output pool polls.
const defaultAcquireBackoff = 2 * time.Millisecond

// Config carries the filter's startup parameters.
type Config struct {
	// Mode is the configured algorithm name. Unrecognized values fall back
	// to discard with a warning.
	Mode string

	// Source geometry.
	Format ChromaFormat
	Width  int
	Height int

	// AcquireBackoff is the sleep between output pool polls. Zero selects
	// the default.
	AcquireBackoff time.Duration
}

// Filter converts interlaced pictures into progressive ones. Render must not
// be called concurrently: the filter assumes the host delivers at most one
// frame at a time, and the previous-timestamp state is unguarded on that
// basis.
type Filter struct {
	mode       Mode
	doubleRate bool
	out        OutputGeometry
	sink       OutputSink
	backoff    time.Duration

	// lastPTS is the timestamp of the previously rendered input frame, zero
	// until the first double-rate frame arrives. Used only to extrapolate
	// the second field's timestamp.
	lastPTS int64

	logger     logger.Logger
	starveWarn *rate.Limiter
}

// New validates the configuration, negotiates the output geometry and
// returns a ready filter. An unsupported source format is declined with an
// error; a bad mode string is downgraded to discard with a warning.
func New(cfg Config, sink OutputSink, log logger.Logger) (*Filter, error) {
	mode, ok := ParseMode(cfg.Mode)
	if !ok {
		if cfg.Mode == "" {
			log.Warn("No deinterlace mode provided, using discard")
		} else {
			log.WithField("mode", cfg.Mode).Warn("Unknown deinterlace mode, using discard")
		}
		metrics.IncrementConfigFallback()
	}

	out, err := NegotiateOutput(cfg.Format, mode, cfg.Width, cfg.Height)
	if err != nil {
		log.WithField("chroma", cfg.Format.String()).Warn("Declining to activate deinterlace filter")
		return nil, err
	}

	backoff := cfg.AcquireBackoff
	if backoff <= 0 {
		backoff = defaultAcquireBackoff
	}

	log.WithFields(map[string]interface{}{
		"mode":        mode.String(),
		"double_rate": mode.DoubleRate(),
		"out_width":   out.Width,
		"out_height":  out.Height,
		"out_chroma":  out.Format.String(),
	}).Info("Deinterlace filter configured")

	return &Filter{
		mode:       mode,
		doubleRate: mode.DoubleRate(),
		out:        out,
		sink:       sink,
		backoff:    backoff,
		logger:     log,
		starveWarn: rate.NewLimiter(rate.Every(time.Second), 1),
	}, nil
}

// Mode returns the selected algorithm.
func (f *Filter) Mode() Mode {
	return f.mode
}

// OutputGeometry returns the negotiated output picture layout.
func (f *Filter) OutputGeometry() OutputGeometry {
	return f.out
}

// Render converts one interlaced source picture into one or two progressive
// pictures and submits them to the sink in field order. A shutdown signal or
// context cancellation during buffer acquisition abandons the frame without
// output; that is the only abort condition and it is not an error.
func (f *Filter) Render(ctx context.Context, src *Picture) error {
	metrics.IncrementFramesReceived(f.mode.String())

	first, ok := f.acquire(ctx)
	if !ok {
		metrics.IncrementFramesCancelled(f.mode.String())
		return nil
	}
	f.sink.SetTimestamp(first, src.PTS)

	if !f.doubleRate {
		switch f.mode {
		case ModeDiscard:
			renderField(first, src, 0)
		case ModeMean:
			renderMean(first, src)
		case ModeBlend:
			renderBlend(first, src)
		}
		f.sink.SubmitPicture(first)
		metrics.IncrementPicturesEmitted(f.mode.String(), "frame")
		return nil
	}

	second, ok := f.acquire(ctx)
	if !ok {
		f.sink.ReleasePicture(first)
		metrics.IncrementFramesCancelled(f.mode.String())
		return nil
	}

	if f.lastPTS == 0 {
		// No interval known yet; 20ms is arbitrary but only affects the
		// first frame.
		f.sink.SetTimestamp(second, src.PTS+firstFieldDelay)
	} else {
		f.sink.SetTimestamp(second, (3*src.PTS-f.lastPTS)/2)
	}
	f.lastPTS = src.PTS

	switch f.mode {
	case ModeBob:
		renderField(first, src, 0)
		renderField(second, src, 1)
	case ModeLinear:
		renderLinear(first, src, 0)
		renderLinear(second, src, 1)
	}

	f.sink.SubmitPicture(first)
	metrics.IncrementPicturesEmitted(f.mode.String(), "top")
	f.sink.SubmitPicture(second)
	metrics.IncrementPicturesEmitted(f.mode.String(), "bottom")

	return nil
}

// acquire polls the sink for a free destination picture, sleeping between
// attempts. Shutdown and context cancellation are checked on every iteration.
func (f *Filter) acquire(ctx context.Context) (*Picture, bool) {
	start := time.Now()

	for {
		if pic, ok := f.sink.AcquirePicture(); ok {
			metrics.ObserveAcquireWait(f.mode.String(), time.Since(start).Seconds())
			return pic, true
		}

		metrics.IncrementPoolStarvation()
		if f.starveWarn.Allow() {
			f.logger.Debug("Waiting for a free output picture")
		}

		if f.sink.ShuttingDown() {
			return nil, false
		}

		select {
		case <-ctx.Done():
			return nil, false
		case <-time.After(f.backoff):
		}
	}
}

// Close releases the filter's hold on the sink. The filter owns no other
// resources.
func (f *Filter) Close() {
	f.sink = nil
	f.logger.Debug("Deinterlace filter closed")
}
