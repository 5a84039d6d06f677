package deinterlace

import (
	"sync/atomic"

	"github.com/zsiec/deweave/internal/logger"
	"github.com/zsiec/deweave/internal/metrics"
)

// PicturePool is a fixed-size OutputSink backed by pre-allocated pictures of
// one geometry. Acquired pictures flow back either through SubmitPicture
// (delivered on the Output channel for the display side to drain and
// Recycle) or through ReleasePicture.
type PicturePool struct {
	geo  OutputGeometry
	free chan *Picture
	out  chan *Picture

	shutdown atomic.Bool
	logger   logger.Logger
}

// NewPicturePool pre-allocates size pictures of the given geometry.
func NewPicturePool(geo OutputGeometry, size int, log logger.Logger) *PicturePool {
	p := &PicturePool{
		geo:    geo,
		free:   make(chan *Picture, size),
		out:    make(chan *Picture, size),
		logger: log,
	}

	for i := 0; i < size; i++ {
		p.free <- NewPicture(geo.Format, geo.Width, geo.Height)
	}
	metrics.SetPoolPicturesFree(size)

	log.WithFields(map[string]interface{}{
		"pool_size": size,
		"width":     geo.Width,
		"height":    geo.Height,
		"chroma":    geo.Format.String(),
	}).Debug("Picture pool allocated")

	return p
}

// AcquirePicture implements OutputSink. Non-blocking.
func (p *PicturePool) AcquirePicture() (*Picture, bool) {
	select {
	case pic := <-p.free:
		metrics.SetPoolPicturesFree(len(p.free))
		return pic, true
	default:
		return nil, false
	}
}

// SetTimestamp implements OutputSink.
func (p *PicturePool) SetTimestamp(pic *Picture, pts int64) {
	pic.PTS = pts
}

// SubmitPicture implements OutputSink. The out channel holds at most every
// pooled picture, so delivery never blocks.
func (p *PicturePool) SubmitPicture(pic *Picture) {
	p.out <- pic
}

// ReleasePicture implements OutputSink.
func (p *PicturePool) ReleasePicture(pic *Picture) {
	p.free <- pic
	metrics.SetPoolPicturesFree(len(p.free))
	p.logger.Debug("Unused picture returned to pool")
}

// ShuttingDown implements OutputSink.
func (p *PicturePool) ShuttingDown() bool {
	return p.shutdown.Load()
}

// Shutdown flips the shutdown flag. In-progress acquisitions observe it on
// their next poll.
func (p *PicturePool) Shutdown() {
	p.shutdown.Store(true)
}

// Output returns the channel submitted pictures are delivered on.
func (p *PicturePool) Output() <-chan *Picture {
	return p.out
}

// Recycle returns a displayed picture to the free list.
func (p *PicturePool) Recycle(pic *Picture) {
	p.free <- pic
	metrics.SetPoolPicturesFree(len(p.free))
}

// FreeCount returns the number of free pictures.
func (p *PicturePool) FreeCount() int {
	return len(p.free)
}

// Geometry returns the pool's picture geometry.
func (p *PicturePool) Geometry() OutputGeometry {
	return p.geo
}
