package deinterlace

// OutputSink is the display-side collaborator the filter hands progressive
// pictures to. The host owns the picture lifecycle; the filter only borrows
// destination buffers between AcquirePicture and SubmitPicture (or
// ReleasePicture when a frame is abandoned).
type OutputSink interface {
	// AcquirePicture makes a non-blocking attempt to get a free destination
	// buffer. The filter wraps it in its own retry/sleep loop.
	AcquirePicture() (*Picture, bool)

	// SetTimestamp assigns the presentation time of a picture.
	SetTimestamp(pic *Picture, pts int64)

	// SubmitPicture hands a filled picture to the display pipeline.
	// Fire-and-forget from the filter's perspective; submission order is
	// treated as presentation order downstream.
	SubmitPicture(pic *Picture)

	// ReleasePicture returns an acquired but unused picture to the pool.
	// Only called when a frame is cancelled mid-acquisition.
	ReleasePicture(pic *Picture)

	// ShuttingDown reports whether the host signalled shutdown. Polled on
	// every acquisition retry so teardown is never delayed indefinitely.
	ShuttingDown() bool
}
