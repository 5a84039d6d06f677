package deinterlace

import (
	"fmt"
)

// ChromaFormat identifies the pixel sampling layout of a picture.
type ChromaFormat int

const (
	FormatUnknown ChromaFormat = iota
	FormatI420
	FormatIYUV // Same layout as I420
	FormatYV12 // I420 with the chroma planes swapped
	FormatI422
)

// String returns the fourcc-style name of the format.
func (f ChromaFormat) String() string {
	switch f {
	case FormatI420:
		return "I420"
	case FormatIYUV:
		return "IYUV"
	case FormatYV12:
		return "YV12"
	case FormatI422:
		return "I422"
	default:
		return "unknown"
	}
}

// ParseChromaFormat maps a format name to a ChromaFormat.
func ParseChromaFormat(s string) (ChromaFormat, error) {
	switch s {
	case "I420":
		return FormatI420, nil
	case "IYUV":
		return FormatIYUV, nil
	case "YV12":
		return FormatYV12, nil
	case "I422":
		return FormatI422, nil
	default:
		return FormatUnknown, fmt.Errorf("unknown chroma format: %q", s)
	}
}

// is420 reports whether the format belongs to the planar 4:2:0 family.
func (f ChromaFormat) is420() bool {
	return f == FormatI420 || f == FormatIYUV || f == FormatYV12
}

// Plane index of the luma component. The filter treats chroma planes
// byte-identically regardless of U/V order, so YV12's swap is irrelevant here.
const planeY = 0

// Plane is one color component buffer within a Picture.
//
// Pitch is the byte stride between consecutive rows and may exceed the
// visible row width. Lines is the number of visible rows. The host must
// guarantee Pitch*Lines <= len(Data); row accessors stay inside that bound.
type Plane struct {
	Data  []byte
	Pitch int
	Lines int
}

// Row returns the byte slice for row i.
func (p *Plane) Row(i int) []byte {
	off := i * p.Pitch
	return p.Data[off : off+p.Pitch]
}

// Picture is a decoded or to-be-displayed frame. The filter borrows pictures
// from the host for the duration of one render call and never retains them.
type Picture struct {
	Format ChromaFormat
	PTS    int64 // Presentation timestamp in microseconds
	Planes []Plane
}

// NewPicture allocates a picture with tightly packed planes for the given
// geometry (pitch equals the visible row width).
func NewPicture(format ChromaFormat, width, height int) *Picture {
	chromaLines := height
	if format.is420() {
		chromaLines = height / 2
	}

	planes := []Plane{
		{Data: make([]byte, width*height), Pitch: width, Lines: height},
		{Data: make([]byte, width/2*chromaLines), Pitch: width / 2, Lines: chromaLines},
		{Data: make([]byte, width/2*chromaLines), Pitch: width / 2, Lines: chromaLines},
	}

	return &Picture{Format: format, Planes: planes}
}
