package deinterlace

import (
	"github.com/zsiec/deweave/internal/errors"
	"github.com/zsiec/deweave/internal/metrics"
)

// OutputGeometry is the negotiated output picture layout, decided once at
// filter startup. It determines what size buffers the sink must provide.
type OutputGeometry struct {
	Width  int
	Height int
	Format ChromaFormat
}

// halfHeight lists the modes that keep a single field's worth of rows.
// Blend and linear interpolate the missing rows and stay full height.
var halfHeight = map[Mode]bool{
	ModeDiscard: true,
	ModeBob:     true,
	ModeMean:    true,
}

// NegotiateOutput returns the output geometry for a source format and mode.
//
// 4:2:0 family sources keep their chroma; half height for discard/bob/mean,
// full height for blend/linear. 4:2:2 sources always produce full-height
// I420: the field-copy path doubles luma rows while chroma rows step by two,
// which lands the chroma at half vertical resolution. Any other format is
// declined with an unsupported-format error and no allocation.
func NegotiateOutput(format ChromaFormat, mode Mode, width, height int) (OutputGeometry, error) {
	switch {
	case format.is420():
		out := OutputGeometry{Width: width, Height: height, Format: format}
		if halfHeight[mode] {
			out.Height = height / 2
		}
		return out, nil

	case format == FormatI422:
		return OutputGeometry{Width: width, Height: height, Format: FormatI420}, nil

	default:
		metrics.IncrementUnsupportedFormat(format.String())
		return OutputGeometry{}, errors.NewUnsupportedFormatError(format.String())
	}
}

// stepPolicy describes how the field-copy renderer walks one plane.
type stepPolicy struct {
	srcStep   int  // source rows consumed per emitted group
	doubleRow bool // emit each selected source row twice (4:2:2 luma)
}

// fieldStep returns the row-stepping policy for a plane of the field-copy
// path, keyed by source format. 4:2:0 planes are uniform; a 4:2:2 source
// doubles luma rows and steps chroma by two so the I420 output fills exactly.
func fieldStep(format ChromaFormat, plane int) stepPolicy {
	if format == FormatI422 && plane == planeY {
		return stepPolicy{srcStep: 2, doubleRow: true}
	}
	return stepPolicy{srcStep: 2}
}
