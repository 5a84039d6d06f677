package deinterlace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// planePic builds a single-plane picture whose rows are each filled with one
// value, so row provenance is visible after a transform.
func planePic(format ChromaFormat, pitch int, rows []byte) *Picture {
	p := Plane{Data: make([]byte, pitch*len(rows)), Pitch: pitch, Lines: len(rows)}
	for y, v := range rows {
		row := p.Row(y)
		for x := range row {
			row[x] = v
		}
	}
	return &Picture{Format: format, Planes: []Plane{p}}
}

func blankPic(format ChromaFormat, pitch, lines int) *Picture {
	return &Picture{Format: format, Planes: []Plane{
		{Data: make([]byte, pitch*lines), Pitch: pitch, Lines: lines},
	}}
}

// rowValues returns the first byte of each destination row, asserting each
// row is uniform.
func rowValues(t *testing.T, p *Plane) []byte {
	t.Helper()

	vals := make([]byte, p.Lines)
	for y := 0; y < p.Lines; y++ {
		row := p.Row(y)
		for x := range row {
			require.Equal(t, row[0], row[x], "row %d not uniform at col %d", y, x)
		}
		vals[y] = row[0]
	}
	return vals
}

func TestRenderField_DiscardSelection(t *testing.T) {
	src := planePic(FormatI420, 8, []byte{10, 11, 12, 13, 14, 15})

	top := blankPic(FormatI420, 8, 3)
	renderField(top, src, 0)
	assert.Equal(t, []byte{10, 12, 14}, rowValues(t, &top.Planes[0]))

	bottom := blankPic(FormatI420, 8, 3)
	renderField(bottom, src, 1)
	assert.Equal(t, []byte{11, 13, 15}, rowValues(t, &bottom.Planes[0]))
}

func TestRenderField_I422LumaDoubling(t *testing.T) {
	src := &Picture{Format: FormatI422, Planes: []Plane{
		{Data: make([]byte, 8*4), Pitch: 8, Lines: 4},
		{Data: make([]byte, 4*4), Pitch: 4, Lines: 4},
		{Data: make([]byte, 4*4), Pitch: 4, Lines: 4},
	}}
	for pi, base := range []byte{10, 50, 90} {
		p := &src.Planes[pi]
		for y := 0; y < p.Lines; y++ {
			row := p.Row(y)
			for x := range row {
				row[x] = base + byte(y)
			}
		}
	}

	// Negotiated output for I422 is full-height I420.
	dst := NewPicture(FormatI420, 8, 4)
	renderField(dst, src, 0)

	assert.Equal(t, []byte{10, 10, 12, 12}, rowValues(t, &dst.Planes[0]), "luma rows doubled")
	assert.Equal(t, []byte{50, 52}, rowValues(t, &dst.Planes[1]), "chroma rows stepped by two")
	assert.Equal(t, []byte{90, 92}, rowValues(t, &dst.Planes[2]))

	dst2 := NewPicture(FormatI420, 8, 4)
	renderField(dst2, src, 1)
	assert.Equal(t, []byte{11, 11, 13, 13}, rowValues(t, &dst2.Planes[0]))
	assert.Equal(t, []byte{51, 53}, rowValues(t, &dst2.Planes[1]))
}

func TestRenderMean(t *testing.T) {
	src := planePic(FormatI420, 8, []byte{0, 2, 10, 20})

	dst := blankPic(FormatI420, 8, 2)
	renderMean(dst, src)

	assert.Equal(t, []byte{1, 15}, rowValues(t, &dst.Planes[0]))
}

func TestRenderBlend(t *testing.T) {
	src := planePic(FormatI420, 8, []byte{10, 20, 30, 40})

	dst := blankPic(FormatI420, 8, 4)
	renderBlend(dst, src)

	// Row 0 is a verbatim copy; every other row merges with its predecessor.
	assert.Equal(t, []byte{10, 15, 25, 35}, rowValues(t, &dst.Planes[0]))
}

func TestRenderLinear_TopField(t *testing.T) {
	src := planePic(FormatI420, 8, []byte{0, 1, 4, 9, 16, 25})

	dst := blankPic(FormatI420, 8, 6)
	renderLinear(dst, src, 0)

	// Field rows copied in place, merged rows between them, and the two
	// trailing source rows copied verbatim.
	assert.Equal(t, []byte{0, 2, 4, 10, 16, 25}, rowValues(t, &dst.Planes[0]))
}

func TestRenderLinear_BottomField(t *testing.T) {
	src := planePic(FormatI420, 8, []byte{0, 1, 4, 9, 16, 25})

	dst := blankPic(FormatI420, 8, 6)
	renderLinear(dst, src, 1)

	// The bottom field is re-anchored one row down by a leading copy of
	// source row 0 and has no trailing duplicate.
	assert.Equal(t, []byte{0, 1, 5, 9, 17, 25}, rowValues(t, &dst.Planes[0]))
}

func TestRender_TruncatesOnGeometryMismatch(t *testing.T) {
	src := planePic(FormatI420, 8, []byte{10, 11, 12, 13, 14, 15})

	// Destination shorter than the field: stops at the destination bound.
	short := blankPic(FormatI420, 8, 2)
	renderField(short, src, 0)
	assert.Equal(t, []byte{10, 12}, rowValues(t, &short.Planes[0]))

	// Destination longer than the field: extra rows stay untouched.
	long := blankPic(FormatI420, 8, 5)
	renderField(long, src, 0)
	assert.Equal(t, []byte{10, 12, 14, 0, 0}, rowValues(t, &long.Planes[0]))

	// Mean with too few source rows leaves the tail untouched.
	meanDst := blankPic(FormatI420, 8, 4)
	renderMean(meanDst, src)
	assert.Equal(t, []byte{10, 12, 14, 0}, rowValues(t, &meanDst.Planes[0]))
}

// i422Pic builds a three-plane 4:2:2 picture with uniform rows: full-height
// luma and full-height half-width chroma.
func i422Pic(pitch int, luma, chroma []byte) *Picture {
	pic := &Picture{Format: FormatI422, Planes: []Plane{
		{Data: make([]byte, pitch*len(luma)), Pitch: pitch, Lines: len(luma)},
		{Data: make([]byte, pitch/2*len(chroma)), Pitch: pitch / 2, Lines: len(chroma)},
		{Data: make([]byte, pitch/2*len(chroma)), Pitch: pitch / 2, Lines: len(chroma)},
	}}
	for pi := range pic.Planes {
		rows := luma
		if pi > 0 {
			rows = chroma
		}
		p := &pic.Planes[pi]
		for y, v := range rows {
			row := p.Row(y)
			for x := range row {
				row[x] = v
			}
		}
	}
	return pic
}

func TestRenderMean_I422LeavesLowerLumaUntouched(t *testing.T) {
	src := i422Pic(8, []byte{10, 20, 40, 80}, []byte{50, 60, 70, 90})

	dst := NewPicture(FormatI420, 8, 4)
	renderMean(dst, src)

	// The destination is full height but mean consumes source rows in pairs,
	// so only the top half of the luma plane is written and the rest stays
	// untouched. The half-height chroma planes are covered completely.
	assert.Equal(t, []byte{15, 60, 0, 0}, rowValues(t, &dst.Planes[0]))
	assert.Equal(t, []byte{55, 80}, rowValues(t, &dst.Planes[1]))
	assert.Equal(t, []byte{55, 80}, rowValues(t, &dst.Planes[2]))
}

func TestRenderBlend_I422(t *testing.T) {
	src := i422Pic(8, []byte{10, 20, 40, 80}, []byte{50, 60, 70, 90})

	dst := NewPicture(FormatI420, 8, 4)
	renderBlend(dst, src)

	// Luma is full height on both sides, so every destination row is written.
	// The half-height chroma planes stop after the top half of the source.
	assert.Equal(t, []byte{10, 15, 30, 60}, rowValues(t, &dst.Planes[0]))
	assert.Equal(t, []byte{50, 55}, rowValues(t, &dst.Planes[1]))
	assert.Equal(t, []byte{50, 55}, rowValues(t, &dst.Planes[2]))
}

func TestRenderLinear_I422(t *testing.T) {
	src := i422Pic(8, []byte{10, 20, 40, 80}, []byte{50, 60, 70, 90})

	// Field rows sit at every other source row, and each one yields two
	// destination rows, so the full-height luma plane is covered for both
	// fields. Chroma takes the top source rows verbatim.
	top := NewPicture(FormatI420, 8, 4)
	renderLinear(top, src, 0)
	assert.Equal(t, []byte{10, 25, 40, 80}, rowValues(t, &top.Planes[0]))
	assert.Equal(t, []byte{50, 60}, rowValues(t, &top.Planes[1]))

	bottom := NewPicture(FormatI420, 8, 4)
	renderLinear(bottom, src, 1)
	assert.Equal(t, []byte{10, 20, 50, 80}, rowValues(t, &bottom.Planes[0]))
	assert.Equal(t, []byte{50, 60}, rowValues(t, &bottom.Planes[1]))
}

func TestRender_NarrowerDestinationPitch(t *testing.T) {
	src := planePic(FormatI420, 8, []byte{10, 11, 12, 13})

	dst := blankPic(FormatI420, 4, 2)
	renderField(dst, src, 0)

	assert.Equal(t, []byte{10, 12}, rowValues(t, &dst.Planes[0]))
}
