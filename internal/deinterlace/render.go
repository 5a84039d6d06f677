package deinterlace

// Plane renderers. All loops are bounded by destination row count with a
// source-availability guard, so a pitch/lines mismatch between the two
// surfaces truncates the copy instead of overrunning either buffer.

// rowWidth returns the number of bytes transferred per row for a plane pair.
func rowWidth(dp, sp *Plane) int {
	if sp.Pitch < dp.Pitch {
		return sp.Pitch
	}
	return dp.Pitch
}

// renderField copies one field of src into dst: every other source row
// starting at field (0 = top, 1 = bottom) lands on consecutive destination
// rows. Discard runs this once with the top field; bob runs it for both
// fields. A 4:2:2 source additionally doubles each luma row per fieldStep.
func renderField(dst, src *Picture, field int) {
	for i := range src.Planes {
		sp := &src.Planes[i]
		dp := &dst.Planes[i]
		w := rowWidth(dp, sp)
		pol := fieldStep(src.Format, i)

		srcRow := field
		for dstRow := 0; dstRow < dp.Lines && srcRow < sp.Lines; {
			copy(dp.Row(dstRow)[:w], sp.Row(srcRow)[:w])
			dstRow++
			if pol.doubleRow && dstRow < dp.Lines {
				copy(dp.Row(dstRow)[:w], sp.Row(srcRow)[:w])
				dstRow++
			}
			srcRow += pol.srcStep
		}
	}
}

// renderMean merges each pair of source rows into one destination row,
// producing half-height output with both fields read together.
func renderMean(dst, src *Picture) {
	for i := range src.Planes {
		sp := &src.Planes[i]
		dp := &dst.Planes[i]
		w := rowWidth(dp, sp)

		for y := 0; y < dp.Lines && 2*y+1 < sp.Lines; y++ {
			merge(dp.Row(y)[:w], sp.Row(2*y)[:w], sp.Row(2*y+1)[:w])
		}
	}
}

// renderBlend copies the first source row verbatim, then merges every
// remaining row with its predecessor. Full-height output.
func renderBlend(dst, src *Picture) {
	for i := range src.Planes {
		sp := &src.Planes[i]
		dp := &dst.Planes[i]
		w := rowWidth(dp, sp)

		if dp.Lines == 0 || sp.Lines == 0 {
			continue
		}
		copy(dp.Row(0)[:w], sp.Row(0)[:w])

		for y := 1; y < dp.Lines && y < sp.Lines; y++ {
			merge(dp.Row(y)[:w], sp.Row(y-1)[:w], sp.Row(y)[:w])
		}
	}
}

// renderLinear produces a full-height picture from one field: field rows are
// copied in place and the rows between them are merged from the two field
// rows straddling them. The bottom field starts with an extra copy of source
// row 0 to anchor it one row down and ends on the frame's last row; the top
// field instead finishes with the two trailing source rows copied verbatim.
// The asymmetry is deliberate and downstream alignment depends on it.
func renderLinear(dst, src *Picture, field int) {
	for i := range src.Planes {
		sp := &src.Planes[i]
		dp := &dst.Planes[i]
		w := rowWidth(dp, sp)

		d, r := 0, 0
		if field == 1 && dp.Lines > 0 && sp.Lines > 0 {
			copy(dp.Row(0)[:w], sp.Row(0)[:w])
			d, r = 1, 1
		}

		for d < dp.Lines-2 && r+2 < sp.Lines {
			copy(dp.Row(d)[:w], sp.Row(r)[:w])
			d++
			merge(dp.Row(d)[:w], sp.Row(r)[:w], sp.Row(r+2)[:w])
			d++
			r += 2
		}

		if d < dp.Lines && r < sp.Lines {
			copy(dp.Row(d)[:w], sp.Row(r)[:w])
			d++
			r++
		}

		if field == 0 && d < dp.Lines && r < sp.Lines {
			copy(dp.Row(d)[:w], sp.Row(r)[:w])
		}
	}
}
