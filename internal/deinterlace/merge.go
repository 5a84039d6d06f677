package deinterlace

// merge writes the byte-wise average of a and b into dst: each output byte is
// (a[i]+b[i])/2 with the samples widened to 16 bits before summing. The three
// slices must have equal length. The main loop is unrolled eight-wide; the
// tail is handled one byte at a time.
func merge(dst, a, b []byte) {
	n := len(dst)

	i := 0
	for ; i+8 <= n; i += 8 {
		dst[i] = byte((uint16(a[i]) + uint16(b[i])) >> 1)
		dst[i+1] = byte((uint16(a[i+1]) + uint16(b[i+1])) >> 1)
		dst[i+2] = byte((uint16(a[i+2]) + uint16(b[i+2])) >> 1)
		dst[i+3] = byte((uint16(a[i+3]) + uint16(b[i+3])) >> 1)
		dst[i+4] = byte((uint16(a[i+4]) + uint16(b[i+4])) >> 1)
		dst[i+5] = byte((uint16(a[i+5]) + uint16(b[i+5])) >> 1)
		dst[i+6] = byte((uint16(a[i+6]) + uint16(b[i+6])) >> 1)
		dst[i+7] = byte((uint16(a[i+7]) + uint16(b[i+7])) >> 1)
	}

	for ; i < n; i++ {
		dst[i] = byte((uint16(a[i]) + uint16(b[i])) >> 1)
	}
}
