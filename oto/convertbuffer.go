package oto

import "math"

// FloatBufferTo16BitLE converts a buffer of float32 samples to 16-bit
// little-endian bytes, clamping samples outside [-1, 1]. The converted
// bytes are appended to dst, which may be nil; the grown slice is
// returned, so callers can reuse its capacity across calls.
func FloatBufferTo16BitLE(buff []float32, dst []byte) []byte {
	for _, v := range buff {
		var uv int16
		if v < -1.0 {
			uv = -math.MaxInt16
		} else if v > 1.0 {
			uv = math.MaxInt16
		} else {
			uv = int16(v * math.MaxInt16)
		}
		dst = append(dst, byte(uv), byte(uv>>8))
	}
	return dst
}
