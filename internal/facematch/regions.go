// Package facematch provides helpers shared by enrollment and the live
// recognition loop: name folding and face region geometry.
package facematch

import "image"

// ScaleRegion maps a region found on a downscaled frame back to the
// coordinates of the full-resolution frame. factor is the scale that was
// applied to the frame (0.25 means the frame was shrunk to a quarter).
func ScaleRegion(r image.Rectangle, factor float64) image.Rectangle {
	if factor <= 0 {
		return r
	}
	inv := 1 / factor
	return image.Rect(
		int(float64(r.Min.X)*inv),
		int(float64(r.Min.Y)*inv),
		int(float64(r.Max.X)*inv),
		int(float64(r.Max.Y)*inv),
	)
}

// ScaledSize returns the dimensions of a frame of size (w, h) after scaling
// by factor, never smaller than 1x1.
func ScaledSize(w, h int, factor float64) (int, int) {
	sw := int(float64(w) * factor)
	sh := int(float64(h) * factor)
	return max(sw, 1), max(sh, 1)
}
