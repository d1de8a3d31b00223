package attendance

import (
	"context"
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/kozaktomas/face-attendance/internal/facematch"
	"github.com/kozaktomas/face-attendance/internal/gallery"
)

// Recognition is the outcome for one face found on a frame.
type Recognition struct {
	Region   image.Rectangle // full-frame coordinates
	Encoding gallery.Encoding
	Match    gallery.Match
	Known    bool // the best match satisfies the gallery threshold
}

// ScaleFrame shrinks frame by factor. Factors outside (0, 1) return the
// frame unchanged.
func ScaleFrame(frame image.Image, factor float64) image.Image {
	if !shrinks(factor) {
		return frame
	}
	b := frame.Bounds()
	w, h := facematch.ScaledSize(b.Dx(), b.Dy(), factor)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), frame, b, draw.Src, nil)
	return dst
}

// Recognize downscales frame, asks the encoder for faces, and matches each
// face against the gallery. Unknown faces are returned with Known unset.
func Recognize(ctx context.Context, enc gallery.Encoder, g *gallery.Gallery, frame image.Image, factor float64) ([]Recognition, error) {
	small := ScaleFrame(frame, factor)
	faces, err := enc.Recognize(ctx, small)
	if err != nil {
		return nil, fmt.Errorf("face recognition failed: %w", err)
	}

	scale := 1.0
	if shrinks(factor) {
		scale = factor
	}

	recs := make([]Recognition, len(faces))
	for i, f := range faces {
		m, ok := g.Match(f.Encoding)
		recs[i] = Recognition{
			Region:   facematch.ScaleRegion(f.Region, scale),
			Encoding: f.Encoding,
			Match:    m,
			Known:    ok,
		}
	}
	return recs, nil
}

func shrinks(factor float64) bool {
	return factor > 0 && factor < 1
}
