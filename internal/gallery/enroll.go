package gallery

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"

	"github.com/schollz/progressbar/v3"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// EnrollOptions configures Enroll.
type EnrollOptions struct {
	Metric    Metric
	Threshold float64
	Progress  io.Writer // progress bar output, nil disables the bar
}

// Enroll extracts exactly one encoding from every reference image and
// builds a gallery from them. The first failing reference aborts
// enrollment with an *EnrollmentError naming the person and file.
func Enroll(ctx context.Context, enc Encoder, refs []Reference, opts EnrollOptions) (*Gallery, error) {
	if len(refs) == 0 {
		return nil, ErrNoReferenceEntries
	}

	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}
	bar := progressbar.NewOptions(len(refs),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("Enrolling faces"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("faces"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionFullWidth(),
	)
	defer bar.Finish()

	names := make([]string, 0, len(refs))
	encodings := make([]Encoding, 0, len(refs))
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		e, err := EnrollOne(ctx, enc, ref)
		if err != nil {
			return nil, err
		}
		names = append(names, ref.Name)
		encodings = append(encodings, e)
		bar.Add(1)
	}

	g, err := New(names, encodings, opts.Metric, opts.Threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to build gallery: %w", err)
	}
	log.Printf("Enrolled %d faces (%s distance, threshold %.2f)", g.Len(), g.Metric(), g.Threshold())
	return g, nil
}

// EnrollOne loads a single reference image and returns its only face encoding.
func EnrollOne(ctx context.Context, enc Encoder, ref Reference) (Encoding, error) {
	fail := func(faces int, err error) (Encoding, error) {
		return nil, &EnrollmentError{Name: ref.Name, Path: ref.Image, Faces: faces, Err: err}
	}

	data, err := os.ReadFile(ref.Image)
	if err != nil {
		return fail(-1, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fail(-1, fmt.Errorf("%w: %v", ErrUnsupportedImage, err))
	}

	faces, err := enc.Recognize(ctx, img)
	if err != nil {
		return fail(-1, err)
	}
	switch len(faces) {
	case 0:
		return fail(0, ErrNoFace)
	case 1:
		return faces[0].Encoding, nil
	default:
		return fail(len(faces), ErrAmbiguousFace)
	}
}
