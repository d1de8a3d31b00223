package gallery

import (
	"errors"
	"fmt"
)

// Gallery construction errors.
var (
	ErrEmptyGallery       = errors.New("gallery has no entries")
	ErrMismatchedGallery  = errors.New("gallery names and encodings differ in length")
	ErrDuplicateName      = errors.New("duplicate gallery name")
	ErrEmptyName          = errors.New("gallery name is empty")
	ErrDimensionMismatch  = errors.New("gallery encodings differ in dimension")
	ErrInvalidThreshold   = errors.New("match threshold must be positive")
	ErrNoFace             = errors.New("no face detected")
	ErrAmbiguousFace      = errors.New("more than one face detected")
	ErrUnsupportedImage   = errors.New("unsupported reference image")
	ErrNoReferenceEntries = errors.New("no reference images found")
)

// EnrollmentError reports a reference image that could not produce exactly
// one face encoding. It names both the person and the offending file.
type EnrollmentError struct {
	Name  string
	Path  string
	Faces int // faces found in the image, -1 when the image was never analysed
	Err   error
}

func (e *EnrollmentError) Error() string {
	if e.Faces >= 0 {
		return fmt.Sprintf("enrollment of %q from %s failed (%d faces): %v", e.Name, e.Path, e.Faces, e.Err)
	}
	return fmt.Sprintf("enrollment of %q from %s failed: %v", e.Name, e.Path, e.Err)
}

func (e *EnrollmentError) Unwrap() error {
	return e.Err
}
