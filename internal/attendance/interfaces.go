package attendance

import (
	"errors"
	"image"
)

// ErrEndOfStream is returned by a CameraSource that has no more frames,
// e.g. a recorded video that reached its end.
var ErrEndOfStream = errors.New("end of stream")

// CameraSource delivers frames from one capture device. Read blocks until
// a frame is available.
type CameraSource interface {
	Read() (image.Image, error)
	Close() error
}

// Overlay is one annotation drawn on a displayed frame.
type Overlay struct {
	Label  string          // drawn at a fixed position on the frame
	Region image.Rectangle // face region in full-frame coordinates
}

// Display renders annotated frames and reports key presses.
type Display interface {
	Show(frame image.Image, overlays []Overlay) error
	// WaitKey waits up to delayMs milliseconds for a key press and
	// returns its code, or -1 when no key was pressed.
	WaitKey(delayMs int) int
	Close() error
}

// HeadlessDisplay discards frames and never reports a key press.
type HeadlessDisplay struct {
	Frames int
}

func (d *HeadlessDisplay) Show(image.Image, []Overlay) error {
	d.Frames++
	return nil
}

func (d *HeadlessDisplay) WaitKey(int) int {
	return -1
}

func (d *HeadlessDisplay) Close() error {
	return nil
}
