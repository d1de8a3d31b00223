// Package video binds the attendance loop to OpenCV through gocv: a camera
// (or recorded video) as the frame source and a window as the display.
package video

import (
	"errors"
	"fmt"
	"image"
	"strconv"

	"gocv.io/x/gocv"

	"github.com/kozaktomas/face-attendance/internal/attendance"
)

// ErrNoFrame is returned when the device delivered no usable frame.
var ErrNoFrame = errors.New("camera returned no frame")

// Camera reads frames from a capture device or a video file.
type Camera struct {
	capture *gocv.VideoCapture
	mat     gocv.Mat
	device  string
	file    bool // source is a file or stream URL, not a device index
}

// OpenCamera opens device, which is either a device index ("0") or a
// path/URL understood by OpenCV.
func OpenCamera(device string) (*Camera, error) {
	var source interface{} = device
	file := true
	if n, err := strconv.Atoi(device); err == nil {
		source = n
		file = false
	}

	capture, err := gocv.OpenVideoCapture(source)
	if err != nil {
		return nil, fmt.Errorf("failed to open camera %s: %w", device, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("camera %s is not available", device)
	}

	return &Camera{
		capture: capture,
		mat:     gocv.NewMat(),
		device:  device,
		file:    file,
	}, nil
}

// Read blocks for the next frame and returns it as an RGBA image.
// A file source that reached its end reports attendance.ErrEndOfStream.
func (c *Camera) Read() (image.Image, error) {
	if ok := c.capture.Read(&c.mat); !ok {
		if c.file {
			return nil, attendance.ErrEndOfStream
		}
		return nil, ErrNoFrame
	}
	if c.mat.Empty() {
		return nil, ErrNoFrame
	}

	// ToImage converts OpenCV's BGR layout to RGBA.
	img, err := c.mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert frame: %w", err)
	}
	return img, nil
}

// Close releases the frame buffer and the device.
func (c *Camera) Close() error {
	c.mat.Close()
	return c.capture.Close()
}
