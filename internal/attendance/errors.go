package attendance

import "fmt"

// CaptureError reports a camera that could not be opened or read.
type CaptureError struct {
	Op  string // "open", "first read" or "read"
	Err error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("camera %s failed: %v", e.Op, e.Err)
}

func (e *CaptureError) Unwrap() error {
	return e.Err
}
