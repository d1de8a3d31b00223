package video

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/kozaktomas/face-attendance/internal/attendance"
	"github.com/kozaktomas/face-attendance/internal/constants"
)

var (
	// gocv maps color.RGBA to OpenCV's BGR order, so this is blue.
	labelColor = color.RGBA{R: 0, G: 0, B: 255, A: 0}
	boxColor   = color.RGBA{R: 0, G: 204, B: 102, A: 0}
)

// Window shows annotated frames in a titled OpenCV window.
type Window struct {
	window *gocv.Window
}

// NewWindow opens a window titled title.
func NewWindow(title string) *Window {
	w := gocv.NewWindow(title)
	w.SetWindowProperty(gocv.WindowPropertyAspectRatio, gocv.WindowNormal)
	return &Window{window: w}
}

// Show draws the overlays on a copy of frame and renders it. Labels go to a
// fixed position, boxes around the face regions.
func (w *Window) Show(frame image.Image, overlays []attendance.Overlay) error {
	mat, err := gocv.ImageToMatRGB(frame)
	if err != nil {
		return fmt.Errorf("failed to convert frame: %w", err)
	}
	defer mat.Close()

	for _, o := range overlays {
		if !o.Region.Empty() {
			gocv.Rectangle(&mat, o.Region, boxColor, 2)
		}
		gocv.PutText(&mat, o.Label, image.Pt(constants.LabelX, constants.LabelY),
			gocv.FontHersheySimplex, constants.LabelFontScale, labelColor, constants.LabelThickness)
	}

	w.window.IMShow(mat)
	return nil
}

// WaitKey polls the window for a key press.
func (w *Window) WaitKey(delayMs int) int {
	return w.window.WaitKey(delayMs)
}

// Close destroys the window.
func (w *Window) Close() error {
	return w.window.Close()
}
