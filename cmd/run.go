package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-attendance/internal/attendance"
	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/kozaktomas/face-attendance/internal/constants"
	"github.com/kozaktomas/face-attendance/internal/gallery"
	"github.com/kozaktomas/face-attendance/internal/video"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Watch the camera and log attendance",
	Long: `Enroll the reference faces, open the camera and mark everyone who shows up.
Each recognized person is written to <YYYY-MM-DD>.csv as name,date,time.
The file is recreated on every start.

Press q in the window or Ctrl+C to stop.

Examples:
  # Use faces/*.jpg and the default camera
  face-attendance run

  # Explicit gallery file, remote InsightFace server, no window
  face-attendance run --gallery class.yaml --encoder insightface --headless

  # Replay a recording and log every frame a person is seen in
  face-attendance run --camera lecture.mp4 --policy every-frame`,
	RunE: runAttendance,
}

func init() {
	rootCmd.AddCommand(runCmd)

	addGalleryFlags(runCmd)
	runCmd.Flags().String("camera", constants.DefaultCameraDevice, "Camera index or video file (env ATTENDANCE_CAMERA)")
	runCmd.Flags().Float64("scale", constants.DefaultScaleFactor, "Downscale factor applied before recognition (env ATTENDANCE_SCALE)")
	runCmd.Flags().Int("max-read-failures", constants.DefaultMaxReadFailures, "Consecutive failed frame reads before giving up (env ATTENDANCE_MAX_READ_FAILURES)")
	runCmd.Flags().Bool("headless", false, "Run without a display window (env ATTENDANCE_HEADLESS)")
	runCmd.Flags().String("output", ".", "Directory for the attendance CSV (env ATTENDANCE_OUTPUT_DIR)")
	runCmd.Flags().String("policy", "once", "When to write a row: once or every-frame (env ATTENDANCE_POLICY)")
}

func runAttendance(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	applyFlags(cmd, cfg)

	refs, err := gallery.ResolveReferences(cfg.Gallery.File, cfg.Gallery.FacesDir)
	if err != nil {
		return err
	}
	enrollOpts, err := enrollOptions(cfg)
	if err != nil {
		return err
	}
	enrollOpts.Progress = os.Stderr

	encoder, closeEncoder, err := newEncoder(cfg)
	if err != nil {
		return err
	}
	defer closeEncoder()

	opts := attendance.Options{
		Encoder:    encoder,
		References: refs,
		Enroll:     enrollOpts,
		OpenCamera: func() (attendance.CameraSource, error) {
			cam, err := video.OpenCamera(cfg.Camera.Device)
			if err != nil {
				return nil, err
			}
			return cam, nil
		},
		OutputDir:       cfg.Output.Dir,
		Policy:          attendance.Policy(cfg.Output.Policy),
		Scale:           cfg.Camera.Scale,
		MaxReadFailures: cfg.Camera.MaxReadFailures,
	}
	if !cfg.Camera.Headless {
		opts.OpenDisplay = func() (attendance.Display, error) {
			return video.NewWindow(constants.WindowTitle), nil
		}
	}

	fmt.Printf("Enrolling %d reference images with %s...\n", len(refs), cfg.Encoder.Backend)
	session, err := attendance.Open(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.Close()

	fmt.Printf("Watching camera %s, writing %s (press q to stop)\n", cfg.Camera.Device, session.LogPath())
	runErr := session.Run(ctx)

	roster := session.Roster()
	fmt.Printf("\nPresent: %s\n", listOrNone(roster.Present()))
	fmt.Printf("Absent:  %s\n", listOrNone(roster.Absent()))

	if err := session.Close(); err != nil && runErr == nil {
		return err
	}
	return runErr
}

func listOrNone(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}
