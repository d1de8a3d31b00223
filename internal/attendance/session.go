// Package attendance runs the capture → recognize → log → display loop
// and owns every resource the loop needs.
package attendance

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kozaktomas/face-attendance/internal/constants"
	"github.com/kozaktomas/face-attendance/internal/gallery"
)

// State is the lifecycle state of a session.
type State int

const (
	StateInit State = iota
	StateRunning
	StateShutdown
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateRunning:
		return "running"
	case StateShutdown:
		return "shutdown"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Options configures Open.
type Options struct {
	Encoder    gallery.Encoder
	References []gallery.Reference
	Enroll     gallery.EnrollOptions

	OpenCamera  func() (CameraSource, error)
	OpenDisplay func() (Display, error) // nil runs headless

	OutputDir       string
	Policy          Policy
	Scale           float64
	MaxReadFailures int
	Now             func() time.Time
}

// StepResult summarises one loop iteration.
type StepResult struct {
	Skipped bool // no frame was available this cycle
	Faces   int
	Known   []gallery.Match
	Logged  []Record
	Quit    bool // the quit key was pressed
}

// Session owns the gallery, camera, attendance log, display and roster for
// one run. It is used from a single goroutine.
type Session struct {
	id      string
	gallery *gallery.Gallery
	encoder gallery.Encoder
	camera  CameraSource
	display Display
	log     *Log
	roster  *Roster

	policy      Policy
	scale       float64
	maxFailures int
	now         func() time.Time

	state    State
	first    image.Image // frame read while opening, processed by the first Step
	failures int
	frames   int
	closed   bool
}

// Open enrolls the gallery, acquires the camera, reads the first frame and
// creates the attendance file, in that order. If any step fails, the
// resources acquired so far are released and nothing later is touched:
// an enrollment failure never opens the camera or creates the file.
func Open(ctx context.Context, opts Options) (*Session, error) {
	if opts.Encoder == nil {
		return nil, errors.New("no face encoder configured")
	}
	if opts.OpenCamera == nil {
		return nil, errors.New("no camera configured")
	}
	policy, err := ParsePolicy(string(opts.Policy))
	if err != nil {
		return nil, err
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.MaxReadFailures <= 0 {
		opts.MaxReadFailures = constants.DefaultMaxReadFailures
	}

	g, err := gallery.Enroll(ctx, opts.Encoder, opts.References, opts.Enroll)
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:          uuid.NewString(),
		gallery:     g,
		encoder:     opts.Encoder,
		roster:      NewRoster(g.Names()),
		policy:      policy,
		scale:       opts.Scale,
		maxFailures: opts.MaxReadFailures,
		now:         opts.Now,
	}

	cam, err := opts.OpenCamera()
	if err != nil {
		return nil, &CaptureError{Op: "open", Err: err}
	}
	s.camera = cam

	first, err := cam.Read()
	if err != nil {
		s.release()
		return nil, &CaptureError{Op: "first read", Err: err}
	}
	s.first = first

	l, err := OpenLog(opts.OutputDir, s.now())
	if err != nil {
		s.release()
		return nil, err
	}
	s.log = l

	if opts.OpenDisplay != nil {
		d, err := opts.OpenDisplay()
		if err != nil {
			s.release()
			return nil, fmt.Errorf("failed to open display: %w", err)
		}
		s.display = d
	} else {
		s.display = &HeadlessDisplay{}
	}

	log.Printf("Session %s: %d known faces, logging %s to %s", s.id, g.Len(), s.policy, l.Path())
	return s, nil
}

// ID returns the unique identifier of this run.
func (s *Session) ID() string {
	return s.id
}

// State returns the lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Gallery returns the enrolled gallery.
func (s *Session) Gallery() *gallery.Gallery {
	return s.gallery
}

// Roster returns the pending roster.
func (s *Session) Roster() *Roster {
	return s.roster
}

// LogPath returns the attendance file path.
func (s *Session) LogPath() string {
	return s.log.Path()
}

// Run loops until the quit key is pressed, ctx is cancelled, the camera
// runs out of frames, or reads keep failing. Only the last case is an error.
// The session is in StateShutdown once Run returns.
func (s *Session) Run(ctx context.Context) error {
	s.state = StateRunning
	defer func() { s.state = StateShutdown }()
	for {
		if ctx.Err() != nil {
			log.Printf("Session %s: interrupted", s.id)
			return nil
		}

		res, err := s.Step(ctx)
		if errors.Is(err, ErrEndOfStream) {
			log.Printf("Session %s: end of stream", s.id)
			return nil
		}
		if err != nil {
			return err
		}
		if res.Quit {
			return nil
		}
	}
}

// Step runs one capture → recognize → log → display cycle.
func (s *Session) Step(ctx context.Context) (StepResult, error) {
	var res StepResult

	frame, err := s.nextFrame()
	if err != nil {
		if errors.Is(err, ErrEndOfStream) {
			return res, err
		}
		s.failures++
		if s.failures >= s.maxFailures {
			return res, &CaptureError{Op: "read", Err: fmt.Errorf("%d consecutive failures: %w", s.failures, err)}
		}
		log.Printf("Session %s: skipping frame: %v", s.id, err)
		res.Skipped = true
		return res, nil
	}
	s.failures = 0
	s.frames++

	var overlays []Overlay
	recs, err := Recognize(ctx, s.encoder, s.gallery, frame, s.scale)
	if err != nil {
		log.Printf("Session %s: frame %d: %v", s.id, s.frames, err)
	}
	res.Faces = len(recs)
	for _, r := range recs {
		if !r.Known {
			continue
		}
		res.Known = append(res.Known, r.Match)
		overlays = append(overlays, Overlay{Label: r.Match.Name + " Present", Region: r.Region})

		rec, logged, err := s.mark(r.Match.Name)
		if err != nil {
			log.Printf("Session %s: %v", s.id, err)
			continue
		}
		if logged {
			res.Logged = append(res.Logged, rec)
		}
	}

	if err := s.display.Show(frame, overlays); err != nil {
		log.Printf("Session %s: display: %v", s.id, err)
	}
	res.Quit = s.display.WaitKey(constants.WaitKeyDelayMs)&0xFF == constants.QuitKey
	return res, nil
}

func (s *Session) nextFrame() (image.Image, error) {
	if s.first != nil {
		f := s.first
		s.first = nil
		return f, nil
	}
	return s.camera.Read()
}

// mark applies the logging policy to an accepted match. A person leaves the
// pending roster only once their row is on disk.
func (s *Session) mark(name string) (Record, bool, error) {
	if s.policy == PolicyOnce && !s.roster.IsPending(name) {
		return Record{}, false, nil
	}

	rec := NewRecord(name, s.now())
	if err := s.log.Append(rec); err != nil {
		return Record{}, false, err
	}
	if s.roster.MarkPresent(name) {
		log.Printf("Session %s: %s present at %s", s.id, name, rec.Time)
	}
	return rec, true, nil
}

// Close releases the camera, display and attendance file. It is safe to
// call more than once.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	err := s.release()
	log.Printf("Session %s: %d frames, present: [%s], absent: [%s]",
		s.id, s.frames,
		strings.Join(s.roster.Present(), ", "),
		strings.Join(s.roster.Absent(), ", "))
	return err
}

func (s *Session) release() error {
	s.closed = true
	s.state = StateShutdown

	var errs []error
	if s.display != nil {
		if err := s.display.Close(); err != nil {
			errs = append(errs, fmt.Errorf("display: %w", err))
		}
	}
	if s.camera != nil {
		if err := s.camera.Close(); err != nil {
			errs = append(errs, fmt.Errorf("camera: %w", err))
		}
	}
	if s.log != nil {
		if err := s.log.Close(); err != nil {
			errs = append(errs, fmt.Errorf("attendance file: %w", err))
		}
	}
	return errors.Join(errs...)
}
