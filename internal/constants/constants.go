// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

// Capture constants
const (
	// DefaultCameraDevice is the system camera index opened when nothing else is configured
	DefaultCameraDevice = "0"

	// DefaultScaleFactor is the factor frames are downscaled by before recognition
	DefaultScaleFactor = 0.25

	// DefaultMaxReadFailures is the number of consecutive failed frame reads
	// after which a running session gives up
	DefaultMaxReadFailures = 30
)

// Face matching constants
const (
	// DefaultEuclideanThreshold is the maximum Euclidean distance for dlib descriptors
	// Same tolerance face_recognition uses for compare_faces
	DefaultEuclideanThreshold = 0.6

	// DefaultDistanceThreshold is the default maximum cosine distance for face matching
	// Lower values = stricter matching
	DefaultDistanceThreshold = 0.5

	// SelfMatchEpsilon is the largest distance still considered "identical" when an
	// encoding is compared with itself
	SelfMatchEpsilon = 1e-6
)

// Display constants
const (
	// WindowTitle is the title of the live feed window
	WindowTitle = "Attendance"

	// QuitKey is the key that ends the session when pressed in the window
	QuitKey = 'q'

	// WaitKeyDelayMs is how long the window waits for a key each cycle
	WaitKeyDelayMs = 1

	// LabelX and LabelY are the fixed position of the "<name> Present" label
	LabelX = 10
	LabelY = 100

	// LabelFontScale and LabelThickness style the label text
	LabelFontScale = 1.5
	LabelThickness = 3
)

// File constants
const (
	// DefaultFacesDir is the directory scanned for reference images
	DefaultFacesDir = "faces"

	// DefaultModelsDir holds the dlib model files
	DefaultModelsDir = "models"

	// CSVDateLayout names the per-day attendance file and fills the date column
	CSVDateLayout = "2006-01-02"

	// CSVTimeLayout fills the time-of-day column
	CSVTimeLayout = "15:04:05"

	// JPEGQuality is used when frames are encoded for a face encoder
	JPEGQuality = 90
)
