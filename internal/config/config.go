package config

import (
	_ "embed"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/kozaktomas/face-attendance/internal/constants"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type Config struct {
	Camera    CameraConfig
	Gallery   GalleryConfig
	Encoder   EncoderConfig
	Embedding EmbeddingConfig
	Output    OutputConfig
	Defaults  DefaultsConfig
}

type CameraConfig struct {
	Device          string  // device index ("0") or a video file / stream URL
	Scale           float64 // downscale factor applied before recognition
	MaxReadFailures int     // consecutive failed reads before the session stops
	Headless        bool    // run without a display window
}

type GalleryConfig struct {
	FacesDir string // directory of <name>.<ext> reference images
	File     string // optional YAML gallery file, takes precedence over FacesDir
}

type EncoderConfig struct {
	Backend   string  // "dlib" or "insightface"
	ModelsDir string  // dlib model directory
	Threshold float64 // overrides the backend default when > 0
}

type EmbeddingConfig struct {
	URL string // defaults to http://localhost:8000
}

type OutputConfig struct {
	Dir    string // directory the per-day CSV is written to
	Policy string // "once" or "every-frame"
}

type DefaultsConfig struct {
	Backends map[string]BackendDefaults `yaml:"backends"`
}

type BackendDefaults struct {
	Metric    string  `yaml:"metric"`
	Threshold float64 `yaml:"threshold"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable and parses it as a positive float.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return f
	}
	return defaultVal
}

func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func envBool(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}

func Load() *Config {
	var defaults DefaultsConfig
	if err := yaml.Unmarshal(defaultsYAML, &defaults); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded defaults.yaml: " + err.Error())
	}

	return &Config{
		Camera: CameraConfig{
			Device:          envString("ATTENDANCE_CAMERA", constants.DefaultCameraDevice),
			Scale:           envFloat("ATTENDANCE_SCALE", constants.DefaultScaleFactor),
			MaxReadFailures: envInt("ATTENDANCE_MAX_READ_FAILURES", constants.DefaultMaxReadFailures),
			Headless:        envBool("ATTENDANCE_HEADLESS"),
		},
		Gallery: GalleryConfig{
			FacesDir: envString("ATTENDANCE_FACES_DIR", constants.DefaultFacesDir),
			File:     os.Getenv("ATTENDANCE_GALLERY"),
		},
		Encoder: EncoderConfig{
			Backend:   envString("ATTENDANCE_ENCODER", "dlib"),
			ModelsDir: envString("DLIB_MODELS_DIR", constants.DefaultModelsDir),
			Threshold: envFloat("ATTENDANCE_THRESHOLD", 0),
		},
		Embedding: EmbeddingConfig{
			URL: os.Getenv("EMBEDDING_URL"),
		},
		Output: OutputConfig{
			Dir:    envString("ATTENDANCE_OUTPUT_DIR", "."),
			Policy: envString("ATTENDANCE_POLICY", "once"),
		},
		Defaults: defaults,
	}
}

// GetBackendDefaults returns the distance metric and threshold for an encoder backend.
// Backends missing from the defaults file fall back to Euclidean 0.6 for dlib
// and cosine distance with the default threshold otherwise.
func (c *Config) GetBackendDefaults(backend string) BackendDefaults {
	if d, ok := c.Defaults.Backends[backend]; ok {
		return d
	}
	if backend == "dlib" {
		return BackendDefaults{Metric: "euclidean", Threshold: constants.DefaultEuclideanThreshold}
	}
	return BackendDefaults{Metric: "cosine", Threshold: constants.DefaultDistanceThreshold}
}

// MatchThreshold returns the configured threshold, or the backend default when unset.
func (c *Config) MatchThreshold() float64 {
	if c.Encoder.Threshold > 0 {
		return c.Encoder.Threshold
	}
	return c.GetBackendDefaults(c.Encoder.Backend).Threshold
}
