package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-attendance/internal/config"
)

// mustGetBool gets a bool flag value or panics if the flag doesn't exist.
// This is appropriate for flags defined in init() - errors indicate programming bugs.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic(fmt.Sprintf("flag error for --%s: %v", name, err))
	}
	return val
}

// mustGetInt gets an int flag value or panics if the flag doesn't exist.
func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic(fmt.Sprintf("flag error for --%s: %v", name, err))
	}
	return val
}

// mustGetString gets a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("flag error for --%s: %v", name, err))
	}
	return val
}

// mustGetFloat64 gets a float64 flag value or panics if the flag doesn't exist.
func mustGetFloat64(cmd *cobra.Command, name string) float64 {
	val, err := cmd.Flags().GetFloat64(name)
	if err != nil {
		panic(fmt.Sprintf("flag error for --%s: %v", name, err))
	}
	return val
}

// addGalleryFlags registers the flags shared by every command that enrolls faces.
func addGalleryFlags(cmd *cobra.Command) {
	cmd.Flags().String("faces", "", "Directory of <name>.jpg reference images (env ATTENDANCE_FACES_DIR)")
	cmd.Flags().String("gallery", "", "YAML gallery file listing name/image pairs (env ATTENDANCE_GALLERY)")
	cmd.Flags().String("encoder", "", "Face encoder backend: dlib or insightface (env ATTENDANCE_ENCODER)")
	cmd.Flags().String("models", "", "Directory with the dlib model files (env DLIB_MODELS_DIR)")
	cmd.Flags().String("embedding-url", "", "InsightFace embedding server URL (env EMBEDDING_URL)")
	cmd.Flags().Float64("threshold", 0, "Maximum match distance, 0 = backend default (env ATTENDANCE_THRESHOLD)")
}

// applyFlags overrides the environment configuration with flags the user set explicitly.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	set := func(name string) bool {
		return cmd.Flags().Lookup(name) != nil && cmd.Flags().Changed(name)
	}

	if set("faces") {
		cfg.Gallery.FacesDir = mustGetString(cmd, "faces")
	}
	if set("gallery") {
		cfg.Gallery.File = mustGetString(cmd, "gallery")
	}
	if set("encoder") {
		cfg.Encoder.Backend = mustGetString(cmd, "encoder")
	}
	if set("models") {
		cfg.Encoder.ModelsDir = mustGetString(cmd, "models")
	}
	if set("embedding-url") {
		cfg.Embedding.URL = mustGetString(cmd, "embedding-url")
	}
	if set("threshold") {
		cfg.Encoder.Threshold = mustGetFloat64(cmd, "threshold")
	}
	if set("camera") {
		cfg.Camera.Device = mustGetString(cmd, "camera")
	}
	if set("scale") {
		cfg.Camera.Scale = mustGetFloat64(cmd, "scale")
	}
	if set("max-read-failures") {
		cfg.Camera.MaxReadFailures = mustGetInt(cmd, "max-read-failures")
	}
	if set("headless") {
		cfg.Camera.Headless = mustGetBool(cmd, "headless")
	}
	if set("output") {
		cfg.Output.Dir = mustGetString(cmd, "output")
	}
	if set("policy") {
		cfg.Output.Policy = mustGetString(cmd, "policy")
	}
}
