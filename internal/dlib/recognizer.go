// Package dlib computes face encodings with dlib's ResNet model via go-face.
// It needs the model files shape_predictor_5_face_landmarks.dat,
// dlib_face_recognition_resnet_model_v1.dat and mmod_human_face_detector.dat.
package dlib

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"log"

	"github.com/Kagami/go-face"

	"github.com/kozaktomas/face-attendance/internal/constants"
	"github.com/kozaktomas/face-attendance/internal/gallery"
)

// Recognizer wraps a go-face recognizer. It is not safe for concurrent use.
type Recognizer struct {
	rec *face.Recognizer
}

// NewRecognizer loads the dlib models from modelsDir.
func NewRecognizer(modelsDir string) (*Recognizer, error) {
	log.Printf("Loading dlib face models from %s", modelsDir)
	rec, err := face.NewRecognizer(modelsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load dlib models: %w", err)
	}
	return &Recognizer{rec: rec}, nil
}

// Recognize detects every face on img and returns its 128-dimensional
// descriptor. go-face decodes JPEG itself, so the image is encoded first.
func (r *Recognizer) Recognize(ctx context.Context, img image.Image) ([]gallery.Face, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: constants.JPEGQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	faces, err := r.rec.Recognize(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("dlib recognition failed: %w", err)
	}

	result := make([]gallery.Face, len(faces))
	for i, f := range faces {
		enc := make(gallery.Encoding, len(f.Descriptor))
		copy(enc, f.Descriptor[:])
		result[i] = gallery.Face{Region: f.Rectangle, Encoding: enc}
	}
	return result, nil
}

// Close frees the native recognizer.
func (r *Recognizer) Close() error {
	r.rec.Close()
	return nil
}
