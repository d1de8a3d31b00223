package cmd

import (
	"fmt"

	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/kozaktomas/face-attendance/internal/dlib"
	"github.com/kozaktomas/face-attendance/internal/gallery"
	"github.com/kozaktomas/face-attendance/internal/insightface"
)

// newEncoder builds the configured face encoder. The returned close
// function releases native resources and is never nil.
func newEncoder(cfg *config.Config) (gallery.Encoder, func() error, error) {
	switch cfg.Encoder.Backend {
	case "dlib":
		rec, err := dlib.NewRecognizer(cfg.Encoder.ModelsDir)
		if err != nil {
			return nil, nil, err
		}
		return rec, rec.Close, nil
	case "insightface":
		return insightface.NewClient(cfg.Embedding.URL), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown encoder backend %q (want dlib or insightface)", cfg.Encoder.Backend)
	}
}

// enrollOptions derives the gallery metric and threshold from the backend.
func enrollOptions(cfg *config.Config) (gallery.EnrollOptions, error) {
	metric, err := gallery.ParseMetric(cfg.GetBackendDefaults(cfg.Encoder.Backend).Metric)
	if err != nil {
		return gallery.EnrollOptions{}, err
	}
	return gallery.EnrollOptions{
		Metric:    metric,
		Threshold: cfg.MatchThreshold(),
	}, nil
}
