// Package gallery holds the enrolled known faces and the match predicate
// live encodings are compared with.
package gallery

import (
	"context"
	"fmt"
	"image"
	"math"

	"github.com/kozaktomas/face-attendance/internal/constants"
	"github.com/kozaktomas/face-attendance/internal/facematch"
)

// Encoding is a fixed-length face feature vector produced by a face encoder.
type Encoding []float32

// Face is one detected face: its region on the analysed image and its encoding.
type Face struct {
	Region   image.Rectangle
	Encoding Encoding
}

// Encoder detects faces on an image and computes one encoding per face.
// Regions and encodings are returned together so they stay paired.
type Encoder interface {
	Recognize(ctx context.Context, img image.Image) ([]Face, error)
}

// KnownFace is an enrolled identity.
type KnownFace struct {
	Name     string
	Encoding Encoding
}

// Match is the best gallery entry for a probe encoding.
type Match struct {
	Index    int
	Name     string
	Distance float64
}

// Gallery is an immutable, ordered set of known faces together with the
// metric and threshold that decide whether a probe matches an entry.
type Gallery struct {
	faces     []KnownFace
	metric    Metric
	threshold float64
}

// New builds a gallery from strictly paired names and encodings.
// Lengths must agree, names must be non-empty and unique (after folding
// case and diacritics), and all encodings must share one dimension.
func New(names []string, encodings []Encoding, metric Metric, threshold float64) (*Gallery, error) {
	if len(names) != len(encodings) {
		return nil, fmt.Errorf("%w: %d names, %d encodings", ErrMismatchedGallery, len(names), len(encodings))
	}
	if len(names) == 0 {
		return nil, ErrEmptyGallery
	}
	if _, err := ParseMetric(string(metric)); err != nil {
		return nil, err
	}
	if threshold <= 0 {
		return nil, ErrInvalidThreshold
	}

	seen := make(map[string]string, len(names))
	dim := len(encodings[0])
	faces := make([]KnownFace, len(names))
	for i, name := range names {
		key := facematch.NameKey(name)
		if key == "" {
			return nil, fmt.Errorf("%w: entry %d", ErrEmptyName, i)
		}
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: %q and %q", ErrDuplicateName, prev, name)
		}
		seen[key] = name

		if len(encodings[i]) == 0 || len(encodings[i]) != dim {
			return nil, fmt.Errorf("%w: %q has %d values, expected %d", ErrDimensionMismatch, name, len(encodings[i]), dim)
		}

		// Copy so later mutation by the caller cannot reach the gallery.
		enc := make(Encoding, dim)
		copy(enc, encodings[i])
		faces[i] = KnownFace{Name: name, Encoding: enc}
	}

	return &Gallery{faces: faces, metric: metric, threshold: threshold}, nil
}

// Len returns the number of enrolled faces.
func (g *Gallery) Len() int {
	return len(g.faces)
}

// Names returns the enrolled names in gallery order.
func (g *Gallery) Names() []string {
	names := make([]string, len(g.faces))
	for i, f := range g.faces {
		names[i] = f.Name
	}
	return names
}

// Face returns the i-th known face.
func (g *Gallery) Face(i int) KnownFace {
	return g.faces[i]
}

// Metric returns the distance metric of the gallery.
func (g *Gallery) Metric() Metric {
	return g.metric
}

// Threshold returns the maximum distance that still counts as a match.
func (g *Gallery) Threshold() float64 {
	return g.threshold
}

// Dim returns the encoding dimension every probe must have.
func (g *Gallery) Dim() int {
	return len(g.faces[0].Encoding)
}

// Distances computes the distance from the probe to every entry, in gallery order.
func (g *Gallery) Distances(probe Encoding) []float64 {
	distances := make([]float64, len(g.faces))
	for i, f := range g.faces {
		distances[i] = g.metric.Distance(f.Encoding, probe)
	}
	return distances
}

// Matches reports whether a distance satisfies the match predicate.
func (g *Gallery) Matches(distance float64) bool {
	return distance <= g.threshold
}

// Match finds the closest entry to the probe. Ties go to the lowest index.
// The second return value is false when even the closest entry is farther
// than the threshold, which means the face is unknown.
func (g *Gallery) Match(probe Encoding) (Match, bool) {
	best := Match{Index: -1, Distance: math.Inf(1)}
	for i, d := range g.Distances(probe) {
		if d < best.Distance {
			best = Match{Index: i, Name: g.faces[i].Name, Distance: d}
		}
	}
	if best.Index < 0 || !g.Matches(best.Distance) {
		return best, false
	}
	return best, true
}

// SelfCheckResult describes how an enrolled encoding relates to itself and
// to its nearest neighbour in the gallery.
type SelfCheckResult struct {
	Name            string
	SelfDistance    float64
	SelfMatch       bool
	Nearest         string // empty for a single-entry gallery
	NearestDistance float64
	Confusable      bool // the nearest other entry is also within the threshold
}

// SelfCheck compares every entry with itself and with every other entry.
// A healthy gallery has SelfMatch set and Confusable cleared for every entry.
func (g *Gallery) SelfCheck() []SelfCheckResult {
	results := make([]SelfCheckResult, len(g.faces))
	for i, f := range g.faces {
		distances := g.Distances(f.Encoding)
		r := SelfCheckResult{
			Name:            f.Name,
			SelfDistance:    distances[i],
			NearestDistance: math.Inf(1),
		}
		m, ok := g.Match(f.Encoding)
		r.SelfMatch = ok && m.Index == i && distances[i] <= constants.SelfMatchEpsilon

		for j, d := range distances {
			if j == i {
				continue
			}
			if d < r.NearestDistance {
				r.Nearest = g.faces[j].Name
				r.NearestDistance = d
			}
		}
		r.Confusable = r.Nearest != "" && g.Matches(r.NearestDistance)
		results[i] = r
	}
	return results
}
