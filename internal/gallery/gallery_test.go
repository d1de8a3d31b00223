package gallery

import (
	"errors"
	"math"
	"testing"
)

func TestCosineDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Encoding
		expected float64
	}{
		{"identical", Encoding{1, 2, 3}, Encoding{1, 2, 3}, 0},
		{"orthogonal", Encoding{1, 0}, Encoding{0, 1}, 1},
		{"opposite", Encoding{1, 0}, Encoding{-1, 0}, 2},
		{"length mismatch", Encoding{1, 0}, Encoding{1, 0, 0}, 2},
		{"empty", Encoding{}, Encoding{}, 2},
		{"zero vector", Encoding{0, 0}, Encoding{1, 0}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineDistance(tt.a, tt.b)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("CosineDistance(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestEuclideanDistance(t *testing.T) {
	if got := EuclideanDistance(Encoding{0, 0}, Encoding{3, 4}); math.Abs(got-5) > 1e-9 {
		t.Errorf("EuclideanDistance = %v, want 5", got)
	}
	if got := EuclideanDistance(Encoding{1, 2}, Encoding{1, 2}); got != 0 {
		t.Errorf("EuclideanDistance of identical vectors = %v, want 0", got)
	}
	if got := EuclideanDistance(Encoding{1}, Encoding{1, 2}); !math.IsInf(got, 1) {
		t.Errorf("EuclideanDistance of mismatched vectors = %v, want +Inf", got)
	}
}

func TestParseMetric(t *testing.T) {
	for _, s := range []string{"euclidean", "cosine"} {
		if _, err := ParseMetric(s); err != nil {
			t.Errorf("ParseMetric(%q) unexpected error: %v", s, err)
		}
	}
	if _, err := ParseMetric("manhattan"); err == nil {
		t.Error("expected error for unknown metric")
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name      string
		names     []string
		encodings []Encoding
		threshold float64
		wantErr   error
	}{
		{
			name:      "more names than encodings",
			names:     []string{"sks", "shr", "srv"},
			encodings: []Encoding{{1, 0}, {0, 1}},
			threshold: 0.6,
			wantErr:   ErrMismatchedGallery,
		},
		{
			name:      "empty",
			threshold: 0.6,
			wantErr:   ErrEmptyGallery,
		},
		{
			name:      "duplicate name after folding",
			names:     []string{"Jiří", "jiri"},
			encodings: []Encoding{{1, 0}, {0, 1}},
			threshold: 0.6,
			wantErr:   ErrDuplicateName,
		},
		{
			name:      "blank name",
			names:     []string{"  "},
			encodings: []Encoding{{1, 0}},
			threshold: 0.6,
			wantErr:   ErrEmptyName,
		},
		{
			name:      "dimension mismatch",
			names:     []string{"a", "b"},
			encodings: []Encoding{{1, 0}, {0, 1, 0}},
			threshold: 0.6,
			wantErr:   ErrDimensionMismatch,
		},
		{
			name:      "zero threshold",
			names:     []string{"a"},
			encodings: []Encoding{{1, 0}},
			threshold: 0,
			wantErr:   ErrInvalidThreshold,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.names, tt.encodings, MetricEuclidean, tt.threshold)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew_CopiesEncodings(t *testing.T) {
	enc := Encoding{1, 2}
	g, err := New([]string{"alice"}, []Encoding{enc}, MetricEuclidean, 0.6)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	enc[0] = 100

	if g.Face(0).Encoding[0] != 1 {
		t.Error("gallery encoding changed after caller mutated its slice")
	}
}

func TestMatch(t *testing.T) {
	g, err := New(
		[]string{"alice", "bob"},
		[]Encoding{{0, 0}, {10, 0}},
		MetricEuclidean, 0.75,
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	tests := []struct {
		name      string
		probe     Encoding
		wantOK    bool
		wantName  string
		wantIndex int
	}{
		{"exact alice", Encoding{0, 0}, true, "alice", 0},
		{"near bob", Encoding{10.3, 0}, true, "bob", 1},
		{"at threshold", Encoding{0.75, 0}, true, "alice", 0},
		{"unknown", Encoding{5, 5}, false, "alice", 0},
		{"wrong dimension", Encoding{0, 0, 0}, false, "", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := g.Match(tt.probe)
			if ok != tt.wantOK {
				t.Fatalf("Match(%v) ok = %v, want %v (distance %v)", tt.probe, ok, tt.wantOK, m.Distance)
			}
			if m.Name != tt.wantName || m.Index != tt.wantIndex {
				t.Errorf("Match(%v) = %s[%d], want %s[%d]", tt.probe, m.Name, m.Index, tt.wantName, tt.wantIndex)
			}
		})
	}
}

func TestMatch_TieGoesToFirstEntry(t *testing.T) {
	g, err := New(
		[]string{"first", "second", "third"},
		[]Encoding{{1, 0}, {-1, 0}, {0, 5}},
		MetricEuclidean, 2,
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	// The probe is exactly between "first" and "second".
	for i := 0; i < 100; i++ {
		m, ok := g.Match(Encoding{0, 0})
		if !ok || m.Name != "first" || m.Index != 0 {
			t.Fatalf("Match() = %+v (ok=%v), want first entry", m, ok)
		}
	}
}

func TestMatch_Idempotent(t *testing.T) {
	g, err := New(
		[]string{"alice", "bob"},
		[]Encoding{{0.1, 0.2, 0.3}, {0.3, 0.2, 0.1}},
		MetricCosine, 0.5,
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	probe := Encoding{0.11, 0.19, 0.31}
	m1, ok1 := g.Match(probe)
	d1 := g.Distances(probe)
	m2, ok2 := g.Match(probe)
	d2 := g.Distances(probe)

	if m1 != m2 || ok1 != ok2 {
		t.Errorf("repeated Match() differ: %+v/%v vs %+v/%v", m1, ok1, m2, ok2)
	}
	for i := range d1 {
		if d1[i] != d2[i] {
			t.Errorf("distance %d differs: %v vs %v", i, d1[i], d2[i])
		}
	}
}

func TestSelfCheck(t *testing.T) {
	g, err := New(
		[]string{"alice", "bob", "carol"},
		[]Encoding{{0, 0}, {0.3, 0}, {10, 10}},
		MetricEuclidean, 0.6,
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	results := g.SelfCheck()
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	for _, r := range results {
		if r.SelfDistance != 0 {
			t.Errorf("%s: self distance = %v, want 0", r.Name, r.SelfDistance)
		}
		if !r.SelfMatch {
			t.Errorf("%s: expected self match", r.Name)
		}
	}

	if results[0].Nearest != "bob" || !results[0].Confusable {
		t.Errorf("alice: nearest = %s confusable = %v, want bob/true", results[0].Nearest, results[0].Confusable)
	}
	if results[2].Confusable {
		t.Error("carol should not be confusable")
	}
}

func TestSelfCheck_CosineNearZero(t *testing.T) {
	g, err := New(
		[]string{"alice"},
		[]Encoding{{0.123, -0.456, 0.789, 0.012}},
		MetricCosine, 0.5,
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	r := g.SelfCheck()[0]
	if r.SelfDistance > 1e-6 {
		t.Errorf("self distance = %v, want ~0", r.SelfDistance)
	}
	if !r.SelfMatch {
		t.Error("expected self match")
	}
	if r.Nearest != "" {
		t.Errorf("single entry gallery has nearest %q", r.Nearest)
	}
}
