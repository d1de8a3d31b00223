package insightface

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testFrame() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			img.Set(x, y, color.RGBA{120, 80, 40, 255})
		}
	}
	return img
}

func TestRecognize(t *testing.T) {
	var gotPath, gotPartType string
	var gotBytes int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("expected multipart file: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotPartType = header.Header.Get("Content-Type")
		data, _ := io.ReadAll(file)
		gotBytes = len(data)

		json.NewEncoder(w).Encode(FaceResponse{
			FacesCount: 3,
			Model:      "buffalo_l",
			Faces: []FaceDetection{
				{FaceIndex: 0, Dim: 3, Embedding: []float32{0.1, 0.2, 0.3}, BBox: []float64{1.4, 2.6, 10, 12}, DetScore: 0.9},
				{FaceIndex: 1, Dim: 3, Embedding: nil, BBox: []float64{0, 0, 1, 1}, DetScore: 0.8},
				{FaceIndex: 2, Dim: 3, Embedding: []float32{0.3, 0.2, 0.1}, BBox: []float64{0, 0}, DetScore: 0.7},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL + "/")
	faces, err := client.Recognize(context.Background(), testFrame())
	if err != nil {
		t.Fatalf("Recognize() error: %v", err)
	}

	if gotPath != "/embed/face" {
		t.Errorf("expected /embed/face, got %s", gotPath)
	}
	if gotPartType != "image/jpeg" {
		t.Errorf("expected image/jpeg part, got %q", gotPartType)
	}
	if gotBytes == 0 {
		t.Error("expected image bytes to be uploaded")
	}

	if len(faces) != 1 {
		t.Fatalf("expected 1 usable face, got %d", len(faces))
	}
	if faces[0].Region != image.Rect(1, 2, 10, 12) {
		t.Errorf("unexpected region %v", faces[0].Region)
	}
	if len(faces[0].Encoding) != 3 || faces[0].Encoding[2] != 0.3 {
		t.Errorf("unexpected encoding %v", faces[0].Encoding)
	}
}

func TestRecognize_NoFaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"faces_count":0,"faces":[],"model":"buffalo_l"}`))
	}))
	defer server.Close()

	faces, err := NewClient(server.URL).Recognize(context.Background(), testFrame())
	if err != nil {
		t.Fatalf("Recognize() error: %v", err)
	}
	if len(faces) != 0 {
		t.Errorf("expected no faces, got %d", len(faces))
	}
}

func TestRecognize_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Recognize(context.Background(), testFrame())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "503") || !strings.Contains(err.Error(), "model not loaded") {
		t.Errorf("unexpected error %q", err.Error())
	}
}

func TestRecognize_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"faces": [`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Recognize(context.Background(), testFrame())
	if err == nil || !strings.Contains(err.Error(), "failed to parse response") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestRecognize_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"faces_count":0,"faces":[]}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewClient(server.URL).Recognize(ctx, testFrame()); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("")
	if c.baseURL != defaultEmbeddingURL {
		t.Errorf("expected default URL, got %s", c.baseURL)
	}
}
