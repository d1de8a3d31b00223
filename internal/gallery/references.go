package gallery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kozaktomas/face-attendance/internal/facematch"
)

// Reference pairs a person name with the image they are enrolled from.
type Reference struct {
	Name  string `yaml:"name"`
	Image string `yaml:"image"`
}

// referenceFile is the YAML layout of a gallery file:
//
//	faces:
//	  - name: sks
//	    image: faces/sks.jpg
type referenceFile struct {
	Faces []Reference `yaml:"faces"`
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// LoadReferences reads a YAML gallery file. Relative image paths are
// resolved against the directory of the gallery file.
func LoadReferences(path string) ([]Reference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gallery file: %w", err)
	}

	var rf referenceFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse gallery file %s: %w", path, err)
	}
	if len(rf.Faces) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoReferenceEntries, path)
	}

	base := filepath.Dir(path)
	refs := make([]Reference, len(rf.Faces))
	for i, r := range rf.Faces {
		name := strings.TrimSpace(r.Name)
		if r.Image == "" {
			return nil, fmt.Errorf("gallery entry %d (%q) has no image", i, name)
		}
		if name == "" {
			name = facematch.NameFromFile(r.Image)
		}
		img := r.Image
		if !filepath.IsAbs(img) {
			img = filepath.Join(base, img)
		}
		refs[i] = Reference{Name: name, Image: img}
	}
	return refs, nil
}

// ScanReferences lists the reference images in dir. Each image file
// contributes one reference named after the file ("sks.jpg" -> "sks").
// Entries are returned in file name order.
func ScanReferences(dir string) ([]Reference, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read faces directory: %w", err)
	}

	var refs []Reference
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if !imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		refs = append(refs, Reference{
			Name:  facematch.NameFromFile(e.Name()),
			Image: filepath.Join(dir, e.Name()),
		})
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoReferenceEntries, dir)
	}
	return refs, nil
}

// ResolveReferences prefers an explicit gallery file and falls back to
// scanning the faces directory.
func ResolveReferences(file, dir string) ([]Reference, error) {
	if file != "" {
		return LoadReferences(file)
	}
	return ScanReferences(dir)
}
