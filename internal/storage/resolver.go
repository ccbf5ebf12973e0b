package storage

import (
	"path/filepath"
	"strings"
)

// Resolver maps the public upload URL onto the upload directory on disk.
type Resolver struct {
	BaseDir string
	BaseURL string
}

// NewResolver creates a Resolver for the upload directory and its public URL.
func NewResolver(baseDir, baseURL string) *Resolver {
	dir, err := filepath.Abs(baseDir)
	if err != nil {
		dir = filepath.Clean(baseDir)
	}
	return &Resolver{
		BaseDir: dir,
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

// LocalPath converts an upload reference to a path on disk. References under
// BaseURL are rewritten to BaseDir, absolute filesystem paths are accepted
// when they lie inside BaseDir. Any other reference cannot be resolved.
func (s *Resolver) LocalPath(ref string) (string, bool) {
	if ref == "" {
		return "", false
	}
	if s.BaseURL != "" && strings.HasPrefix(ref, s.BaseURL+"/") {
		rel := strings.TrimPrefix(ref, s.BaseURL+"/")
		if rel == "" || strings.Contains(rel, "..") {
			return "", false
		}
		return s.inside(filepath.Join(s.BaseDir, filepath.FromSlash(rel)))
	}
	if strings.Contains(ref, "://") || !filepath.IsAbs(ref) {
		return "", false
	}
	return s.inside(filepath.Clean(ref))
}

// inside returns path when it is BaseDir or below it.
func (s *Resolver) inside(path string) (string, bool) {
	rel, err := filepath.Rel(s.BaseDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return path, true
}

// URL converts a path under BaseDir back to its public URL.
func (s *Resolver) URL(path string) (string, bool) {
	if _, ok := s.inside(path); !ok || s.BaseURL == "" {
		return "", false
	}
	rel, _ := filepath.Rel(s.BaseDir, path)
	return s.BaseURL + "/" + filepath.ToSlash(rel), true
}
