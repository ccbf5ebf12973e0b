package settings

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Store holds the saved settings of every PDF, keyed by PDF id.
type Store struct {
	pdfs map[string]Raw
}

// file is the on-disk layout of a settings file:
//
//	pdfs:
//	  5a1b2c:
//	    display_uploaded_images: "Yes"
//	    group_uploaded_images: "No"
type file struct {
	PDFs map[string]Raw `yaml:"pdfs"`
}

// NewStore creates a store from already loaded settings.
func NewStore(pdfs map[string]Raw) *Store {
	if pdfs == nil {
		pdfs = map[string]Raw{}
	}
	return &Store{pdfs: pdfs}
}

// LoadFile reads a YAML settings file. An empty path yields an empty store.
func LoadFile(path string) (*Store, error) {
	if path == "" {
		return NewStore(nil), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML settings.
func Parse(data []byte) (*Store, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return NewStore(f.PDFs), nil
}

// Get returns the snapshot for pdfID, or the defaults when it is unknown.
func (s *Store) Get(pdfID string) Display {
	if s == nil {
		return Defaults()
	}
	return FromRaw(s.pdfs[pdfID])
}

// Has reports whether settings were saved for pdfID.
func (s *Store) Has(pdfID string) bool {
	if s == nil {
		return false
	}
	_, ok := s.pdfs[pdfID]
	return ok
}
