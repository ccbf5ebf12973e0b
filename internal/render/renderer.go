// Package render decides how upload fields appear in a generated PDF and
// produces their markup.
package render

import (
	"github.com/GravityPDF/gravity-pdf-images/internal/form"
	"github.com/GravityPDF/gravity-pdf-images/internal/settings"
)

// Renderer produces the markup and export data of one form field.
type Renderer interface {
	// HTML is the markup rendered at the field's position in the document.
	HTML() string
	// GroupHTML is the markup rendered in the grouped image section.
	GroupHTML() string
	HasImages() bool
	IsEmpty() bool
	FormData() FieldData
}

// Resolver maps upload references to local file paths and back.
type Resolver interface {
	LocalPath(ref string) (string, bool)
	URL(path string) (string, bool)
}

// Deps are the collaborators renderers use to look at files on disk.
type Deps struct {
	Resolver Resolver
	// IsFile reports whether path is an existing file. Defaults to storage.IsFile.
	IsFile func(path string) bool
}

// NewRenderer returns the renderer for field. Upload fields get an image
// aware renderer when the display settings enable images, every other
// combination falls back to DefaultRenderer.
func NewRenderer(field form.Field, entry form.Entry, display settings.Display, deps Deps) Renderer {
	base := newFieldBase(field, entry, display, deps)
	def := &DefaultRenderer{fieldBase: base}

	if !display.DisplayImages {
		return def
	}
	switch field.Type {
	case form.TypeFileUpload:
		return newImageUploadRenderer(base, def)
	case form.TypePostImage:
		return newPostImageRenderer(base, def)
	default:
		return def
	}
}
