package render

import (
	"maps"
	"strings"

	"github.com/GravityPDF/gravity-pdf-images/internal/form"
	"github.com/GravityPDF/gravity-pdf-images/internal/imageinfo"
)

// DefaultPlaceholderURL is shown instead of uploaded images in previews.
const DefaultPlaceholderURL = "/assets/images/placeholder.png"

// WithPlaceholders returns a copy of e in which every image reference of an
// upload field is replaced by placeholder. Previews run before the resize
// jobs so the full size originals would otherwise be embedded.
func WithPlaceholders(f form.Form, e form.Entry, placeholder string) form.Entry {
	if placeholder == "" {
		placeholder = DefaultPlaceholderURL
	}
	out := e
	out.Values = maps.Clone(e.Values)

	for _, field := range f.UploadFields() {
		raw, ok := out.Values[field.ID]
		if !ok || raw == "" {
			continue
		}

		if field.Type == form.TypePostImage {
			ref, meta, found := strings.Cut(raw, form.PostImageDelimiter)
			if !imageinfo.IsImageFile(strings.TrimSpace(ref)) {
				continue
			}
			if found {
				out.Values[field.ID] = placeholder + form.PostImageDelimiter + meta
			} else {
				out.Values[field.ID] = placeholder
			}
			continue
		}

		files := e.Uploads(field)
		for i, ref := range files {
			if imageinfo.IsImageFile(ref) {
				files[i] = placeholder
			}
		}
		out.Values[field.ID] = form.EncodeUploads(field, files)
	}
	return out
}
