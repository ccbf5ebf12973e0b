package render

import (
	_ "embed"
	"html/template"
	"strings"

	"github.com/GravityPDF/gravity-pdf-images/internal/form"
	"github.com/GravityPDF/gravity-pdf-images/internal/settings"
)

//go:embed styles.css
var styles string

// Styles returns the stylesheet used by the image markup.
func Styles() string {
	return styles
}

// Options control how a document is rendered.
type Options struct {
	Settings settings.Display
	// ShowEmpty renders fields that have no value.
	ShowEmpty bool
	// Preview swaps uploaded images for PlaceholderURL.
	Preview             bool
	PlaceholderURL      string
	DisablePlaceholders bool
}

// Document renders the fields of entry followed, when grouping is enabled,
// by every upload field's images.
func Document(f form.Form, e form.Entry, opts Options, deps Deps) string {
	display := opts.Settings
	if opts.Preview && display.DisplayImages && !opts.DisablePlaceholders {
		e = WithPlaceholders(f, e, opts.PlaceholderURL)
	}

	var sb strings.Builder
	sb.WriteString("<style>")
	sb.WriteString(styles)
	sb.WriteString("</style>\n")

	for _, field := range f.Fields {
		r := NewRenderer(field, e, display, deps)
		if r.IsEmpty() && !opts.ShowEmpty {
			continue
		}
		sb.WriteString(r.HTML())
	}

	sb.WriteString(GroupedSection(f, e, display, deps))
	return sb.String()
}

// GroupedSection renders the images of every upload field at the end of the
// document. It is empty unless images are displayed and grouped.
func GroupedSection(f form.Form, e form.Entry, display settings.Display, deps Deps) string {
	if !display.DisplayImages || !display.GroupImages {
		return ""
	}

	var sb strings.Builder
	for _, field := range f.UploadFields() {
		// column classes do not apply outside the normal document flow
		field.CSSClass = ""
		r := NewRenderer(field, e, display, deps)
		if !r.HasImages() {
			continue
		}
		sb.WriteString(execute("grouped", template.HTML(r.GroupHTML())))
	}
	return sb.String()
}
