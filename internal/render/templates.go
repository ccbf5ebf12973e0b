package render

import (
	"embed"
	"html/template"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.gohtml"))

type fieldView struct {
	ID       string
	Type     string
	CSSClass string
	Label    string
	Body     template.HTML
}

type listView struct {
	FieldID string
	Files   []upload
}

type imageView struct {
	Index int
	Ref   string
	Src   any
}

type galleryView struct {
	FieldID     string
	ColumnClass string
	MaxHeight   int
	Images      []imageView
}

type postImageView struct {
	FieldID     string
	ColumnClass string
	MaxHeight   int
	URL         string
	Src         any
	Title       string
	Caption     string
	Description string
}

func execute(name string, data any) string {
	var sb strings.Builder
	if err := templates.ExecuteTemplate(&sb, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("render template")
		return ""
	}
	return sb.String()
}
