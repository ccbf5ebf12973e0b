package render

import (
	"html/template"
	"strings"

	"github.com/GravityPDF/gravity-pdf-images/internal/form"
)

// DefaultRenderer renders a field without any image handling.
type DefaultRenderer struct {
	fieldBase
}

func (r *DefaultRenderer) HTML() string {
	var body string
	switch r.field.Type {
	case form.TypeFileUpload:
		if files := r.uploads(); len(files) > 0 {
			body = execute("file_list", listView{FieldID: r.field.ID, Files: files})
		}
	case form.TypePostImage:
		img := r.entry.PostImage(r.field)
		if img.URL != "" {
			var src any = img.URL
			if path, ok := r.localPath(img.URL); ok {
				src = srcAttr(path, true)
			}
			body = execute("default_post_image", postImageView{
				FieldID:     r.field.ID,
				URL:         img.URL,
				Src:         src,
				Title:       img.Title,
				Caption:     img.Caption,
				Description: img.Description,
			})
		}
	default:
		body = template.HTMLEscapeString(r.entry.Value(r.field))
	}
	return r.wrap(body)
}

// GroupHTML is always empty; plain fields never join the grouped section.
func (r *DefaultRenderer) GroupHTML() string { return "" }

func (r *DefaultRenderer) HasImages() bool { return false }

func (r *DefaultRenderer) IsEmpty() bool {
	switch r.field.Type {
	case form.TypeFileUpload:
		return len(r.entry.Uploads(r.field)) == 0
	case form.TypePostImage:
		return r.entry.PostImage(r.field).URL == ""
	default:
		return strings.TrimSpace(r.entry.Value(r.field)) == ""
	}
}

func (r *DefaultRenderer) FormData() FieldData {
	fd := FieldData{FieldID: r.field.ID}
	switch r.field.Type {
	case form.TypeFileUpload:
		files := r.entry.Uploads(r.field)
		if r.field.MultipleFiles {
			if files == nil {
				files = []string{}
			}
			fd.Value = files
		} else if len(files) > 0 {
			fd.Value = files[0]
		} else {
			fd.Value = ""
		}
	case form.TypePostImage:
		img := r.entry.PostImage(r.field)
		pi := PostImageData{
			URL:         img.URL,
			Title:       img.Title,
			Caption:     img.Caption,
			Description: img.Description,
		}
		if path, ok := r.localPath(img.URL); ok {
			pi.Path = path
		}
		fd.Value = pi
	default:
		fd.Value = r.entry.Value(r.field)
	}
	return fd
}
