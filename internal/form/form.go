// Package form models the submitted form entries the add-on works on.
package form

import (
	"encoding/json"
	"strings"
)

// Field input types handled by the add-on.
const (
	TypeFileUpload = "fileupload"
	TypePostImage  = "post_image"
)

// PostImageDelimiter separates the url, title, caption and description of a
// stored post image value.
const PostImageDelimiter = "|:|"

// Form is a form definition.
type Form struct {
	ID     string  `json:"id"`
	Title  string  `json:"title,omitempty"`
	Fields []Field `json:"fields"`
}

// Field is a single form field definition.
type Field struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	Label         string `json:"label,omitempty"`
	MultipleFiles bool   `json:"multipleFiles,omitempty"`
	CSSClass      string `json:"cssClass,omitempty"`
}

// IsUpload reports whether the field stores references to uploaded files.
func (f Field) IsUpload() bool {
	return f.Type == TypeFileUpload || f.Type == TypePostImage
}

// UploadFields returns the upload fields of the form in order.
func (f Form) UploadFields() []Field {
	var out []Field
	for _, field := range f.Fields {
		if field.IsUpload() {
			out = append(out, field)
		}
	}
	return out
}

// Entry is a single form submission.
type Entry struct {
	ID     string            `json:"id"`
	FormID string            `json:"form_id"`
	Values map[string]string `json:"values"`
}

// Value returns the raw stored value for field.
func (e Entry) Value(field Field) string {
	if e.Values == nil {
		return ""
	}
	return e.Values[field.ID]
}

// Uploads returns the raw file references stored for field. Multi-file fields
// store a JSON list, single-file fields a scalar. Post image values only
// contribute the URL segment.
func (e Entry) Uploads(field Field) []string {
	raw := strings.TrimSpace(e.Value(field))
	if raw == "" {
		return nil
	}

	var files []string
	if field.MultipleFiles {
		if err := json.Unmarshal([]byte(raw), &files); err != nil {
			// stored unescaped by some importers
			if err := json.Unmarshal([]byte(strings.ReplaceAll(raw, `\"`, `"`)), &files); err != nil {
				return nil
			}
		}
	} else {
		files = []string{raw}
	}

	if field.Type == TypePostImage && len(files) > 0 {
		files[0], _, _ = strings.Cut(files[0], PostImageDelimiter)
	}

	out := files[:0]
	for _, f := range files {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// PostImage is the decoded value of a post_image field.
type PostImage struct {
	URL         string
	Title       string
	Caption     string
	Description string
}

// PostImage decodes the stored value of a post_image field.
func (e Entry) PostImage(field Field) PostImage {
	segments := strings.Split(e.Value(field), PostImageDelimiter)
	var img PostImage
	for i, s := range segments {
		switch i {
		case 0:
			img.URL = strings.TrimSpace(s)
		case 1:
			img.Title = s
		case 2:
			img.Caption = s
		case 3:
			img.Description = s
		}
	}
	return img
}

// EncodeUploads is the inverse of Uploads for fileupload fields.
func EncodeUploads(field Field, files []string) string {
	if !field.MultipleFiles {
		if len(files) == 0 {
			return ""
		}
		return files[0]
	}
	b, err := json.Marshal(files)
	if err != nil {
		return ""
	}
	return string(b)
}
