package render

import (
	"bytes"
	"encoding/json"
	"slices"

	"github.com/GravityPDF/gravity-pdf-images/internal/form"
	"github.com/GravityPDF/gravity-pdf-images/internal/settings"
)

// ImagesKey is the form data key holding resized image locations.
const ImagesKey = "images"

// ImageData locates the resized variant of a field's image.
type ImageData struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

// PostImageData is the exported value of a post_image field.
type PostImageData struct {
	URL         string `json:"url"`
	Path        string `json:"path,omitempty"`
	Title       string `json:"title"`
	Caption     string `json:"caption"`
	Description string `json:"description"`
}

// FieldData is the export of a single field.
type FieldData struct {
	FieldID string
	Value   any
	Images  map[string]ImageData
}

// FormData is the export of a whole entry, used by PDF templates.
type FormData struct {
	FormID  string
	EntryID string
	Fields  map[string]any
	Images  map[string]ImageData
}

var baseKeys = []string{"form_id", "entry_id", "field"}

// InsertImagesKey places the images key directly before "poll", or at the
// end when keys has no "poll" entry.
func InsertImagesKey(keys []string) []string {
	out := slices.Clone(keys)
	i := slices.Index(out, "poll")
	if i < 0 {
		return append(out, ImagesKey)
	}
	return slices.Insert(out, i, ImagesKey)
}

// BuildFormData collects the export of every field in f.
func BuildFormData(f form.Form, e form.Entry, display settings.Display, deps Deps) FormData {
	data := FormData{
		FormID:  f.ID,
		EntryID: e.ID,
		Fields:  make(map[string]any, len(f.Fields)),
	}
	for _, field := range f.Fields {
		fd := NewRenderer(field, e, display, deps).FormData()
		data.Fields[field.ID] = fd.Value
		for id, img := range fd.Images {
			if data.Images == nil {
				data.Images = map[string]ImageData{}
			}
			data.Images[id] = img
		}
	}
	return data
}

// MarshalJSON writes the keys in a stable order with images last. The key is
// omitted when no field has a resized image.
func (d FormData) MarshalJSON() ([]byte, error) {
	values := map[string]any{
		"form_id":  d.FormID,
		"entry_id": d.EntryID,
		"field":    d.Fields,
	}
	if len(d.Images) > 0 {
		values[ImagesKey] = d.Images
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, k := range InsertImagesKey(baseKeys) {
		v, ok := values[k]
		if !ok {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false

		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
