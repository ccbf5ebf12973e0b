package render

import (
	"html/template"

	"github.com/GravityPDF/gravity-pdf-images/internal/form"
	"github.com/GravityPDF/gravity-pdf-images/internal/imageinfo"
	"github.com/GravityPDF/gravity-pdf-images/internal/settings"
	"github.com/GravityPDF/gravity-pdf-images/internal/storage"
)

type fieldBase struct {
	field   form.Field
	entry   form.Entry
	display settings.Display
	deps    Deps
}

func newFieldBase(field form.Field, entry form.Entry, display settings.Display, deps Deps) fieldBase {
	if deps.IsFile == nil {
		deps.IsFile = storage.IsFile
	}
	return fieldBase{field: field, entry: entry, display: display, deps: deps}
}

// upload is a single file reference and its position in the field value.
type upload struct {
	Index int
	Ref   string
	Name  string
}

func (b fieldBase) uploads() []upload {
	refs := b.entry.Uploads(b.field)
	out := make([]upload, 0, len(refs))
	for i, ref := range refs {
		out = append(out, upload{Index: i, Ref: ref, Name: imageinfo.ImageName(ref)})
	}
	return out
}

func (b fieldBase) localPath(ref string) (string, bool) {
	if b.deps.Resolver == nil {
		return "", false
	}
	return b.deps.Resolver.LocalPath(ref)
}

// resizedPath returns the resized variant of path when it exists on disk.
func (b fieldBase) resizedPath(path string) (string, bool) {
	resized, err := imageinfo.ResizedPath(path)
	if err != nil || !b.deps.IsFile(resized) {
		return "", false
	}
	return resized, true
}

// resizedURL returns the public URL of the resized variant of ref.
func (b fieldBase) resizedURL(ref, resized string) (string, bool) {
	if b.deps.Resolver != nil {
		if u, ok := b.deps.Resolver.URL(resized); ok {
			return u, true
		}
	}
	u, err := imageinfo.ResizedPath(ref)
	return u, err == nil
}

// imageSource picks the resized variant, then the local original, then the
// reference as given. local is false for the last case.
func (b fieldBase) imageSource(ref string) (src string, local bool) {
	path, ok := b.localPath(ref)
	if !ok {
		return ref, false
	}
	if resized, ok := b.resizedPath(path); ok {
		return resized, true
	}
	return path, true
}

// srcAttr trusts resolved local paths. Other references are left to the
// template's URL filtering.
func srcAttr(src string, local bool) any {
	if local {
		return template.URL(src)
	}
	return src
}

// wrap puts body into the standard field container.
func (b fieldBase) wrap(body string) string {
	return execute("field", fieldView{
		ID:       b.field.ID,
		Type:     b.field.Type,
		CSSClass: b.field.CSSClass,
		Label:    b.field.Label,
		Body:     template.HTML(body),
	})
}

func (b fieldBase) gallery(images []upload) string {
	if len(images) == 0 {
		return ""
	}
	view := galleryView{
		FieldID:     b.field.ID,
		ColumnClass: b.display.ColumnClass(),
		MaxHeight:   b.display.HeightLimit(),
	}
	for _, img := range images {
		view.Images = append(view.Images, imageView{
			Index: img.Index,
			Ref:   img.Ref,
			Src:   srcAttr(b.imageSource(img.Ref)),
		})
	}
	return execute("gallery", view)
}

func (b fieldBase) nonImageList(files []upload) string {
	if len(files) == 0 {
		return ""
	}
	return execute("non_images", listView{FieldID: b.field.ID, Files: files})
}

// partition splits uploads into images and other files, keeping each
// file's original index.
func partition(files []upload) (images, others []upload) {
	for _, f := range files {
		if imageinfo.IsImageFile(f.Ref) {
			images = append(images, f)
		} else {
			others = append(others, f)
		}
	}
	return images, others
}
