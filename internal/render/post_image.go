package render

import (
	"github.com/GravityPDF/gravity-pdf-images/internal/form"
	"github.com/GravityPDF/gravity-pdf-images/internal/imageinfo"
)

// PostImageRenderer renders a post_image field. The field holds at most one
// image, which counts only when the file exists on disk.
type PostImageRenderer struct {
	fieldBase
	def   *DefaultRenderer
	image form.PostImage
	path  string
}

func newPostImageRenderer(base fieldBase, def *DefaultRenderer) *PostImageRenderer {
	r := &PostImageRenderer{fieldBase: base, def: def, image: base.entry.PostImage(base.field)}
	if path, ok := base.localPath(r.image.URL); ok {
		r.path = path
	}
	return r
}

func (r *PostImageRenderer) HTML() string {
	if r.display.GroupImages {
		return ""
	}
	if !r.HasImages() {
		return r.def.HTML()
	}
	return r.wrap(r.imageHTML())
}

func (r *PostImageRenderer) GroupHTML() string {
	if !r.HasImages() {
		return r.wrap("")
	}
	return r.wrap(r.imageHTML())
}

func (r *PostImageRenderer) HasImages() bool {
	return r.path != "" && imageinfo.IsImageFile(r.path) && r.deps.IsFile(r.path)
}

func (r *PostImageRenderer) IsEmpty() bool {
	if r.display.GroupImages {
		return true
	}
	return r.def.IsEmpty()
}

func (r *PostImageRenderer) FormData() FieldData {
	fd := r.def.FormData()
	if !r.HasImages() {
		return fd
	}
	resized, ok := r.resizedPath(r.path)
	if !ok {
		return fd
	}
	url, ok := r.resizedURL(r.image.URL, resized)
	if !ok {
		return fd
	}
	fd.Images = map[string]ImageData{r.field.ID: {URL: url, Path: resized}}
	return fd
}

func (r *PostImageRenderer) imageHTML() string {
	src := r.path
	if resized, ok := r.resizedPath(r.path); ok {
		src = resized
	}
	return execute("post_image", postImageView{
		FieldID:     r.field.ID,
		ColumnClass: r.display.ColumnClass(),
		MaxHeight:   r.display.HeightLimit(),
		URL:         r.image.URL,
		Src:         srcAttr(src, true),
		Title:       r.image.Title,
		Caption:     r.image.Caption,
		Description: r.image.Description,
	})
}
