package render

// ImageUploadRenderer renders fileupload fields with images shown inline or
// moved to the grouped section.
type ImageUploadRenderer struct {
	fieldBase
	def    *DefaultRenderer
	images []upload
	others []upload
}

func newImageUploadRenderer(base fieldBase, def *DefaultRenderer) *ImageUploadRenderer {
	images, others := partition(base.uploads())
	return &ImageUploadRenderer{fieldBase: base, def: def, images: images, others: others}
}

// HTML follows the in-place decision table:
//
//	no images                     -> default rendering
//	grouping, only images         -> empty
//	grouping, images and others   -> non-image list
//	no grouping                   -> non-image list then gallery
func (r *ImageUploadRenderer) HTML() string {
	if len(r.images) == 0 {
		return r.def.HTML()
	}
	group := r.display.GroupImages
	if group && len(r.others) == 0 {
		return ""
	}

	body := r.nonImageList(r.others)
	if !group {
		body += r.gallery(r.images)
	}
	return r.wrap(body)
}

// GroupHTML renders the image gallery only.
func (r *ImageUploadRenderer) GroupHTML() string {
	return r.wrap(r.gallery(r.images))
}

func (r *ImageUploadRenderer) HasImages() bool {
	return len(r.images) > 0
}

// IsEmpty treats a grouped field without non-image files as empty; its
// images are shown in the grouped section instead.
func (r *ImageUploadRenderer) IsEmpty() bool {
	if r.display.GroupImages && len(r.others) == 0 {
		return true
	}
	return r.def.IsEmpty()
}

// FormData adds the resized variant of the field's images when one exists on
// disk. With several images the last resized one is kept.
func (r *ImageUploadRenderer) FormData() FieldData {
	fd := r.def.FormData()
	for _, img := range r.images {
		path, ok := r.localPath(img.Ref)
		if !ok {
			continue
		}
		resized, ok := r.resizedPath(path)
		if !ok {
			continue
		}
		url, ok := r.resizedURL(img.Ref, resized)
		if !ok {
			continue
		}
		fd.Images = map[string]ImageData{r.field.ID: {URL: url, Path: resized}}
	}
	return fd
}
